package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the file-backed engine configuration. Command-line flags
// override individual fields after loading.
type Config struct {
	Render  Render  `toml:"render"`
	Cube    Cube    `toml:"cube"`
	Display Display `toml:"display"`
	Camera  Camera  `toml:"camera"`
	Audio   Audio   `toml:"audio"`
}

type Render struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	FPS        int    `toml:"fps"`
	Target     string `toml:"target"` // headless, window or hidden
	RenderNode string `toml:"render_node"`
}

type Cube struct {
	Enabled    bool `toml:"enabled"`
	Panels     int  `toml:"panels"`
	FaceWidth  int  `toml:"face_width"`
	FaceHeight int  `toml:"face_height"`
}

type Display struct {
	Brightness float64 `toml:"brightness"`
	Gamma      float64 `toml:"gamma"`
}

type Camera struct {
	Distance     float32 `toml:"distance"`
	MinDistance  float32 `toml:"min_distance"`
	MaxDistance  float32 `toml:"max_distance"`
	Acceleration float32 `toml:"acceleration"`
	Damping      float32 `toml:"damping"`
}

type Audio struct {
	File string `toml:"file"`
	Play bool   `toml:"play"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Render: Render{
			Width:  64,
			Height: 64,
			FPS:    60,
			Target: "window",
		},
		Cube: Cube{
			Panels:     6,
			FaceWidth:  64,
			FaceHeight: 64,
		},
		Display: Display{
			Brightness: 80,
			Gamma:      2.2,
		},
		Camera: Camera{
			Distance:     3,
			MinDistance:  1,
			MaxDistance:  10,
			Acceleration: 6,
			Damping:      0.88,
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file is fine;
// the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
