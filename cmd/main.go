package main

import (
	"flag"
	"log"
	"runtime"
	"sync/atomic"
	"time"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/glowdeck/glowdeck/audio"
	"github.com/glowdeck/glowdeck/camera"
	"github.com/glowdeck/glowdeck/compositor"
	"github.com/glowdeck/glowdeck/config"
	"github.com/glowdeck/glowdeck/engine"
	"github.com/glowdeck/glowdeck/glfwcontext"
	"github.com/glowdeck/glowdeck/mapper"
	"github.com/glowdeck/glowdeck/options"
	"github.com/glowdeck/glowdeck/platform"
	"github.com/glowdeck/glowdeck/renderer"
	"github.com/glowdeck/glowdeck/transport"
	"github.com/glowdeck/glowdeck/uniforms"
	"github.com/glowdeck/glowdeck/watch"
)

func init() {
	runtime.LockOSThread()
}

func parseFlags() *options.Options {
	opts := &options.Options{
		ConfigFile: flag.String("config", "", "Path to TOML config file"),
		ShaderFile: flag.String("shader", "shader.glsl", "Path to fragment shader source"),
		Target:     flag.String("target", "", "Render target: headless, window or hidden"),
		RenderNode: flag.String("render-node", "", "DRM render node for headless rendering"),
		Width:      flag.Int("width", 0, "Output width"),
		Height:     flag.Int("height", 0, "Output height"),
		FPS:        flag.Int("fps", 0, "Frames per second"),
		Cube:       flag.Bool("cube", false, "Render the six cube faces instead of a flat surface"),
		Panels:     flag.Int("panels", 0, "Number of active cube faces (1-6)"),
		FaceSize:   flag.Int("face-size", 0, "Cube face resolution (square)"),
		Brightness: flag.Float64("brightness", -1, "Output brightness percentage"),
		Gamma:      flag.Float64("gamma", 0, "Output gamma exponent (0.5-3.0)"),
		AudioFile:  flag.String("audio", "", "Audio file to analyze for beat/spectrum uniforms"),
		PlayAudio:  flag.Bool("play-audio", false, "Also play the audio file"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Watch:      flag.Bool("watch", true, "Reload the shader when its file changes"),
		Output:     flag.String("out", "", "Write each corrected frame as a BMP to this path"),
	}
	flag.Parse()
	return opts
}

// applyFlags lays the set flags over the file config.
func applyFlags(cfg *config.Config, opts *options.Options) {
	if *opts.Target != "" {
		cfg.Render.Target = *opts.Target
	}
	if *opts.RenderNode != "" {
		cfg.Render.RenderNode = *opts.RenderNode
	}
	if *opts.Width > 0 {
		cfg.Render.Width = *opts.Width
	}
	if *opts.Height > 0 {
		cfg.Render.Height = *opts.Height
	}
	if *opts.FPS > 0 {
		cfg.Render.FPS = *opts.FPS
	}
	if *opts.Cube {
		cfg.Cube.Enabled = true
	}
	if *opts.Panels > 0 {
		cfg.Cube.Panels = *opts.Panels
	}
	if *opts.FaceSize > 0 {
		cfg.Cube.FaceWidth = *opts.FaceSize
		cfg.Cube.FaceHeight = *opts.FaceSize
	}
	if *opts.Brightness >= 0 {
		cfg.Display.Brightness = *opts.Brightness
	}
	if *opts.Gamma > 0 {
		cfg.Display.Gamma = *opts.Gamma
	}
	if *opts.AudioFile != "" {
		cfg.Audio.File = *opts.AudioFile
	}
	if *opts.PlayAudio {
		cfg.Audio.Play = true
	}
}

// pollKeys reads the preview window's navigation keys into a camera input.
// On headless targets input arrives from the external input layer instead.
func pollKeys(ctx *glfwcontext.Context) camera.Input {
	var in camera.Input
	if ctx.KeyDown(glfw.KeyA) || ctx.KeyDown(glfw.KeyLeft) {
		in.Left = 1
	}
	if ctx.KeyDown(glfw.KeyD) || ctx.KeyDown(glfw.KeyRight) {
		in.Right = 1
	}
	if ctx.KeyDown(glfw.KeyW) || ctx.KeyDown(glfw.KeyUp) {
		in.Up = 1
	}
	if ctx.KeyDown(glfw.KeyS) || ctx.KeyDown(glfw.KeyDown) {
		in.Down = 1
	}
	if ctx.KeyDown(glfw.KeyE) {
		in.Forward = 1
	}
	if ctx.KeyDown(glfw.KeyQ) {
		in.Back = 1
	}
	in.Precise = ctx.KeyDown(glfw.KeyLeftShift)
	return in
}

func main() {
	opts := parseFlags()

	cfg, err := config.Load(*opts.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(&cfg, opts)

	target := platform.Target(cfg.Render.Target)
	if target != platform.TargetHeadless {
		if err := glfwcontext.InitGraphics(); err != nil {
			log.Fatalf("Failed to initialize graphics: %v", err)
		}
		defer glfwcontext.TerminateGraphics()
	}

	// Uniform sources. Registration order decides collision winners.
	inputSrc := uniforms.NewInputSource()
	paramSrc := uniforms.NewParamSource()
	orbit := camera.NewOrbit(cfg.Camera.Distance, cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	orbit.SetResponse(cfg.Camera.Acceleration, cfg.Camera.Damping)
	camSrc := uniforms.NewCameraSource(orbit, inputSrc.Current)

	mgr := uniforms.NewManager()
	mgr.Add(inputSrc)
	mgr.Add(paramSrc)
	mgr.Add(camSrc)

	if cfg.Audio.File != "" {
		track, err := audio.DecodeFile(cfg.Audio.File, *opts.FFMPEGPath)
		if err != nil {
			log.Fatalf("Failed to decode audio: %v", err)
		}
		analyzer := audio.NewAnalyzer(track.Mono, audio.SampleRate)
		mgr.Add(audio.NewSource(analyzer))

		if cfg.Audio.Play {
			player, err := audio.NewPlayer(track)
			if err != nil {
				log.Fatalf("Failed to create audio player: %v", err)
			}
			if err := player.Start(); err != nil {
				log.Fatalf("Failed to start audio playback: %v", err)
			}
			defer player.Stop()
		}
	}

	// Pixel mapper decides pass count and output layout.
	var pm mapper.PixelMapper
	if cfg.Cube.Enabled {
		cube, err := mapper.NewCube(cfg.Cube.Panels, cfg.Cube.FaceWidth, cfg.Cube.FaceHeight, orbit)
		if err != nil {
			log.Fatalf("Bad cube config: %v", err)
		}
		pm = cube
	} else {
		pm = mapper.NewSurface(cfg.Render.Width, cfg.Render.Height)
	}

	ctx, err := platform.New(target, platform.Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		RenderNode: cfg.Render.RenderNode,
	})
	if err != nil {
		log.Fatalf("Failed to create %s context: %v", target, err)
	}
	defer ctx.Shutdown()

	firstW, firstH := pm.Specs()[0].Width, pm.Specs()[0].Height
	eng, err := engine.New(ctx, mgr, firstW, firstH)
	if err != nil {
		log.Fatalf("Failed to create shader engine: %v", err)
	}
	defer eng.Shutdown()

	if err := eng.Load(*opts.ShaderFile); err != nil {
		log.Fatalf("Failed to load shader: %v", err)
	}

	var reload atomic.Bool
	if *opts.Watch {
		w, err := watch.Watch(*opts.ShaderFile, func() { reload.Store(true) })
		if err != nil {
			log.Printf("Shader watching disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	rend := renderer.New(eng, pm, camSrc)
	comp := compositor.New(cfg.Display.Brightness, cfg.Display.Gamma)

	// The display transport consumes the corrected frame. The matrix driver
	// plugs in here; without one, frames go to a file sink or nowhere.
	sink := transport.Discard
	if *opts.Output != "" {
		sink = &transport.BMPFile{Path: *opts.Output}
	}

	winCtx, _ := ctx.(*glfwcontext.Context)

	log.Printf("Starting render loop: %s target, %d fps", target, cfg.Render.FPS)
	frameDuration := time.Second / time.Duration(cfg.Render.FPS)
	lastFrame := time.Now()

	for !ctx.ShouldClose() {
		frameStart := time.Now()
		dt := frameStart.Sub(lastFrame).Seconds()
		lastFrame = frameStart

		if reload.Swap(false) {
			if err := eng.Load(*opts.ShaderFile); err != nil {
				// Keep rendering the previous program; the author fixes
				// the source and saves again.
				log.Printf("Shader reload failed: %v", err)
			} else {
				log.Printf("Shader reloaded")
			}
		}

		if winCtx != nil {
			inputSrc.Set(pollKeys(winCtx))
		}
		mgr.Update(dt)

		out, err := rend.RenderFrame()
		if err != nil {
			log.Fatalf("Render failed: %v", err)
		}

		// The corrected frame goes to the display transport; the preview
		// window shows the raw render.
		corrected, err := comp.Composite(out)
		if err != nil {
			log.Fatalf("Composite failed: %v", err)
		}
		if err := sink.Send(corrected); err != nil {
			log.Printf("Transport send failed: %v", err)
		}

		if winCtx != nil {
			fbW, fbH := ctx.GetFramebufferSize()
			eng.Blit(fbW, fbH)
		}
		ctx.EndFrame()

		if sleep := frameDuration - time.Since(frameStart); sleep > 0 {
			time.Sleep(sleep)
		}
	}
}
