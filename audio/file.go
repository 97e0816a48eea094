package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// SampleRate is the rate every track is resampled to on decode.
const SampleRate = 44100

// Track is a fully decoded audio asset: interleaved stereo for playback and
// a mono downmix for analysis.
type Track struct {
	Stereo []float32
	Mono   []float32
}

// DecodeFile decodes an audio file to 44.1kHz stereo float32 via FFmpeg.
// The whole track is held in memory; LED-cube assets are short loops.
func DecodeFile(path, ffmpegPath string) (*Track, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("audio file not found: %w", err)
	}

	buf := &bytes.Buffer{}
	cmd := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"f":      "f32le",
			"acodec": "pcm_f32le",
			"ac":     2,
			"ar":     SampleRate,
		}).
		WithOutput(buf).ErrorToStdOut()
	if ffmpegPath != "" {
		cmd = cmd.SetFfmpegPath(ffmpegPath)
	}
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode of %s failed: %w", path, err)
	}

	raw := buf.Bytes()
	stereo := make([]float32, len(raw)/4)
	for i := range stereo {
		stereo[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	if len(stereo) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no samples for %s", path)
	}

	log.Printf("Decoded %s: %.1fs of audio", path, float64(len(stereo)/2)/SampleRate)
	return &Track{
		Stereo: stereo,
		Mono:   DownmixStereoToMono(stereo),
	}, nil
}
