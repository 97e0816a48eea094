package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Player loops a decoded stereo track through the default output device via
// PortAudio, so the rendered output stays in sync with audible audio.
type Player struct {
	stream  *portaudio.Stream
	track   *Track
	mu      sync.Mutex
	pos     int // sample frames into the track
	playing bool
	done    bool
}

// NewPlayer prepares playback of track. Call Start to begin.
func NewPlayer(track *Track) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	return &Player{track: track}, nil
}

// audioCallback fills the output buffer from the track, looping at the end.
func (p *Player) audioCallback(out []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	frames := len(p.track.Stereo) / 2
	for i := 0; i < len(out); i += 2 {
		out[i] = p.track.Stereo[p.pos*2]
		out[i+1] = p.track.Stereo[p.pos*2+1]
		p.pos = (p.pos + 1) % frames
	}
}

func (p *Player) Start() error {
	host, err := portaudio.DefaultHostApi()
	if err != nil {
		return err
	}
	params := portaudio.HighLatencyParameters(nil, host.DefaultOutputDevice)
	params.Output.Channels = 2
	params.SampleRate = float64(SampleRate)

	stream, err := portaudio.OpenStream(params, p.audioCallback)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start audio stream: %w", err)
	}
	p.stream = stream
	p.playing = true
	return nil
}

// Position returns the playback position in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return float64(p.pos) / float64(SampleRate)
}

// Stop closes the stream if one was started and releases PortAudio. The
// Initialize from NewPlayer is always matched by a Terminate, even when
// Start was never called. Safe to call more than once.
func (p *Player) Stop() error {
	if p.done {
		return nil
	}
	p.done = true

	var err error
	if p.playing {
		p.playing = false
		err = p.stream.Close()
	}
	if termErr := portaudio.Terminate(); err == nil {
		err = termErr
	}
	return err
}
