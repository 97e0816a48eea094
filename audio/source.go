package audio

import (
	"github.com/glowdeck/glowdeck/uniforms"
)

// Source exposes an Analyzer through the uniform-source contract. It owns
// nothing but the read side: the analyzer's spectrum and beat state are
// sampled after each update and published as floats.
type Source struct {
	analyzer *Analyzer
}

func NewSource(a *Analyzer) *Source {
	return &Source{analyzer: a}
}

func (s *Source) Update(dt float64) {
	s.analyzer.Update(dt)
}

func (s *Source) Uniforms() uniforms.Map {
	beat := s.analyzer.Beat()
	return uniforms.Map{
		"iBPM":            uniforms.Float(float32(beat.BPM)),
		"iBeatPhase":      uniforms.Float(float32(beat.Phase)),
		"iBeatPulse":      uniforms.Float(float32(beat.Pulse)),
		"iBeatConfidence": uniforms.Float(float32(beat.Confidence)),
		"iAudioLevel":     uniforms.Float(float32(s.analyzer.Level())),
		"iAudioLow":       uniforms.Float(float32(s.analyzer.Band(0, 0.1))),
		"iAudioMid":       uniforms.Float(float32(s.analyzer.Band(0.1, 0.5))),
		"iAudioHigh":      uniforms.Float(float32(s.analyzer.Band(0.5, 1.0))),
	}
}
