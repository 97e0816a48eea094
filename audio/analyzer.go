package audio

import (
	"math"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	// FFTSize is the analysis window length in samples.
	FFTSize = 2048
	// SpectrumBins is the number of magnitude bins (FFTSize/2 + 1).
	SpectrumBins = FFTSize/2 + 1

	spectrumSmoothing = 0.95
	energySmoothing   = 0.6

	energyHistorySecs = 2.0
	beatHistorySecs   = 10.0
	beatThreshold     = 1.4
	// minBeatInterval keeps detection below 200 BPM.
	minBeatInterval = 60.0 / 200.0

	minBPM = 30.0
	maxBPM = 200.0

	// bpmEstimateWindow is how many recent BPM estimates feed the rolling
	// median and the confidence score.
	bpmEstimateWindow = 8

	pulseDecaySecs = 0.25
)

// BeatState is the derived beat information recomputed on every analyzer
// update.
type BeatState struct {
	BPM        float64
	Phase      float64 // position within the current beat cycle, [0,1)
	Pulse      float64 // impulse decaying after each detected beat, [0,1]
	Confidence float64 // reliability of the BPM estimate, [0,1]
}

// Analyzer extracts a smoothed magnitude spectrum and beat timing from a
// mono sample buffer. It owns the spectrum exclusively; consumers read it
// through Spectrum and must not retain the slice across updates.
type Analyzer struct {
	samples    []float32
	sampleRate int

	hann     []float64
	spectrum []float64

	playhead float64 // seconds into the track, wraps at the end

	bassEnergy    float64
	energyHistory []float64

	beatTimes    []float64
	lastBeatTime float64
	wasAbove     bool

	bpmEstimates []float64
	beat         BeatState
}

// NewAnalyzer wraps a decoded mono sample buffer. One Analyzer exists per
// audio asset and is dropped with it.
func NewAnalyzer(samples []float32, sampleRate int) *Analyzer {
	return &Analyzer{
		samples:      samples,
		sampleRate:   sampleRate,
		hann:         window.Hann(FFTSize),
		spectrum:     make([]float64, SpectrumBins),
		lastBeatTime: -1,
	}
}

// Playhead returns the current playback position in seconds.
func (a *Analyzer) Playhead() float64 { return a.playhead }

// Spectrum returns the current smoothed magnitude spectrum. Read-only.
func (a *Analyzer) Spectrum() []float64 { return a.spectrum }

// Beat returns the beat state as of the last Update.
func (a *Analyzer) Beat() BeatState { return a.beat }

// Level returns the mean of the current spectrum, a rough overall loudness.
func (a *Analyzer) Level() float64 {
	sum := 0.0
	for _, v := range a.spectrum {
		sum += v
	}
	return sum / float64(len(a.spectrum))
}

// Band returns the mean spectrum magnitude over the bin range [lo,hi) given
// as fractions of the full spectrum.
func (a *Analyzer) Band(lo, hi float64) float64 {
	i0 := int(lo * float64(SpectrumBins))
	if i0 < 0 {
		i0 = 0
	}
	if i0 > SpectrumBins-1 {
		i0 = SpectrumBins - 1
	}
	i1 := int(hi * float64(SpectrumBins))
	if i1 <= i0 {
		i1 = i0 + 1
	}
	if i1 > SpectrumBins {
		i1 = SpectrumBins
	}
	sum := 0.0
	for i := i0; i < i1; i++ {
		sum += a.spectrum[i]
	}
	return sum / float64(i1-i0)
}

// Update advances playback by dt, recomputes the spectrum at the new
// position, and re-derives the beat state.
func (a *Analyzer) Update(dt float64) {
	if len(a.samples) == 0 {
		return
	}
	a.playhead += dt
	trackLen := float64(len(a.samples)) / float64(a.sampleRate)
	if a.playhead >= trackLen {
		a.playhead = math.Mod(a.playhead, trackLen)
	}

	a.computeSpectrum()
	fired := a.detectBeat()
	a.updateBeatState(fired)
}

// computeSpectrum windows the samples at the playhead, takes the magnitude
// spectrum, applies the perceptual weighting curve, clamps, and smooths
// against the previous frame.
func (a *Analyzer) computeSpectrum() {
	start := int(a.playhead * float64(a.sampleRate))
	buf := make([]float64, FFTSize)
	n := len(a.samples)
	for i := 0; i < FFTSize; i++ {
		buf[i] = float64(a.samples[(start+i)%n]) * a.hann[i]
	}

	spec := fft.FFTReal(buf)
	for i := 0; i < SpectrumBins; i++ {
		re := real(spec[i])
		im := imag(spec[i])
		mag := math.Sqrt(re*re+im*im) * (2.0 / FFTSize)

		mag *= perceptualWeight(float64(i) / float64(SpectrumBins-1))
		if mag > 1 {
			mag = 1
		}
		a.spectrum[i] = spectrumSmoothing*a.spectrum[i] + (1-spectrumSmoothing)*mag
	}
}

// perceptualWeight attenuates the naturally dominant bass end and boosts
// treble so the spectrum reads evenly across the uniform surface.
func perceptualWeight(t float64) float64 {
	return 0.4 + 1.6*math.Pow(t, 0.6)
}

// detectBeat tracks smoothed energy in the lowest ~10% of bins and fires a
// beat when it crosses above mean(history)*threshold from below.
func (a *Analyzer) detectBeat() bool {
	lowBins := SpectrumBins / 10
	e := 0.0
	for i := 0; i < lowBins; i++ {
		e += a.spectrum[i]
	}
	e /= float64(lowBins)
	a.bassEnergy = energySmoothing*a.bassEnergy + (1-energySmoothing)*e

	now := a.playhead
	a.energyHistory = append(a.energyHistory, a.bassEnergy)
	a.trimEnergyHistory()

	mean := 0.0
	for _, s := range a.energyHistory {
		mean += s
	}
	mean /= float64(len(a.energyHistory))

	fired := false
	above := a.bassEnergy > mean*beatThreshold
	if above && !a.wasAbove {
		if a.lastBeatTime < 0 || beatInterval(a.lastBeatTime, now, a.trackLen()) >= minBeatInterval {
			a.beatTimes = append(a.beatTimes, now)
			a.lastBeatTime = now
			a.trimBeatTimes(now)
			fired = true
		}
	}
	a.wasAbove = above
	return fired
}

func (a *Analyzer) trackLen() float64 {
	return float64(len(a.samples)) / float64(a.sampleRate)
}

func (a *Analyzer) trimEnergyHistory() {
	// History length is bounded by update count over ~2s; updates arrive at
	// frame rate, so cap by an assumed 60 Hz worth of entries.
	maxEntries := int(energyHistorySecs * 60)
	if len(a.energyHistory) > maxEntries {
		a.energyHistory = a.energyHistory[len(a.energyHistory)-maxEntries:]
	}
}

func (a *Analyzer) trimBeatTimes(now float64) {
	cut := 0
	for cut < len(a.beatTimes) && beatInterval(a.beatTimes[cut], now, a.trackLen()) > beatHistorySecs {
		cut++
	}
	a.beatTimes = a.beatTimes[cut:]
}

// beatInterval is the elapsed time from t0 to t1 on a looping track.
func beatInterval(t0, t1, trackLen float64) float64 {
	d := t1 - t0
	if d < 0 {
		d += trackLen
	}
	return d
}

// updateBeatState computes BPM as the median of inter-beat intervals over
// the beat history, filtered to a plausible range and smoothed by a short
// rolling median of recent estimates.
func (a *Analyzer) updateBeatState(beatFired bool) {
	if beatFired && len(a.beatTimes) >= 2 {
		intervals := make([]float64, 0, len(a.beatTimes)-1)
		for i := 1; i < len(a.beatTimes); i++ {
			intervals = append(intervals, beatInterval(a.beatTimes[i-1], a.beatTimes[i], a.trackLen()))
		}
		bpm := 60.0 / median(intervals)
		if bpm >= minBPM && bpm <= maxBPM {
			a.bpmEstimates = append(a.bpmEstimates, bpm)
			if len(a.bpmEstimates) > bpmEstimateWindow {
				a.bpmEstimates = a.bpmEstimates[1:]
			}
		}
	}

	if len(a.bpmEstimates) > 0 {
		a.beat.BPM = median(append([]float64(nil), a.bpmEstimates...))
	}
	a.beat.Confidence = float64(len(a.bpmEstimates)) / float64(bpmEstimateWindow)

	if a.lastBeatTime >= 0 {
		since := beatInterval(a.lastBeatTime, a.playhead, a.trackLen())
		if a.beat.BPM > 0 {
			period := 60.0 / a.beat.BPM
			a.beat.Phase = math.Mod(since/period, 1.0)
		}
		pulse := 1.0 - since/pulseDecaySecs
		if pulse < 0 {
			pulse = 0
		}
		a.beat.Pulse = pulse
	}
}

func median(vals []float64) float64 {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}
