// Package sound synthesizes the "pop" played when a burst fires.
//
// The pop is a short burst of decaying noise (the paper crack) layered over
// a low sine thump whose pitch drops as it fades. Nothing is loaded from
// disk; every streamer is generated on the fly.
package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate 所有合成音效使用的采样率
const SampleRate = beep.SampleRate(44100)

// Pop tuning.
const (
	CrackDuration = 70 * time.Millisecond
	ThumpDuration = 160 * time.Millisecond
	ThumpStartHz  = 140.0
	ThumpEndHz    = 55.0
)

// decay generates exp-decaying noise or a pitch-swept sine.
type decay struct {
	rate    beep.SampleRate
	total   int
	pos     int
	tau     float64 // seconds
	phase   float64
	startHz float64
	endHz   float64
	noise   *rand.Rand // nil means sine
	gain    float64
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	if d.pos >= d.total {
		return 0, false
	}
	for i := range samples {
		if d.pos >= d.total {
			return i, true
		}
		t := float64(d.pos) / float64(d.rate)
		env := math.Exp(-t/d.tau) * d.gain

		var v float64
		if d.noise != nil {
			v = d.noise.Float64()*2 - 1
		} else {
			progress := float64(d.pos) / float64(d.total)
			freq := d.startHz + (d.endHz-d.startHz)*progress
			v = math.Sin(2 * math.Pi * d.phase)
			d.phase += freq / float64(d.rate)
			d.phase -= math.Floor(d.phase)
		}

		samples[i][0] = v * env
		samples[i][1] = v * env
		d.pos++
	}
	return len(samples), true
}

func (d *decay) Err() error { return nil }

// NewCrack returns the noise layer of the pop.
func NewCrack(rate beep.SampleRate, seed int64) beep.Streamer {
	return &decay{
		rate:  rate,
		total: rate.N(CrackDuration),
		tau:   0.015,
		noise: rand.New(rand.NewSource(seed)),
		gain:  1,
	}
}

// NewThump returns the low sine layer of the pop.
func NewThump(rate beep.SampleRate) beep.Streamer {
	return &decay{
		rate:    rate,
		total:   rate.N(ThumpDuration),
		tau:     0.05,
		startHz: ThumpStartHz,
		endHz:   ThumpEndHz,
		gain:    1,
	}
}

// NewPop mixes crack and thump. Larger bursts get a louder crack; the
// intensity is clamped to [0, 1].
func NewPop(rate beep.SampleRate, intensity, volume float64, seed int64) beep.Streamer {
	intensity = clamp(intensity)
	mixed := beep.Mix(
		withVolume(NewCrack(rate, seed), 0.25+0.35*intensity),
		withVolume(NewThump(rate), 0.6),
	)
	return withVolume(mixed, volume)
}

// Intensity maps a particle count onto [0, 1] on a log scale; 500 particles
// and above are full intensity.
func Intensity(particleCount int) float64 {
	if particleCount <= 0 {
		return 0
	}
	return clamp(math.Log1p(float64(particleCount)) / math.Log1p(500))
}

// withVolume 线性音量转换为 effects.Volume（以 2 为底），0 表示静音
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func clamp(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
