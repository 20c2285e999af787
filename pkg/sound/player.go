package sound

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player owns the speaker and plays pops through a shared mixer.
//
// The speaker runs on its own goroutine, so the mixer is only touched under
// speaker.Lock.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	volume      float64
	seed        int64
}

// NewPlayer creates a player; Init must be called before anything is heard.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: clamp(volume),
	}
}

// Init opens the audio device. A failure leaves the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted toggles output without closing the device.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether pops are suppressed.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// SetVolume sets the linear output volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = clamp(v)
	p.mu.Unlock()
}

// Volume returns the linear output volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// PlayPop queues a pop sized for particleCount. It reports whether anything
// was queued.
func (p *Player) PlayPop(particleCount int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted || particleCount <= 0 {
		return false
	}
	p.seed++
	pop := NewPop(SampleRate, Intensity(particleCount), p.volume, p.seed)

	speaker.Lock()
	p.mixer.Add(pop)
	speaker.Unlock()
	return true
}

// Close stops playback. The speaker itself stays open for the process.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
	log.Printf("[Sound] player closed")
}
