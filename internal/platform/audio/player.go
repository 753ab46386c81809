// Package audio plays the game's named sound effects through the system
// speaker.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate the speaker is opened with.
const SampleRate = beep.SampleRate(44100)

// resampleQuality trades CPU for fidelity when a sound's rate differs from
// the speaker's.
const resampleQuality = 4

// SoundSource resolves sound ids to decoded buffers.
type SoundSource interface {
	Sound(id string) (*beep.Buffer, error)
}

// Player mixes triggered sounds into the speaker.
type Player struct {
	mu          sync.Mutex
	sounds      SoundSource
	mixer       *beep.Mixer
	rate        beep.SampleRate
	logger      *log.Logger
	initialized bool
}

// NewPlayer creates a player. It stays silent until Init succeeds.
func NewPlayer(sounds SoundSource, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		sounds: sounds,
		mixer:  &beep.Mixer{},
		rate:   SampleRate,
		logger: logger,
	}
}

// Init opens the speaker and starts mixing.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play triggers the sound with the given id. Unknown ids are logged and
// skipped.
func (p *Player) Play(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	buf, err := p.sounds.Sound(id)
	if err != nil {
		p.logger.Warn("sound unavailable", "id", id, "err", err)
		return
	}

	speaker.Lock()
	p.mixer.Add(streamFor(buf, p.rate))
	speaker.Unlock()
}

// Close stops every sound and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// streamFor returns a fresh streamer over buf at the given rate.
func streamFor(buf *beep.Buffer, rate beep.SampleRate) beep.Streamer {
	s := buf.Streamer(0, buf.Len())
	if from := buf.Format().SampleRate; from != rate {
		return beep.Resample(resampleQuality, from, rate, s)
	}
	return s
}

// Silent discards every sound.
type Silent struct{}

// Play does nothing.
func (Silent) Play(string) {}
