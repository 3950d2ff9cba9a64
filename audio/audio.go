// Package audio plays synthesized sine tones through the system speaker.
// Everything is generated at runtime; no sample files are shipped.
package audio

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate beep.SampleRate = 44100

// Player owns the speaker. Init happens once in NewPlayer; if it fails the
// player stays usable and every PlayTone reports the failure so the caller
// can warn and carry on visual-only.
type Player struct {
	speakerLock sync.Mutex
	initErr     error
}

// NewPlayer initializes the speaker with a 100ms buffer.
func NewPlayer() *Player {
	p := &Player{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio disabled: failed to initialize speaker: %v", err)
		p.initErr = err
	}
	return p
}

// Available reports whether the speaker initialized.
func (p *Player) Available() bool {
	return p.initErr == nil
}

// Err returns the speaker init error, if any.
func (p *Player) Err() error {
	return p.initErr
}

// PlayTone queues a sine tone of the given frequency, length and linear
// volume. The speaker mixes on its own goroutine, so this returns as soon
// as the streamer is handed over; it never blocks for the tone's duration.
func (p *Player) PlayTone(freqHz, durMs int, volume float64) error {
	if p.initErr != nil {
		return fmt.Errorf("audio backend unavailable: %w", p.initErr)
	}

	tone, err := generators.SinTone(sampleRate, freqHz)
	if err != nil {
		return fmt.Errorf("generate %dHz tone: %w", freqHz, err)
	}

	n := sampleRate.N(time.Duration(durMs) * time.Millisecond)
	streamer := &effects.Volume{
		Streamer: beep.Take(n, tone),
		Base:     2,
		Volume:   math.Log2(math.Max(volume, 1e-4)),
		Silent:   volume <= 0,
	}

	p.speakerLock.Lock()
	defer p.speakerLock.Unlock()
	speaker.Play(streamer)
	return nil
}
