package audio

import (
	"errors"
	"fmt"
	"sync"

	"go-piano/synth"
)

var (
	// ErrBusy is returned when every playback slot is in use
	ErrBusy = errors.New("audio: all playback slots busy")
	// ErrClosed is returned by Play after Close
	ErrClosed = errors.New("audio: sink closed")
)

// Sink plays mono tone buffers. Play hands the buffer over and returns
// without waiting for playback; the caller must not touch it afterwards.
type Sink interface {
	Play(buf synth.Buffer) error
	Close() error
}

func checkRate(buf synth.Buffer, rate int) error {
	if buf.SampleRate != rate {
		return fmt.Errorf("audio: buffer at %d Hz, sink at %d Hz", buf.SampleRate, rate)
	}
	return nil
}

// Headless is a Sink without an output device. It keeps the buffers it
// receives, for muted sessions and tests.
type Headless struct {
	sampleRate int
	keep       int // max buffers retained, 0 keeps all

	mu      sync.Mutex
	buffers []synth.Buffer
	played  int
	closed  bool
}

func NewHeadless(sampleRate int) *Headless {
	return &Headless{sampleRate: sampleRate}
}

// NewHeadlessKeep retains only the most recent keep buffers
func NewHeadlessKeep(sampleRate, keep int) *Headless {
	return &Headless{sampleRate: sampleRate, keep: keep}
}

func (h *Headless) Play(buf synth.Buffer) error {
	if err := checkRate(buf, h.sampleRate); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}
	h.played++
	h.buffers = append(h.buffers, buf)
	if h.keep > 0 && len(h.buffers) > h.keep {
		n := copy(h.buffers, h.buffers[len(h.buffers)-h.keep:])
		clear(h.buffers[n:])
		h.buffers = h.buffers[:n]
	}
	return nil
}

// Played counts every buffer accepted, retained or not
func (h *Headless) Played() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.played
}

// Buffers returns the buffers played so far
func (h *Headless) Buffers() []synth.Buffer {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]synth.Buffer, len(h.buffers))
	copy(out, h.buffers)
	return out
}

func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}
