//go:build !headless

package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/sync/errgroup"

	"go-piano/debug"
	"go-piano/synth"
)

// DefaultWorkers bounds how many tones can sound at once
const DefaultWorkers = 16

// poll interval while waiting for a player to drain
const drainPoll = 10 * time.Millisecond

// OtoSink plays tones through the system audio device. Each tone gets its
// own oto player; the oto mixer sums overlapping tones.
type OtoSink struct {
	ctx        *oto.Context
	sampleRate int

	mu     sync.Mutex
	group  *errgroup.Group
	closed bool
}

// NewOtoSink opens the audio device for mono float32 output and waits until
// it is ready. workers <= 0 uses DefaultWorkers.
func NewOtoSink(sampleRate, workers int) (*OtoSink, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	g := new(errgroup.Group)
	g.SetLimit(workers)

	debug.Log("audio", "device ready: %d Hz, %d workers", sampleRate, workers)

	return &OtoSink{
		ctx:        ctx,
		sampleRate: sampleRate,
		group:      g,
	}, nil
}

var _ Sink = (*OtoSink)(nil)

// Play starts buf on a free playback slot and returns immediately
func (s *OtoSink) Play(buf synth.Buffer) error {
	if err := checkRate(buf, s.sampleRate); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	pcm := buf.Bytes()
	if !s.group.TryGo(func() error { return s.play(pcm) }) {
		return ErrBusy
	}
	return nil
}

func (s *OtoSink) play(pcm []byte) error {
	player := s.ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(drainPoll)
	}
	err := player.Err()
	if cerr := player.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		debug.Log("audio", "playback failed: %v", err)
	}
	return err
}

// Close stops accepting tones and waits for the ones already sounding,
// so teardown never cuts a tone mid-waveform.
func (s *OtoSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.group.Wait()
}
