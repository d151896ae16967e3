//go:build headless

package audio

import (
	"errors"

	"go-piano/synth"
)

// DefaultWorkers bounds how many tones can sound at once
const DefaultWorkers = 16

// ErrNoDevice is returned by NewOtoSink in headless builds
var ErrNoDevice = errors.New("audio: built without an audio backend")

// OtoSink is unavailable in headless builds
type OtoSink struct{}

func NewOtoSink(sampleRate, workers int) (*OtoSink, error) {
	return nil, ErrNoDevice
}

func (s *OtoSink) Play(buf synth.Buffer) error { return ErrNoDevice }

func (s *OtoSink) Close() error { return nil }
