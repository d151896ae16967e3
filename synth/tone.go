package synth

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

// Synthesis constants
const (
	SampleRate = 48000
	AttackMs   = 100
	ReleaseMs  = 50
	Gain       = 0.3
)

// ErrInvalidArgument is returned for non-positive frequencies, durations or sample rates
var ErrInvalidArgument = errors.New("invalid synthesis argument")

// Buffer is a mono block of float samples at a fixed sample rate
type Buffer struct {
	SampleRate int
	Samples    []float32
}

// Duration returns the playback length of the buffer
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.SampleRate)
}

// Peak returns the largest absolute sample value
func (b Buffer) Peak() float64 {
	var peak float64
	for _, s := range b.Samples {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}
	return peak
}

// Bytes encodes the samples as float32 little-endian PCM
func (b Buffer) Bytes() []byte {
	out := make([]byte, 4*len(b.Samples))
	for i, s := range b.Samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}

// Generator renders envelope-shaped sine tones
type Generator struct {
	SampleRate int
	Gain       float64
}

// DefaultGenerator returns a generator at 48kHz with 0.3 headroom gain
func DefaultGenerator() Generator {
	return Generator{SampleRate: SampleRate, Gain: Gain}
}

// GenerateTone renders a tone of durationMs milliseconds with the default generator
func GenerateTone(frequency float64, durationMs int) (Buffer, error) {
	if int64(durationMs) > int64(math.MaxInt64/time.Millisecond) {
		return Buffer{}, fmt.Errorf("duration %dms: %w", durationMs, ErrInvalidArgument)
	}
	return DefaultGenerator().Tone(frequency, time.Duration(durationMs)*time.Millisecond)
}

// Tone renders one sine tone at frequency Hz lasting d.
// The first SampleRate/10 samples ramp up from zero and the last SampleRate/20
// ramp down. When the tone is shorter than both windows combined the attack
// ramp wins and the release formula applies to whatever follows it.
func (g Generator) Tone(frequency float64, d time.Duration) (Buffer, error) {
	if g.SampleRate <= 0 {
		return Buffer{}, fmt.Errorf("sample rate %d: %w", g.SampleRate, ErrInvalidArgument)
	}
	if math.IsNaN(frequency) || math.IsInf(frequency, 0) || frequency <= 0 {
		return Buffer{}, fmt.Errorf("frequency %v: %w", frequency, ErrInvalidArgument)
	}
	if d <= 0 {
		return Buffer{}, fmt.Errorf("duration %v: %w", d, ErrInvalidArgument)
	}

	rate := float64(g.SampleRate)
	total := int(math.Round(rate * d.Seconds()))
	if total == 0 {
		return Buffer{}, fmt.Errorf("duration %v is under one sample: %w", d, ErrInvalidArgument)
	}
	attack := g.SampleRate * AttackMs / 1000
	release := g.SampleRate * ReleaseMs / 1000

	samples := make([]float32, total)
	step := 2 * math.Pi * frequency / rate
	for i := range samples {
		raw := math.Sin(step * float64(i))

		env := 1.0
		if i < attack {
			env = float64(i) / float64(attack)
		} else if i > total-release {
			env = float64(total-i) / float64(release)
		}

		samples[i] = float32(raw * env * g.Gain)
	}

	return Buffer{SampleRate: g.SampleRate, Samples: samples}, nil
}
