package keymap

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Velocity used when a pitch event is encoded as a MIDI message
const Velocity uint8 = 100

// Key is one playable key of the layout
type Key struct {
	Char      rune
	Note      gomidi.Note // C4 = 60
	Frequency float64
	Name      string
	Black     bool
}

// PitchEvent is produced when a mapped key is pressed
type PitchEvent struct {
	Key       rune
	Note      gomidi.Note
	Frequency float64
}

// Message encodes the event as a NoteOn on channel 0
func (e PitchEvent) Message() gomidi.Message {
	return e.Note.NoteOn(0, Velocity)
}

// gomidi counts octaves from MIDI note 0, so middle C is its octave 5
const gomidiOctave = 1

// AZERTY home and top rows, two chromatic octaves from C4
var layout = []struct {
	char rune
	note gomidi.Note
	freq float64
}{
	{'a', gomidi.C(5), 261.63},
	{'z', gomidi.Db(5), 277.18},
	{'e', gomidi.D(5), 293.66},
	{'r', gomidi.Eb(5), 311.13},
	{'t', gomidi.E(5), 329.63},
	{'y', gomidi.F(5), 349.23},
	{'u', gomidi.Gb(5), 369.99},
	{'i', gomidi.G(5), 392.00},
	{'o', gomidi.Ab(5), 415.30},
	{'p', gomidi.A(5), 440.00},
	{'q', gomidi.Bb(5), 466.16},
	{'s', gomidi.B(5), 493.88},
	{'d', gomidi.C(6), 523.25},
	{'f', gomidi.Db(6), 554.37},
	{'g', gomidi.D(6), 587.33},
	{'h', gomidi.Eb(6), 622.25},
	{'j', gomidi.E(6), 659.25},
	{'k', gomidi.F(6), 698.46},
	{'l', gomidi.Gb(6), 739.99},
	{'m', gomidi.G(6), 783.99},
}

var keys = func() []Key {
	out := make([]Key, len(layout))
	for i, l := range layout {
		out[i] = Key{
			Char:      l.char,
			Note:      l.note,
			Frequency: l.freq,
			Name:      NoteLabel(l.note),
			Black:     Accidental(l.note),
		}
	}
	return out
}()

var byChar = func() map[rune]Key {
	m := make(map[rune]Key, len(keys))
	for _, k := range keys {
		m[k.Char] = k
	}
	return m
}()

// Accidental reports whether n is a black key
func Accidental(n gomidi.Note) bool {
	switch n.Base() {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// NoteLabel names n with sharps in scientific pitch notation (60 = "C4")
func NoteLabel(n gomidi.Note) string {
	name := n.Name()
	if Accidental(n) {
		name = n.Transpose(-gomidi.MinorSecond).Name() + "#"
	}
	return fmt.Sprintf("%s%d", name, int(n.Octave())-gomidiOctave)
}

// Keys returns every mapped key in pitch order
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

// Octaves returns the display rows: a full octave, then the upper eight keys
func Octaves() [][]rune {
	return [][]rune{
		{'a', 'z', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p', 'q', 's'},
		{'d', 'f', 'g', 'h', 'j', 'k', 'l', 'm'},
	}
}

func Lookup(r rune) (Key, bool) {
	k, ok := byChar[r]
	return k, ok
}

func Frequency(r rune) (float64, bool) {
	k, ok := byChar[r]
	return k.Frequency, ok
}

// NoteName returns the note name for r, or "?" if r is not mapped
func NoteName(r rune) string {
	if k, ok := byChar[r]; ok {
		return k.Name
	}
	return "?"
}

func IsBlack(r rune) bool {
	return byChar[r].Black
}

// Event builds the pitch event for a keystroke
func Event(r rune) (PitchEvent, bool) {
	k, ok := byChar[r]
	if !ok {
		return PitchEvent{}, false
	}
	return PitchEvent{Key: k.Char, Note: k.Note, Frequency: k.Frequency}, true
}
