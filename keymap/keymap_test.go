package keymap

import (
	"math"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestLayoutCoversTwentyKeys(t *testing.T) {
	all := Keys()
	if len(all) != 20 {
		t.Fatalf("got %d keys, want 20", len(all))
	}

	seen := make(map[rune]bool)
	n := 0
	for _, row := range Octaves() {
		for _, r := range row {
			if seen[r] {
				t.Errorf("key %q appears twice in the layout", r)
			}
			seen[r] = true
			if _, ok := Lookup(r); !ok {
				t.Errorf("display key %q has no mapping", r)
			}
			n++
		}
	}
	if n != len(all) {
		t.Errorf("display rows hold %d keys, want %d", n, len(all))
	}
}

func TestFrequenciesAreEqualTempered(t *testing.T) {
	for _, k := range Keys() {
		want := 440 * math.Pow(2, (float64(k.Note)-69)/12)
		if math.Abs(k.Frequency-want) > 0.01 {
			t.Errorf("%q (%s) = %v Hz, want %.2f", k.Char, k.Name, k.Frequency, want)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		r     rune
		freq  float64
		name  string
		black bool
	}{
		{'a', 261.63, "C4", false},
		{'z', 277.18, "C#4", true},
		{'p', 440.00, "A4", false},
		{'s', 493.88, "B4", false},
		{'d', 523.25, "C5", false},
		{'l', 739.99, "F#5", true},
		{'m', 783.99, "G5", false},
	}

	for _, tt := range tests {
		f, ok := Frequency(tt.r)
		if !ok || f != tt.freq {
			t.Errorf("Frequency(%q) = %v, %v; want %v", tt.r, f, ok, tt.freq)
		}
		if got := NoteName(tt.r); got != tt.name {
			t.Errorf("NoteName(%q) = %q, want %q", tt.r, got, tt.name)
		}
		if got := IsBlack(tt.r); got != tt.black {
			t.Errorf("IsBlack(%q) = %v, want %v", tt.r, got, tt.black)
		}
	}
}

func TestUnmappedKeys(t *testing.T) {
	for _, r := range []rune{'b', 'x', 'A', '1', ' ', 'é'} {
		if _, ok := Frequency(r); ok {
			t.Errorf("Frequency(%q) reported a mapping", r)
		}
		if got := NoteName(r); got != "?" {
			t.Errorf("NoteName(%q) = %q, want ?", r, got)
		}
		if _, ok := Event(r); ok {
			t.Errorf("Event(%q) reported an event", r)
		}
	}
}

func TestEventMessage(t *testing.T) {
	ev, ok := Event('p')
	if !ok {
		t.Fatal("Event('p') not mapped")
	}
	if ev.Key != 'p' || ev.Frequency != 440.0 || ev.Note != 69 {
		t.Fatalf("Event('p') = %+v", ev)
	}

	var ch, key, vel uint8
	if !ev.Message().GetNoteOn(&ch, &key, &vel) {
		t.Fatal("Message() is not a NoteOn")
	}
	if ch != 0 || key != 69 || vel != Velocity {
		t.Errorf("NoteOn = ch %d key %d vel %d", ch, key, vel)
	}
}

func TestNoteLabel(t *testing.T) {
	tests := []struct {
		note  gomidi.Note
		label string
		black bool
	}{
		{60, "C4", false},
		{61, "C#4", true},
		{63, "D#4", true},
		{64, "E4", false},
		{66, "F#4", true},
		{69, "A4", false},
		{70, "A#4", true},
		{71, "B4", false},
		{72, "C5", false},
		{78, "F#5", true},
		{21, "A0", false},
		{0, "C-1", false},
	}

	for _, tt := range tests {
		if got := NoteLabel(tt.note); got != tt.label {
			t.Errorf("NoteLabel(%d) = %q, want %q", tt.note, got, tt.label)
		}
		if got := Accidental(tt.note); got != tt.black {
			t.Errorf("Accidental(%d) = %v, want %v", tt.note, got, tt.black)
		}
	}
}

func TestLayoutNamesFollowMIDINumbers(t *testing.T) {
	want := []string{
		"C4", "C#4", "D4", "D#4", "E4", "F4", "F#4", "G4", "G#4", "A4", "A#4", "B4",
		"C5", "C#5", "D5", "D#5", "E5", "F5", "F#5", "G5",
	}
	all := Keys()
	for i, k := range all {
		if k.Note != gomidi.Note(60+i) {
			t.Errorf("%q note = %d, want %d", k.Char, k.Note, 60+i)
		}
		if k.Name != want[i] {
			t.Errorf("%q name = %q, want %q", k.Char, k.Name, want[i])
		}
		if k.Black != Accidental(k.Note) {
			t.Errorf("%q black = %v, want %v", k.Char, k.Black, !k.Black)
		}
	}
}
