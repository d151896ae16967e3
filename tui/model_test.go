package tui

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-piano/audio"
	"go-piano/debug"
	"go-piano/synth"
	"go-piano/theme"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type failingSink struct{}

func (failingSink) Play(synth.Buffer) error { return audio.ErrBusy }
func (failingSink) Close() error            { return nil }

func newTestModel(sink audio.Sink) (Model, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewModel(sink, theme.New(theme.DefaultPalette()), 500*time.Millisecond).WithClock(clock.now)
	return m, clock
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestPressPlaysToneAndTracksKey(t *testing.T) {
	sink := audio.NewHeadless(synth.SampleRate)
	m, clock := newTestModel(sink)

	m, _ = update(t, m, key('a'))

	bufs := sink.Buffers()
	if len(bufs) != 1 {
		t.Fatalf("got %d tones, want 1", len(bufs))
	}
	buf := bufs[0]
	if buf.SampleRate != 48000 || len(buf.Samples) != 24000 {
		t.Fatalf("tone = %d samples at %d Hz, want 24000 at 48000", len(buf.Samples), buf.SampleRate)
	}

	// ramp up from zero, sustain at 0.3, ramp down to (nearly) zero
	if buf.Samples[0] != 0 {
		t.Errorf("first sample = %v, want 0", buf.Samples[0])
	}
	if peak := (synth.Buffer{SampleRate: 48000, Samples: buf.Samples[:480]}).Peak(); peak > 0.3*0.1 {
		t.Errorf("first 10ms peak %v, attack ramp too steep", peak)
	}
	mid := 12000
	want := math.Sin(2*math.Pi*261.63*float64(mid)/48000) * 0.3
	if math.Abs(float64(buf.Samples[mid])-want) > 1e-6 {
		t.Errorf("mid sample = %v, want %v", buf.Samples[mid], want)
	}
	if last := math.Abs(float64(buf.Samples[len(buf.Samples)-1])); last > 0.3/2400+1e-6 {
		t.Errorf("last sample = %v, want near 0", last)
	}

	if !m.Tracker.IsActive('a') {
		t.Error("'a' not active right after press")
	}

	clock.advance(600 * time.Millisecond)
	m, _ = update(t, m, key('z'))
	if m.Tracker.IsActive('a') {
		t.Error("'a' still active after a press 600ms later")
	}
	last, ok := m.Tracker.LastPlayed()
	if !ok || last.Key != 'z' || last.Frequency != 277.18 {
		t.Errorf("LastPlayed() = %+v, %v", last, ok)
	}
}

func TestUnmappedKeyIgnored(t *testing.T) {
	sink := audio.NewHeadless(synth.SampleRate)
	m, _ := newTestModel(sink)

	m, _ = update(t, m, key('b'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("azerty"), Paste: true})

	if n := len(sink.Buffers()); n != 0 {
		t.Errorf("got %d tones, want 0", n)
	}
	if _, ok := m.Tracker.LastPlayed(); ok {
		t.Error("unmapped keys reached the tracker")
	}
}

func TestPlaybackFailureKeepsVisualPress(t *testing.T) {
	m, _ := newTestModel(failingSink{})

	m, _ = update(t, m, key('p'))

	if !m.Tracker.IsActive('p') {
		t.Error("'p' not active after failed playback")
	}
	if m.Failures() != 1 {
		t.Errorf("Failures() = %d, want 1", m.Failures())
	}
	if !strings.Contains(m.View(), "1 tone(s) dropped") {
		t.Error("view does not report the dropped tone")
	}
}

func TestInvalidToneLengthCountsAsFailure(t *testing.T) {
	sink := audio.NewHeadless(synth.SampleRate)
	m, _ := newTestModel(sink)
	m.ToneLength = 0

	m, _ = update(t, m, key('a'))

	if len(sink.Buffers()) != 0 {
		t.Error("zero-length tone reached the sink")
	}
	if m.Failures() != 1 || !m.Tracker.IsActive('a') {
		t.Errorf("failures = %d, active = %v", m.Failures(), m.Tracker.IsActive('a'))
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m, _ := newTestModel(audio.NewHeadless(synth.SampleRate))
		m, cmd := update(t, m, msg)
		if cmd == nil {
			t.Fatalf("%v: no command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: command is not tea.Quit", msg)
		}
		if m.View() != "" {
			t.Errorf("%v: view not cleared on quit", msg)
		}
	}

	// 'q' is a note, not quit
	m, _ := newTestModel(audio.NewHeadless(synth.SampleRate))
	m, _ = update(t, m, key('q'))
	if !m.Tracker.IsActive('q') {
		t.Error("'q' did not play")
	}
}

func TestTickKeepsRedrawing(t *testing.T) {
	m, _ := newTestModel(audio.NewHeadless(synth.SampleRate))
	if m.Init() == nil {
		t.Fatal("Init returned no tick")
	}
	_, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick not rescheduled")
	}
}

func TestViewShowsKeyboardAndLastNote(t *testing.T) {
	m, _ := newTestModel(audio.NewHeadless(synth.SampleRate))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	v := m.View()
	for _, want := range []string{"OCTAVE 1", "OCTAVE 2", "C4", "G5", "Press a key", "esc/ctrl+c:quit"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = update(t, m, key('m'))
	if v := m.View(); !strings.Contains(v, "Last note: M (G5) - 783.99 Hz") {
		t.Errorf("view missing last note:\n%s", v)
	}
}

func TestTicksReportActivePresses(t *testing.T) {
	var buf bytes.Buffer
	debug.EnableWriter(&buf)
	defer debug.Disable()

	m, _ := newTestModel(audio.NewHeadless(synth.SampleRate))
	m, _ = update(t, m, key('a'))
	m, _ = update(t, m, key('p'))

	// any run of ticksPerReport ticks logs exactly one report
	for i := 0; i < ticksPerReport; i++ {
		m, _ = update(t, m, TickMsg(time.Time{}))
	}
	if n := strings.Count(buf.String(), "active presses: 2"); n != 1 {
		t.Errorf("got %d frame reports, want 1:\n%s", n, buf.String())
	}
}
