package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-piano/audio"
	"go-piano/debug"
	"go-piano/keymap"
	"go-piano/keystate"
	"go-piano/synth"
	"go-piano/theme"
	"go-piano/widgets"
)

// FrameInterval is the redraw cadence when no key arrives
const FrameInterval = 50 * time.Millisecond

const defaultWidth = 80

// ticksPerReport spaces the redraw log lines ten seconds apart
const ticksPerReport = int(10 * time.Second / FrameInterval)

var octaveTitles = []string{"OCTAVE 1", "OCTAVE 2"}

var helpKeys = []widgets.KeyBinding{
	{Key: "a-s", Desc: "C4-B4"},
	{Key: "d-m", Desc: "C5-G5"},
	{Key: "esc/ctrl+c", Desc: "quit"},
}

// Model binds keystrokes to tone playback and the keyboard view.
// Each recognized key generates a tone, hands it to the sink and records
// the press in the tracker.
type Model struct {
	Tracker    *keystate.Tracker
	Generator  synth.Generator
	Sink       audio.Sink
	Theme      *theme.Theme
	ToneLength time.Duration

	now      func() time.Time
	width    int
	failures int
	quitting bool
}

// TickMsg drives periodic redraws
type TickMsg time.Time

func NewModel(sink audio.Sink, th *theme.Theme, toneLength time.Duration) Model {
	return Model{
		Tracker:    keystate.New(),
		Generator:  synth.DefaultGenerator(),
		Sink:       sink,
		Theme:      th,
		ToneLength: toneLength,
		now:        time.Now,
		width:      defaultWidth,
	}
}

// WithClock replaces the clock used to timestamp presses
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m
}

// Failures counts tones that could not be generated or played
func (m Model) Failures() int {
	return m.failures
}

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyRunes:
			if len(msg.Runes) == 1 && !msg.Alt && !msg.Paste {
				m.press(msg.Runes[0])
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case TickMsg:
		debug.LogEvery(ticksPerReport, "frame", "active presses: %d", len(m.Tracker.Active()))
		return m, tick()
	}

	return m, nil
}

func (m *Model) press(r rune) {
	ev, ok := keymap.Event(r)
	if !ok {
		return
	}

	buf, err := m.Generator.Tone(ev.Frequency, m.ToneLength)
	if err == nil {
		err = m.Sink.Play(buf)
	}
	if err != nil {
		m.failures++
		debug.Log("audio", "%c: %v", r, err)
	}

	// the press counts visually even when the tone failed
	m.Tracker.Press(ev.Key, ev.Frequency, m.now())
	debug.Log("key", "%c %.2fHz %v", r, ev.Frequency, ev.Message())
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Tracker.Snapshot()
	th := m.Theme

	var out strings.Builder
	out.WriteString(widgets.RenderTitle(th, "go-piano  virtual keyboard", m.width))
	out.WriteString("\n")

	for i, row := range keymap.Octaves() {
		out.WriteString(widgets.RenderOctave(th, octaveTitles[i], row, snap, m.width))
		out.WriteString("\n")
	}

	out.WriteString(widgets.RenderInfo(th, snap, m.width))
	out.WriteString("\n")

	help := lipgloss.NewStyle().Foreground(th.Help()).Render(widgets.RenderKeyLine(helpKeys))
	out.WriteString(help)

	if m.failures > 0 {
		dim := lipgloss.NewStyle().Foreground(th.Muted())
		out.WriteString("\n")
		out.WriteString(dim.Render(fmt.Sprintf("%d tone(s) dropped", m.failures)))
	}

	return out.String()
}
