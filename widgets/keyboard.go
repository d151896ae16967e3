package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-piano/keymap"
	"go-piano/keystate"
	"go-piano/theme"
)

// Key widths in cells, border included
const (
	MinKeyWidth = 5
	MaxKeyWidth = 9
)

// KeyWidth fits n keys into a frame of the given total width
func KeyWidth(total, n int) int {
	if n <= 0 {
		return MinKeyWidth
	}
	w := (total - 4) / n // frame border and padding
	if w < MinKeyWidth {
		return MinKeyWidth
	}
	if w > MaxKeyWidth {
		return MaxKeyWidth
	}
	return w
}

// RenderKey renders one key: its character over its note name
func RenderKey(th *theme.Theme, r rune, pressed bool, width int) string {
	c := th.Key(keymap.IsBlack(r), pressed)

	char := lipgloss.NewStyle().
		Foreground(c.FG).
		Background(c.BG).
		Bold(true).
		Render(strings.ToUpper(string(r)))
	name := lipgloss.NewStyle().
		Foreground(c.Label).
		Background(c.BG).
		Render(keymap.NoteName(r))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.Border).
		Background(c.BG).
		Width(width - 2).
		Align(lipgloss.Center).
		Render(char + "\n" + name)
}

// RenderOctave renders a titled row of keys, highlighting active ones
func RenderOctave(th *theme.Theme, title string, keys []rune, snap keystate.Snapshot, width int) string {
	kw := KeyWidth(width, len(keys))

	cells := make([]string, len(keys))
	for i, r := range keys {
		cells[i] = RenderKey(th, r, snap.IsActive(r), kw)
	}

	heading := lipgloss.NewStyle().Foreground(th.Octave()).Bold(true).Render(title)
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(th.Octave()).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, heading, row))
}

// InfoText describes the last played note
func InfoText(snap keystate.Snapshot) string {
	if !snap.HasLast {
		return "Press a key to play..."
	}
	k := snap.Last.Key
	return fmt.Sprintf("Last note: %s (%s) - %.2f Hz", strings.ToUpper(string(k)), keymap.NoteName(k), snap.Last.Frequency)
}

// RenderInfo renders the last-note line in a frame
func RenderInfo(th *theme.Theme, snap keystate.Snapshot, width int) string {
	return lipgloss.NewStyle().
		Foreground(th.Info()).
		Border(lipgloss.NormalBorder()).
		BorderForeground(th.Info()).
		Align(lipgloss.Center).
		Width(frameWidth(width)).
		Render(InfoText(snap))
}

// RenderTitle renders the banner at the top of the screen
func RenderTitle(th *theme.Theme, title string, width int) string {
	return lipgloss.NewStyle().
		Foreground(th.Title()).
		Bold(true).
		Border(lipgloss.NormalBorder()).
		BorderForeground(th.Title()).
		Align(lipgloss.Center).
		Width(frameWidth(width)).
		Render(title)
}

func frameWidth(width int) int {
	if width < 20 {
		return 18
	}
	return width - 2
}
