package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
}

func New(palette *Palette) *Theme {
	return &Theme{Palette: palette}
}

// Color roles mapped to palette positions (0-1).
// The built-in palette has nine entries, one per role.
const (
	RoleBlackKey     = 0.0   // black key face
	RoleBlackBorder  = 0.125 // black key border
	RoleWhiteBorder  = 0.25  // white key border, muted text
	RoleWhiteKey     = 0.375 // white key face
	RolePressedBlack = 0.5   // pressed black key face, title
	RolePressedWhite = 0.625 // pressed white key face, help
	RolePressedLabel = 0.75  // note name on a pressed key
	RoleInfo         = 0.875 // last note line
	RoleOctave       = 1.0   // octave frame
)

// KeyColors is the face, text and border color of one key
type KeyColors struct {
	BG, FG, Border lipgloss.Color
	Label          lipgloss.Color
}

// Key returns the colors of a key in the given state
func (t *Theme) Key(black, pressed bool) KeyColors {
	label := t.Color(RoleWhiteBorder)
	if pressed {
		label = t.Color(RolePressedLabel)
	}

	switch {
	case pressed && black:
		return KeyColors{BG: t.Color(RolePressedBlack), FG: t.Color(RoleBlackKey), Border: t.Color(RolePressedWhite), Label: label}
	case pressed:
		return KeyColors{BG: t.Color(RolePressedWhite), FG: t.Color(RoleBlackKey), Border: t.Color(RolePressedBlack), Label: label}
	case black:
		return KeyColors{BG: t.Color(RoleBlackKey), FG: t.Color(RoleWhiteKey), Border: t.Color(RoleBlackBorder), Label: label}
	default:
		return KeyColors{BG: t.Color(RoleWhiteKey), FG: t.Color(RoleBlackKey), Border: t.Color(RoleWhiteBorder), Label: label}
	}
}

func (t *Theme) Title() lipgloss.Color {
	return t.Color(RolePressedBlack)
}

func (t *Theme) Info() lipgloss.Color {
	return t.Color(RoleInfo)
}

func (t *Theme) Help() lipgloss.Color {
	return t.Color(RolePressedWhite)
}

func (t *Theme) Octave() lipgloss.Color {
	return t.Color(RoleOctave)
}

func (t *Theme) Muted() lipgloss.Color {
	return t.Color(RoleWhiteBorder)
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
