package keystate

import "time"

// ExpiryWindow is how long a press stays visually active
const ExpiryWindow = 500 * time.Millisecond

// Press is one recorded keystroke
type Press struct {
	Key       rune
	PressedAt time.Time
}

// Note is the key and pitch of a press
type Note struct {
	Key       rune
	Frequency float64
}

// Tracker holds recently pressed keys for the keyboard view.
// Expired presses are pruned when a new press is recorded, never on read,
// so a stale press stays visible until the next one arrives.
// A Tracker is owned by a single goroutine.
type Tracker struct {
	window  time.Duration
	presses []Press
	last    Note
	hasLast bool
}

// New creates a tracker with the default 500ms expiry window
func New() *Tracker {
	return NewWithWindow(ExpiryWindow)
}

// NewWithWindow creates a tracker with a custom expiry window
func NewWithWindow(window time.Duration) *Tracker {
	return &Tracker{window: window}
}

// Press records a keystroke at now and prunes expired presses
func (t *Tracker) Press(key rune, frequency float64, now time.Time) {
	t.last = Note{Key: key, Frequency: frequency}
	t.hasLast = true
	t.presses = append(t.presses, Press{Key: key, PressedAt: now})
	t.prune(now)
}

func (t *Tracker) prune(now time.Time) {
	kept := t.presses[:0]
	for _, p := range t.presses {
		if now.Sub(p.PressedAt) < t.window {
			kept = append(kept, p)
		}
	}
	// zero the tail so dropped presses don't linger in the backing array
	for i := len(kept); i < len(t.presses); i++ {
		t.presses[i] = Press{}
	}
	t.presses = kept
}

// IsActive reports whether key has a press in the current set
func (t *Tracker) IsActive(key rune) bool {
	for _, p := range t.presses {
		if p.Key == key {
			return true
		}
	}
	return false
}

// LastPlayed returns the most recent press regardless of expiry
func (t *Tracker) LastPlayed() (Note, bool) {
	return t.last, t.hasLast
}

// Active returns a copy of the current press set, oldest first
func (t *Tracker) Active() []Press {
	out := make([]Press, len(t.presses))
	copy(out, t.presses)
	return out
}

// Snapshot captures the state the renderer needs for one frame
func (t *Tracker) Snapshot() Snapshot {
	active := make(map[rune]bool, len(t.presses))
	for _, p := range t.presses {
		active[p.Key] = true
	}
	return Snapshot{Last: t.last, HasLast: t.hasLast, active: active}
}

// Snapshot is a read-only view of a Tracker
type Snapshot struct {
	Last    Note
	HasLast bool
	active  map[rune]bool
}

// IsActive reports whether key was active when the snapshot was taken
func (s Snapshot) IsActive(key rune) bool {
	return s.active[key]
}
