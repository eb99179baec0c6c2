package focus

import "orbit-gallery/internal/gallery"

// Mode is the focus state.
type Mode int

const (
	Unfocused Mode = iota
	Focused
)

func (m Mode) String() string {
	switch m {
	case Focused:
		return "focused"
	default:
		return "unfocused"
	}
}

// EventKind distinguishes focus transitions.
type EventKind int

const (
	// Entered fires when focus starts from the unfocused state.
	Entered EventKind = iota
	// Exited fires when focus is cleared.
	Exited
	// Switched fires when focus moves directly from one item to another.
	Switched
)

func (k EventKind) String() string {
	switch k {
	case Entered:
		return "entered"
	case Exited:
		return "exited"
	case Switched:
		return "switched"
	default:
		return "unknown"
	}
}

// Event reports a transition. Item is the newly focused item, or the one that was
// focused for Exited.
type Event struct {
	Kind EventKind
	Item *gallery.Item
}

// Subscribe registers fn for every transition. Callbacks run synchronously inside
// the input or clear call that caused them.
func (m *Machine) Subscribe(fn func(Event)) {
	m.subscribers = append(m.subscribers, fn)
}

func (m *Machine) emit(kind EventKind, it *gallery.Item) {
	ev := Event{Kind: kind, Item: it}
	for _, fn := range m.subscribers {
		fn(ev)
	}
}

type clearConfig struct {
	instant bool
}

// ClearOption modifies ClearFocus.
type ClearOption func(*clearConfig)

// WithInstant snaps items back to their saved state instead of tweening.
func WithInstant() ClearOption {
	return func(c *clearConfig) { c.instant = true }
}
