package suggest

// Event is an input to Transition.
type Event interface {
	event()
}

// Key identifies a navigation key.
type Key int

const (
	ArrowDown Key = iota
	ArrowUp
	Enter
	Escape
)

func (k Key) String() string {
	switch k {
	case ArrowDown:
		return "ArrowDown"
	case ArrowUp:
		return "ArrowUp"
	case Enter:
		return "Enter"
	case Escape:
		return "Escape"
	default:
		return "Unknown"
	}
}

type (
	// Focus is sent when the field gains focus.
	Focus struct{}
	// Blur is sent when the field loses focus.
	Blur struct{}
	// TextChanged carries the raw input text after an edit.
	TextChanged struct{ Value string }
	// KeyPressed carries a navigation key.
	KeyPressed struct{ Key Key }
	// Hover points at a ranked row.
	Hover struct{ Index int }
	// Click selects a ranked row.
	Click struct{ Index int }
	// OutsideClick is a pointer press outside the field and its list.
	OutsideClick struct{}
	// SetValue replaces the text from outside, without callbacks.
	SetValue struct{ Value string }
	// SetCandidates swaps the candidate list.
	SetCandidates struct{ Candidates []string }
)

func (Focus) event()         {}
func (Blur) event()          {}
func (TextChanged) event()   {}
func (KeyPressed) event()    {}
func (Hover) event()         {}
func (Click) event()         {}
func (OutsideClick) event()  {}
func (SetValue) event()      {}
func (SetCandidates) event() {}

// Effect is an outward notification produced by Transition.
type Effect interface {
	effect()
}

type (
	// Changed reports the field text changed (onChange only).
	Changed struct{ Value string }
	// Selected reports a committed candidate (onChange and onSelect).
	Selected struct{ Value string }
)

func (Changed) effect()  {}
func (Selected) effect() {}
