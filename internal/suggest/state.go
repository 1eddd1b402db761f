// Package suggest implements the autocomplete behaviour behind the rover and
// camera fields as a pure state machine.
//
// Transition takes the current State and an Event and returns the next State
// plus the Effects the caller must apply. Nothing here renders or performs
// I/O; the view layer translates key and mouse input into Events.
package suggest

import (
	"strings"

	"github.com/thesavant42/marsphotos/internal/match"
)

// DefaultRequiredMessage is shown when a required field holds no valid option.
const DefaultRequiredMessage = "Choose one of the available options"

// Config holds the per-field settings that do not change between events.
type Config struct {
	// Optional fields keep unmatched free text instead of raising an error.
	Optional bool
	// RequiredMessage overrides DefaultRequiredMessage.
	RequiredMessage string
}

func (c Config) requiredMessage() string {
	if c.RequiredMessage != "" {
		return c.RequiredMessage
	}
	return DefaultRequiredMessage
}

// State is the full state of one suggestion field.
// Active is -1 or a valid index into Ranked().
type State struct {
	Query      string
	Open       bool
	Active     int
	Err        string
	Candidates []string
}

// NewState returns a closed field over candidates holding value.
func NewState(candidates []string, value string) State {
	return State{
		Query:      value,
		Active:     -1,
		Candidates: candidates,
	}
}

// Ranked returns the candidates ordered by similarity to the query.
func (s State) Ranked() []string {
	return match.Rank(s.Candidates, s.Query)
}

// ActiveValue returns the highlighted ranked candidate, if any.
func (s State) ActiveValue() (string, bool) {
	ranked := s.Ranked()
	if s.Active < 0 || s.Active >= len(ranked) {
		return "", false
	}
	return ranked[s.Active], true
}

// Lookup finds value in the candidate list ignoring case and surrounding
// whitespace, returning the canonical spelling.
func (s State) Lookup(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, c := range s.Candidates {
		if strings.EqualFold(c, value) {
			return c, true
		}
	}
	return "", false
}
