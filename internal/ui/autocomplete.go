package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/thesavant42/marsphotos/internal/suggest"
)

// Autocomplete is a text input backed by a suggestion controller.
// Key presses are translated into suggest events; the input text is
// kept in sync with the controller's query after every event.
type Autocomplete struct {
	input    textinput.Model
	ctrl     *suggest.Controller
	label    string
	disabled string // placeholder shown while there are no candidates
	height   int
	focused  bool
}

// NewAutocomplete creates a field over candidates
func NewAutocomplete(label, placeholder string, cfg suggest.Config, candidates []string, height int) *Autocomplete {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 30
	ti.Prompt = "> "

	if height <= 0 {
		height = 6
	}

	return &Autocomplete{
		input:  ti,
		ctrl:   suggest.NewController(cfg, candidates, ""),
		label:  label,
		height: height,
	}
}

// Controller exposes the underlying controller so the form can attach callbacks
func (a *Autocomplete) Controller() *suggest.Controller {
	return a.ctrl
}

// Value returns the current field text
func (a *Autocomplete) Value() string {
	return a.ctrl.State().Query
}

// Err returns the field's validation message, if any
func (a *Autocomplete) Err() string {
	return a.ctrl.State().Err
}

// Open reports whether the suggestion list is visible
func (a *Autocomplete) Open() bool {
	return a.ctrl.State().Open
}

// Enabled reports whether the field has candidates to offer
func (a *Autocomplete) Enabled() bool {
	return len(a.ctrl.State().Candidates) > 0
}

// SetDisabledPlaceholder sets the placeholder shown while there are no candidates
func (a *Autocomplete) SetDisabledPlaceholder(s string) {
	a.disabled = s
}

// SetValue replaces the text without running callbacks
func (a *Autocomplete) SetValue(v string) {
	a.dispatch(suggest.SetValue{Value: v})
}

// SetCandidates swaps the candidate list
func (a *Autocomplete) SetCandidates(c []string) {
	a.dispatch(suggest.SetCandidates{Candidates: c})
}

// Focus gives the field keyboard focus and opens the list
func (a *Autocomplete) Focus() tea.Cmd {
	a.focused = true
	a.dispatch(suggest.Focus{})
	return a.input.Focus()
}

// Blur removes focus, validating required fields
func (a *Autocomplete) Blur() []suggest.Effect {
	a.focused = false
	a.input.Blur()
	return a.dispatch(suggest.Blur{})
}

// HandleKey processes a key press. handled is false for keys the field
// does not own (tab, ctrl+s, esc on a closed list) so the form can act on them.
func (a *Autocomplete) HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	switch msg.String() {
	case "down":
		a.dispatch(suggest.KeyPressed{Key: suggest.ArrowDown})
		return true, nil
	case "up":
		a.dispatch(suggest.KeyPressed{Key: suggest.ArrowUp})
		return true, nil
	case "enter":
		a.dispatch(suggest.KeyPressed{Key: suggest.Enter})
		return true, nil
	case "esc":
		if !a.Open() {
			return false, nil
		}
		a.dispatch(suggest.KeyPressed{Key: suggest.Escape})
		return true, nil
	case "tab", "shift+tab", "ctrl+s", "ctrl+c", "ctrl+r":
		return false, nil
	}

	before := a.input.Value()
	a.input, cmd = a.input.Update(msg)
	if after := sanitizeInput(a.input.Value()); after != before {
		a.dispatch(suggest.TextChanged{Value: after})
	}
	return true, cmd
}

// dispatch applies ev and mirrors the resulting query into the text input
func (a *Autocomplete) dispatch(ev suggest.Event) []suggest.Effect {
	effects := a.ctrl.Dispatch(ev)
	if q := a.ctrl.State().Query; q != a.input.Value() {
		a.input.SetValue(q)
		a.input.CursorEnd()
	}
	return effects
}

// View renders the label, the input, its error and the open suggestion list
func (a *Autocomplete) View(width int) string {
	var b strings.Builder

	label := LabelStyle
	if a.focused {
		label = LabelFocusedStyle
	}
	b.WriteString(label.Render(a.label))

	if !a.Enabled() && a.disabled != "" && a.Value() == "" {
		b.WriteString(RenderDim("  " + a.disabled))
	} else {
		b.WriteString(a.input.View())
	}

	if msg := a.Err(); msg != "" {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", 12))
		b.WriteString(RenderError(msg))
	}

	st := a.ctrl.State()
	if !a.focused || !st.Open {
		return b.String()
	}

	ranked := st.Ranked()
	if len(ranked) == 0 {
		return b.String()
	}

	rowWidth := width - 14
	if rowWidth < 10 {
		rowWidth = 10
	}

	highlights := matchedRunes(strings.TrimSpace(st.Query), ranked)
	start, end := listWindow(st.Active, len(ranked), a.height)
	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", 12))
		if i == st.Active {
			b.WriteString(RenderSelectedWidth(ranked[i], rowWidth))
			continue
		}
		b.WriteString(highlightRow(ranked[i], highlights[ranked[i]]))
	}
	if end < len(ranked) {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", 12))
		b.WriteString(RenderDim("..."))
	}
	return b.String()
}

// listWindow returns the visible slice bounds keeping active on screen
func listWindow(active, total, height int) (start, end int) {
	if total <= height {
		return 0, total
	}
	if active >= height {
		start = active - height + 1
	}
	return start, start + height
}

// matchedRunes returns, per candidate, the byte offsets fuzzy matched against query
func matchedRunes(query string, ranked []string) map[string]map[int]bool {
	out := make(map[string]map[int]bool)
	if query == "" {
		return out
	}
	for _, m := range fuzzy.Find(query, ranked) {
		set := make(map[int]bool, len(m.MatchedIndexes))
		for _, idx := range m.MatchedIndexes {
			set[idx] = true
		}
		out[m.Str] = set
	}
	return out
}

// highlightRow renders s with matched runes accented
func highlightRow(s string, matched map[int]bool) string {
	if len(matched) == 0 {
		return RenderNormal(s)
	}
	var b strings.Builder
	for i, r := range s {
		if matched[i] {
			b.WriteString(MatchStyle.Render(string(r)))
		} else {
			b.WriteString(RenderNormal(string(r)))
		}
	}
	return b.String()
}
