package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/marsphotos/internal/match"
	"github.com/thesavant42/marsphotos/internal/models"
	"github.com/thesavant42/marsphotos/internal/suggest"
)

type formField int

const (
	fieldRover formField = iota
	fieldCamera
	fieldDate
)

// RoverSource yields the rover catalog
func RoverSource() match.Source {
	return match.Static(models.Rovers)
}

// CameraSource yields the cameras of rover, or nothing for an unknown rover
func CameraSource(rover string) match.Source {
	return func() ([]string, error) {
		return models.CamerasFor(rover), nil
	}
}

// SearchForm owns the rover, camera and date fields and the cross-field
// rule that a rover change resets the camera.
type SearchForm struct {
	cfg    ViewConfig
	logger *log.Logger

	rover  *Autocomplete
	camera *Autocomplete
	date   textinput.Model
	focus  formField

	roverValue string
	roverErr   string
	dateErr    string

	recent    []models.RecentSearch
	recentIdx int
}

// NewSearchForm builds the form, prefilled with initial when non-nil
func NewSearchForm(cfg ViewConfig, initial *models.SearchFilter, logger *log.Logger) *SearchForm {
	msgs := cfg.Messages

	rover := NewAutocomplete(msgs.RoverLabel, msgs.RoverPlaceholder,
		suggest.Config{RequiredMessage: msgs.RequiredOption},
		match.Resolve(RoverSource(), logger), cfg.SuggestionHeight)

	camera := NewAutocomplete(msgs.CameraLabel, msgs.CameraPlaceholder,
		suggest.Config{Optional: true},
		nil, cfg.SuggestionHeight)
	camera.SetDisabledPlaceholder(msgs.CameraDisabled)

	date := textinput.New()
	date.Placeholder = msgs.DatePlaceholder
	date.CharLimit = 10
	date.Width = 12
	date.Prompt = "> "

	f := &SearchForm{
		cfg:    cfg,
		logger: logger,
		rover:  rover,
		camera: camera,
		date:   date,
	}
	rover.Controller().OnChange = f.setRover

	if initial != nil {
		f.Fill(*initial)
	}
	return f
}

// setRover applies a rover value change: the camera is cleared and its
// candidates swapped for the new rover's cameras.
func (f *SearchForm) setRover(v string) {
	if v == f.roverValue {
		return
	}
	f.roverValue = v
	f.camera.SetValue("")
	f.camera.SetCandidates(match.Resolve(CameraSource(v), f.logger))
	if models.IsKnownRover(v) {
		f.roverErr = ""
	}
}

// Fill replaces every field with filter
func (f *SearchForm) Fill(filter models.SearchFilter) {
	f.rover.SetValue(filter.Rover)
	f.setRover(filter.Rover)
	f.camera.SetValue(filter.Camera)
	f.date.SetValue(filter.EarthDate)
	f.roverErr = ""
	f.dateErr = ""
}

// SetRecent sets the searches offered by ctrl+r
func (f *SearchForm) SetRecent(recent []models.RecentSearch) {
	f.recent = recent
	f.recentIdx = 0
}

// Focus focuses the current field
func (f *SearchForm) Focus() tea.Cmd {
	switch f.focus {
	case fieldRover:
		return f.rover.Focus()
	case fieldCamera:
		return f.camera.Focus()
	default:
		return f.date.Focus()
	}
}

// blur removes focus from the current field, running its validation
func (f *SearchForm) blur() {
	switch f.focus {
	case fieldRover:
		f.rover.Blur()
	case fieldCamera:
		f.camera.Blur()
	default:
		f.date.Blur()
	}
}

// move shifts focus by delta, skipping the camera while it has no candidates
func (f *SearchForm) move(delta int) tea.Cmd {
	f.blur()
	next := f.focus
	for {
		next = formField((int(next) + delta + 3) % 3)
		if next != fieldCamera || f.camera.Enabled() {
			break
		}
	}
	f.focus = next
	return f.Focus()
}

// Update handles a key press; submit is true when the user asked to search
func (f *SearchForm) Update(msg tea.KeyMsg) (submit bool, cmd tea.Cmd) {
	switch msg.String() {
	case "tab":
		return false, f.move(1)
	case "shift+tab":
		return false, f.move(-1)
	case "ctrl+s":
		return true, nil
	case "ctrl+r":
		f.cycleRecent()
		return false, nil
	}

	switch f.focus {
	case fieldRover:
		_, cmd = f.rover.HandleKey(msg)
	case fieldCamera:
		_, cmd = f.camera.HandleKey(msg)
	default:
		if msg.String() == "enter" {
			return true, nil
		}
		before := f.date.Value()
		f.date, cmd = f.date.Update(msg)
		if f.date.Value() != before {
			f.dateErr = ""
		}
	}
	return false, cmd
}

// Captures reports whether esc is consumed by the focused field
func (f *SearchForm) Captures(msg tea.KeyMsg) bool {
	if msg.String() != "esc" {
		return false
	}
	switch f.focus {
	case fieldRover:
		return f.rover.Open()
	case fieldCamera:
		return f.camera.Open()
	}
	return false
}

func (f *SearchForm) cycleRecent() {
	if len(f.recent) == 0 {
		return
	}
	f.Fill(f.recent[f.recentIdx%len(f.recent)].Filter)
	f.recentIdx++
}

// Filter returns the current field values as a filter
func (f *SearchForm) Filter() models.SearchFilter {
	return models.SearchFilter{
		Rover:     f.rover.Value(),
		Camera:    f.camera.Value(),
		EarthDate: sanitizeInput(f.date.Value()),
	}.Normalized()
}

// Submit validates the form. On failure the field errors are set and ok is false.
func (f *SearchForm) Submit() (filter models.SearchFilter, ok bool) {
	filter = f.Filter()
	f.roverErr, f.dateErr = "", ""

	err := filter.Validate()
	switch {
	case err == nil:
		return filter, true
	case errors.Is(err, models.ErrRoverRequired), errors.Is(err, models.ErrUnknownRover):
		f.roverErr = f.cfg.Messages.InvalidRover
	case errors.Is(err, models.ErrDateRequired):
		f.dateErr = f.cfg.Messages.DateRequired
	case errors.Is(err, models.ErrDateFormat):
		f.dateErr = f.cfg.Messages.DateFormat
	default:
		f.dateErr = err.Error()
	}
	return filter, false
}

// Errors returns the rover and date messages set by the last Submit
func (f *SearchForm) Errors() (rover, date string) {
	return f.roverErr, f.dateErr
}

// View renders the form
func (f *SearchForm) View(layout Layout) string {
	msgs := f.cfg.Messages
	var b strings.Builder

	b.WriteString(f.rover.View(layout.InnerWidth))
	if f.roverErr != "" && f.rover.Err() == "" {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", 12))
		b.WriteString(RenderError(f.roverErr))
	}
	b.WriteString("\n\n")

	b.WriteString(f.camera.View(layout.InnerWidth))
	b.WriteString("\n\n")

	label := LabelStyle
	if f.focus == fieldDate {
		label = LabelFocusedStyle
	}
	b.WriteString(label.Render(msgs.DateLabel))
	b.WriteString(f.date.View())
	if f.dateErr != "" {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", 12))
		b.WriteString(RenderError(f.dateErr))
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Repeat(" ", 12))
	b.WriteString(ArrowStyle.Render("[ " + msgs.Submit + " ]"))

	if len(f.recent) > 0 {
		b.WriteString("\n\n")
		b.WriteString(RenderAccent(msgs.Recent))
		for i, r := range f.recent {
			if i >= f.cfg.RecentLimit {
				break
			}
			line := fmt.Sprintf("  %s  %s  %s", r.Filter.EarthDate, r.Filter.Rover, r.Filter.Camera)
			b.WriteString("\n")
			b.WriteString(RenderDim(strings.TrimRight(line, " ")))
		}
	}
	return b.String()
}
