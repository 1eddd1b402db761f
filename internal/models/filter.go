package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Filter validation errors
var (
	ErrRoverRequired = errors.New("rover is required")
	ErrUnknownRover  = errors.New("unknown rover")
	ErrDateRequired  = errors.New("Earth date is required.")
	ErrDateFormat    = errors.New("Earth date must be YYYY-MM-DD")
)

// SearchFilter is the committed form state that drives a photo search
type SearchFilter struct {
	Rover     string `json:"rover" validate:"required"`
	Camera    string `json:"camera,omitempty"`
	EarthDate string `json:"earth_date" validate:"required,datetime=2006-01-02"`
}

// Normalized returns the filter with whitespace trimmed and the rover in catalog casing
func (f SearchFilter) Normalized() SearchFilter {
	out := SearchFilter{
		Rover:     strings.TrimSpace(f.Rover),
		Camera:    strings.TrimSpace(f.Camera),
		EarthDate: strings.TrimSpace(f.EarthDate),
	}
	if canon, ok := CanonicalRover(out.Rover); ok {
		out.Rover = canon
	}
	return out
}

// Validate checks the invariants every fetch depends on.
// Rover is checked before the date so the first missing field is reported.
func (f SearchFilter) Validate() error {
	f = f.Normalized()
	if f.Rover == "" {
		return ErrRoverRequired
	}
	if !IsKnownRover(f.Rover) {
		return fmt.Errorf("%w: %s", ErrUnknownRover, f.Rover)
	}
	if f.EarthDate == "" {
		return ErrDateRequired
	}
	if err := Validator().Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "EarthDate" {
					return ErrDateFormat
				}
			}
		}
		return fmt.Errorf("invalid filter: %w", err)
	}
	return nil
}

// Key returns a stable identifier for the filter, used by the history store
func (f SearchFilter) Key() string {
	f = f.Normalized()
	return fmt.Sprintf("r:%s|c:%s|d:%s", f.Rover, f.Camera, f.EarthDate)
}

// RecentSearch is a filter the user submitted, as stored locally
type RecentSearch struct {
	ID         int64
	Filter     SearchFilter
	SearchedAt time.Time
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}
