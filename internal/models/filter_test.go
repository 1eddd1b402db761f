package models

import (
	"errors"
	"testing"
)

func TestSearchFilterValidate(t *testing.T) {
	tests := []struct {
		name    string
		filter  SearchFilter
		wantErr error
	}{
		{"valid", SearchFilter{Rover: "Curiosity", EarthDate: "2015-05-30"}, nil},
		{"valid lowercase rover with camera", SearchFilter{Rover: "spirit", Camera: "pancam", EarthDate: "2004-01-10"}, nil},
		{"missing rover", SearchFilter{EarthDate: "2015-05-30"}, ErrRoverRequired},
		{"unknown rover", SearchFilter{Rover: "Sojourner", EarthDate: "1997-07-06"}, ErrUnknownRover},
		{"missing date", SearchFilter{Rover: "Curiosity"}, ErrDateRequired},
		{"whitespace date", SearchFilter{Rover: "Curiosity", EarthDate: "   "}, ErrDateRequired},
		{"bad date", SearchFilter{Rover: "Curiosity", EarthDate: "30/05/2015"}, ErrDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizedCanonicalisesRover(t *testing.T) {
	f := SearchFilter{Rover: "  opportunity ", Camera: " PANCAM", EarthDate: "2010-01-01 "}.Normalized()
	if f.Rover != "Opportunity" || f.Camera != "PANCAM" || f.EarthDate != "2010-01-01" {
		t.Errorf("Normalized() = %+v", f)
	}
}

func TestCamerasFor(t *testing.T) {
	tests := []struct {
		rover string
		want  int
		first string
	}{
		{"Curiosity", 16, "FHAZ"},
		{"OPPORTUNITY", 5, "FHAZ"},
		{"spirit", 5, "FHAZ"},
		{"Perseverance", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.rover, func(t *testing.T) {
			got := CamerasFor(tt.rover)
			if len(got) != tt.want {
				t.Fatalf("CamerasFor(%q) returned %d cameras, want %d", tt.rover, len(got), tt.want)
			}
			if tt.want > 0 && got[0] != tt.first {
				t.Errorf("first camera = %q, want %q", got[0], tt.first)
			}
		})
	}

	// callers may mutate the result without touching the catalog
	cams := CamerasFor("Curiosity")
	cams[0] = "BROKEN"
	if CamerasFor("Curiosity")[0] != "FHAZ" {
		t.Error("CamerasFor leaked the catalog slice")
	}
}
