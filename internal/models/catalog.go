package models

import "strings"

// Rover names accepted by the upstream API, in display order
var Rovers = []string{"Curiosity", "Opportunity", "Spirit"}

var curiosityCameras = []string{
	"FHAZ", "RHAZ", "MAST", "CHEMCAM", "MAHLI", "MARDI", "NAVCAM",
	"MAST_LEFT", "CHEMCAM_RMI", "NAV_RIGHT_B", "NAV_LEFT_B",
	"FHAZ_LEFT_B", "FHAZ_RIGHT_B", "RHAZ_LEFT_B", "RHAZ_RIGHT_B", "MAST_RIGHT",
}

var merCameras = []string{"FHAZ", "RHAZ", "NAVCAM", "PANCAM", "MINITES"}

var roverCameras = map[string][]string{
	"curiosity":   curiosityCameras,
	"opportunity": merCameras,
	"spirit":      merCameras,
}

// CamerasFor returns the camera codes available on a rover.
// The lookup is case-insensitive; unknown rovers return nil.
func CamerasFor(rover string) []string {
	cams, ok := roverCameras[strings.ToLower(strings.TrimSpace(rover))]
	if !ok {
		return nil
	}
	out := make([]string, len(cams))
	copy(out, cams)
	return out
}

// CanonicalRover returns the catalog spelling of rover and whether it is known
func CanonicalRover(rover string) (string, bool) {
	rover = strings.TrimSpace(rover)
	for _, r := range Rovers {
		if strings.EqualFold(r, rover) {
			return r, true
		}
	}
	return "", false
}

// IsKnownRover reports whether rover is in the catalog (case-insensitive)
func IsKnownRover(rover string) bool {
	_, ok := CanonicalRover(rover)
	return ok
}
