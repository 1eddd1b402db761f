package models

// Camera is the camera block embedded in every photo record
type Camera struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// RoverInfo is the rover block embedded in every photo record
type RoverInfo struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	LandingDate string `json:"landing_date,omitempty"`
	Status      string `json:"status,omitempty"`
}

// PhotoRecord represents a single photo returned by the Mars Rover Photos API
type PhotoRecord struct {
	ID        int64     `json:"id"`
	Sol       int       `json:"sol"`
	Camera    Camera    `json:"camera"`
	ImgSrc    string    `json:"img_src"`
	EarthDate string    `json:"earth_date"`
	Rover     RoverInfo `json:"rover"`
}

// PhotosResponse is the upstream envelope for /rovers/{rover}/photos
type PhotosResponse struct {
	Photos []PhotoRecord `json:"photos"`
}

// ProxyResponse is the body served by the proxy endpoint
type ProxyResponse struct {
	Photos []PhotoRecord `json:"photos"`
	Cached bool          `json:"cached"`
}

// ErrorResponse is the JSON error body used by the proxy endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}
