package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/thesavant42/marsphotos/internal/models"
)

const (
	DefaultNASABaseURL = "https://api.nasa.gov/mars-photos/api/v1"
	DemoAPIKey         = "DEMO_KEY"

	// FallbackEarthDate is used by FetchPage when the filter has no date.
	FallbackEarthDate = "2015-05-30"

	featuredRover = "curiosity"
	featuredSol   = "1000"

	nasaUserAgent   = "marsphotos/1.0"
	maxErrorBody    = 64 << 10
	defaultClientTO = 30 * time.Second
)

// NASAClient talks directly to the Mars Rover Photos API
type NASAClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *log.Logger
}

// NASAOption customises a NASAClient
type NASAOption func(*NASAClient)

// WithBaseURL points the client at another API root (tests, mirrors)
func WithBaseURL(base string) NASAOption {
	return func(c *NASAClient) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) NASAOption {
	return func(c *NASAClient) {
		c.httpClient = hc
	}
}

// NewNASAClient creates a client for the upstream API.
// An empty apiKey falls back to DemoAPIKey.
func NewNASAClient(apiKey string, logger *log.Logger, opts ...NASAOption) *NASAClient {
	if strings.TrimSpace(apiKey) == "" {
		apiKey = DemoAPIKey
	}
	c := &NASAClient{
		httpClient: &http.Client{
			Timeout: defaultClientTO,
		},
		baseURL: DefaultNASABaseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFileLogger creates a logger that appends to path, for use while a
// full-screen TUI owns the terminal. It returns nil if the file cannot be opened.
func NewFileLogger(path, prefix string, level log.Level) *log.Logger {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
		Level:           level,
	})
}

// FetchPage fetches one page for filter. The camera is not sent upstream;
// results are narrowed locally by camera-name prefix. A missing date falls
// back to FallbackEarthDate.
func (c *NASAClient) FetchPage(ctx context.Context, filter models.SearchFilter, page int) ([]models.PhotoRecord, error) {
	filter = filter.Normalized()
	if filter.Rover == "" {
		return nil, models.ErrRoverRequired
	}
	date := filter.EarthDate
	if date == "" {
		date = FallbackEarthDate
	}

	photos, err := c.FetchPhotos(ctx, PhotoQuery{
		Rover:     filter.Rover,
		EarthDate: date,
		Page:      page,
	})
	if err != nil {
		return nil, err
	}
	return FilterByCameraPrefix(photos, filter.Camera), nil
}

// FetchFeatured fetches the Curiosity sol 1000 photos shown on the start screen
func (c *NASAClient) FetchFeatured(ctx context.Context) ([]models.PhotoRecord, error) {
	return c.FetchPhotos(ctx, PhotoQuery{Rover: featuredRover, Sol: featuredSol, Page: 1})
}

// FetchPhotos runs a raw query, forwarding every non-empty field upstream
func (c *NASAClient) FetchPhotos(ctx context.Context, q PhotoQuery) ([]models.PhotoRecord, error) {
	rover := strings.ToLower(strings.TrimSpace(q.Rover))
	if rover == "" {
		return nil, models.ErrRoverRequired
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if q.EarthDate != "" {
		params.Set("earth_date", q.EarthDate)
	}
	if q.Sol != "" {
		params.Set("sol", q.Sol)
	}
	if q.Camera != "" {
		params.Set("camera", q.Camera)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}

	endpoint := fmt.Sprintf("%s/rovers/%s/photos?%s", c.baseURL, url.PathEscape(rover), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", nasaUserAgent)

	if c.logger != nil {
		c.logger.Debug("GET photos", "rover", rover, "earth_date", q.EarthDate, "sol", q.Sol, "camera", q.Camera, "page", q.Page)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Request failed", "rover", rover, "error", err)
		}
		return nil, &NetworkError{Op: "GET /rovers/" + rover + "/photos", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if c.logger != nil {
			c.logger.Error("API error", "status", resp.StatusCode, "response", string(body))
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var payload models.PhotosResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode photos response: %w", err)
	}
	if payload.Photos == nil {
		payload.Photos = []models.PhotoRecord{}
	}
	return payload.Photos, nil
}
