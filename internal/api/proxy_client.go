package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/thesavant42/marsphotos/internal/models"
)

// ProxyPath is the route served by the proxy endpoint
const ProxyPath = "/api/mars-photos"

// ProxyClient fetches photos through a marsphotos proxy instead of the
// upstream API, so the API key stays on the server.
type ProxyClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *log.Logger
}

// NewProxyClient builds a client for the proxy at base (scheme://host[:port])
func NewProxyClient(base string, logger *log.Logger) (*ProxyClient, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return nil, errors.New("proxy url is empty")
	}
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proxy url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy url %q has no host", base)
	}
	return &ProxyClient{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: defaultClientTO,
		},
		logger: logger,
	}, nil
}

// FetchPage fetches one page via the proxy. The proxy forwards the camera
// upstream; the prefix filter is re-applied here so both sources behave alike.
func (c *ProxyClient) FetchPage(ctx context.Context, filter models.SearchFilter, page int) ([]models.PhotoRecord, error) {
	filter = filter.Normalized()
	if filter.Rover == "" {
		return nil, models.ErrRoverRequired
	}

	values := url.Values{}
	values.Set("rover", filter.Rover)
	if filter.Camera != "" {
		values.Set("camera", filter.Camera)
	}
	if filter.EarthDate != "" {
		values.Set("earth_date", filter.EarthDate)
	}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}

	body, err := c.get(ctx, values)
	if err != nil {
		return nil, err
	}
	return FilterByCameraPrefix(body.Photos, filter.Camera), nil
}

// FetchFeatured fetches the Curiosity sol 1000 photos via the proxy
func (c *ProxyClient) FetchFeatured(ctx context.Context) ([]models.PhotoRecord, error) {
	values := url.Values{}
	values.Set("rover", featuredRover)
	values.Set("sol", featuredSol)
	body, err := c.get(ctx, values)
	if err != nil {
		return nil, err
	}
	return body.Photos, nil
}

func (c *ProxyClient) get(ctx context.Context, values url.Values) (*models.ProxyResponse, error) {
	rel := &url.URL{Path: ProxyPath, RawQuery: values.Encode()}
	endpoint := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Proxy request failed", "url", endpoint.String(), "error", err)
		}
		return nil, &NetworkError{Op: "GET " + ProxyPath, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(raw))
		var er models.ErrorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != "" {
			msg = er.Error
		}
		if c.logger != nil {
			c.logger.Error("Proxy error", "status", resp.StatusCode, "error", msg)
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	var body models.ProxyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode proxy response: %w", err)
	}
	if body.Photos == nil {
		body.Photos = []models.PhotoRecord{}
	}
	if c.logger != nil {
		c.logger.Debug("Proxy response", "photos", len(body.Photos), "cached", body.Cached, "took", time.Since(start))
	}
	return &body, nil
}
