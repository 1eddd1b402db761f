package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/thesavant42/marsphotos/internal/api"
	"github.com/thesavant42/marsphotos/internal/models"
)

// CacheControl is sent with every successful photos response
const CacheControl = "public, max-age=60, s-maxage=300, stale-while-revalidate=30"

// PhotoCache stores upstream results by query key
type PhotoCache interface {
	Get(key string) ([]models.PhotoRecord, bool)
	Set(key string, photos []models.PhotoRecord)
	Len() int
}

// PhotosQuery is the parsed query string of GET /api/mars-photos
type PhotosQuery struct {
	Rover     string `validate:"required,max=32"`
	Camera    string `validate:"omitempty,max=32"`
	EarthDate string `validate:"omitempty,datetime=2006-01-02"`
	Sol       string `validate:"omitempty,number,max=5"`
	Page      int    `validate:"min=1,max=1000"`
}

// CacheKey identifies a query in the photo cache. The rover, camera and
// date are used verbatim.
func (q PhotosQuery) CacheKey() string {
	key := fmt.Sprintf("r:%s|c:%s|d:%s", q.Rover, q.Camera, q.EarthDate)
	if q.Sol != "" {
		key += "|s:" + q.Sol
	}
	if q.Page > 1 {
		key += "|p:" + strconv.Itoa(q.Page)
	}
	return key
}

// PhotosHandler serves GET /api/mars-photos
type PhotosHandler struct {
	upstream api.PhotoFetcher
	cache    PhotoCache
	metrics  *Metrics
	logger   *log.Logger
}

// NewPhotosHandler creates the handler. metrics and logger may be nil.
func NewPhotosHandler(upstream api.PhotoFetcher, cache PhotoCache, metrics *Metrics, logger *log.Logger) *PhotosHandler {
	return &PhotosHandler{
		upstream: upstream,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
	}
}

// ParsePhotosQuery reads and validates the query string
func ParsePhotosQuery(r *http.Request) (PhotosQuery, error) {
	v := r.URL.Query()
	q := PhotosQuery{
		Rover:     strings.TrimSpace(v.Get("rover")),
		Camera:    strings.TrimSpace(v.Get("camera")),
		EarthDate: strings.TrimSpace(v.Get("earth_date")),
		Sol:       strings.TrimSpace(v.Get("sol")),
		Page:      1,
	}
	if q.Rover == "" {
		return q, models.ErrRoverRequired
	}
	if raw := strings.TrimSpace(v.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("page must be a positive integer")
		}
		q.Page = page
	}

	if err := models.Validator().Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return q, fmt.Errorf("invalid %s", queryParamName(verrs[0].Field()))
		}
		return q, err
	}
	return q, nil
}

func queryParamName(field string) string {
	switch field {
	case "EarthDate":
		return "earth_date"
	default:
		return strings.ToLower(field)
	}
}

// ServeHTTP implements http.Handler
func (h *PhotosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q, err := ParsePhotosQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := q.CacheKey()
	if photos, ok := h.cache.Get(key); ok {
		if h.metrics != nil {
			h.metrics.CacheHits.Inc()
		}
		h.writePhotos(w, photos, true)
		return
	}
	if h.metrics != nil {
		h.metrics.CacheMisses.Inc()
	}

	start := time.Now()
	photos, err := h.upstream.FetchPhotos(r.Context(), api.PhotoQuery{
		Rover:     q.Rover,
		Camera:    q.Camera,
		EarthDate: q.EarthDate,
		Sol:       q.Sol,
		Page:      q.Page,
	})
	h.observeUpstream(start, err)
	if err != nil {
		h.writeUpstreamError(w, q, err)
		return
	}

	h.cache.Set(key, photos)
	if h.metrics != nil {
		h.metrics.CacheEntries.Set(float64(h.cache.Len()))
	}
	h.writePhotos(w, photos, false)
}

func (h *PhotosHandler) writePhotos(w http.ResponseWriter, photos []models.PhotoRecord, cached bool) {
	if photos == nil {
		photos = []models.PhotoRecord{}
	}
	w.Header().Set("Cache-Control", CacheControl)
	writeJSON(w, http.StatusOK, models.ProxyResponse{Photos: photos, Cached: cached})
}

func (h *PhotosHandler) writeUpstreamError(w http.ResponseWriter, q PhotosQuery, err error) {
	var ue *api.UpstreamError
	switch {
	case errors.As(err, &ue):
		msg := ue.Message
		if msg == "" {
			msg = http.StatusText(ue.StatusCode)
		}
		writeError(w, ue.StatusCode, msg)
	case errors.Is(err, api.ErrUpstreamUnavailable):
		writeError(w, http.StatusServiceUnavailable, api.ErrUpstreamUnavailable.Error())
	default:
		if h.logger != nil {
			h.logger.Error("photos request failed", "rover", q.Rover, "camera", q.Camera, "earth_date", q.EarthDate, "error", err)
		}
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *PhotosHandler) observeUpstream(start time.Time, err error) {
	if h.metrics == nil {
		return
	}
	h.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())

	outcome := "success"
	var ue *api.UpstreamError
	var ne *api.NetworkError
	switch {
	case err == nil:
	case errors.Is(err, api.ErrUpstreamUnavailable):
		outcome = "rejected"
	case errors.As(err, &ue) && api.IsClientError(err):
		outcome = "client_error"
	case errors.As(err, &ue):
		outcome = "server_error"
	case errors.As(err, &ne):
		outcome = "network_error"
	default:
		outcome = "error"
	}
	h.metrics.UpstreamRequests.WithLabelValues(outcome).Inc()
}

// HealthHandler reports liveness and cache size
func HealthHandler(cache PhotoCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":        "ok",
			"cache_entries": cache.Len(),
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
