package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is stamped at build time with -ldflags "-X ...handler.Version=..."
var Version = "dev"

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheckerFunc adapts a function to HealthChecker
type HealthCheckerFunc func(ctx context.Context) error

// Ping implements HealthChecker
func (f HealthCheckerFunc) Ping(ctx context.Context) error { return f(ctx) }

// DetailsFunc reports runtime figures of a dependency, such as pool stats
type DetailsFunc func() (any, error)

// SystemHandler serves health and system information endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	env       string
	storage   string
	catalog   string
	checks    map[string]HealthChecker
	details   map[string]DetailsFunc
	startTime time.Time
}

// SystemOption configures a SystemHandler
type SystemOption func(*SystemHandler)

// WithHealthCheck adds a named dependency to the health report
func WithHealthCheck(name string, check HealthChecker) SystemOption {
	return func(h *SystemHandler) {
		h.checks[name] = check
	}
}

// WithHealthDetails adds named figures to the health report. Failures are
// reported in place of the figures and do not affect the status.
func WithHealthDetails(name string, fn DetailsFunc) SystemOption {
	return func(h *SystemHandler) {
		h.details[name] = fn
	}
}

// WithDrivers records the storage driver and catalog source in system info
func WithDrivers(storage, catalog string) SystemOption {
	return func(h *SystemHandler) {
		h.storage = storage
		h.catalog = catalog
	}
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, env string, opts ...SystemOption) *SystemHandler {
	h := &SystemHandler{
		name:      name,
		env:       env,
		checks:    make(map[string]HealthChecker),
		details:   make(map[string]DetailsFunc),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HealthResponse is the health report
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}

// Health godoc
// @Summary      Health check
// @Description  Pings every registered dependency. Answers 503 when one fails.
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "healthy"}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			resp.Checks[name] = "unhealthy: " + err.Error()
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "healthy"
	}

	if len(h.details) > 0 {
		resp.Details = make(map[string]any, len(h.details))
	}
	for name, fn := range h.details {
		v, err := fn()
		if err != nil {
			resp.Details[name] = gin.H{"error": err.Error()}
			continue
		}
		resp.Details[name] = v
	}
	c.JSON(status, resp)
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Environment   string `json:"environment"`
	GoVersion     string `json:"go_version"`
	Uptime        string `json:"uptime"`
	StorageDriver string `json:"storage_driver,omitempty"`
	CatalogSource string `json:"catalog_source,omitempty"`
}

// GetSystemInfo godoc
// @Summary      Get system information
// @Description  Returns version, uptime and the configured drivers
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:          h.name,
		Version:       Version,
		Environment:   h.env,
		GoVersion:     runtime.Version(),
		Uptime:        time.Since(h.startTime).Round(time.Second).String(),
		StorageDriver: h.storage,
		CatalogSource: h.catalog,
	})
}
