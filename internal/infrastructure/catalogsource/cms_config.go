package catalogsource

import (
	"errors"
	"net/url"
	"time"
)

// CMSConfig holds configuration for the headless content API
type CMSConfig struct {
	// BaseURL is the root of the content API, e.g. https://cms.example.com/api/v2
	BaseURL string
	// AccessToken is sent as a bearer token when set
	AccessToken string
	// Timeout bounds each HTTP request
	Timeout time.Duration
	// MaxConsecutiveFailures opens the circuit breaker
	MaxConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again
	OpenTimeout time.Duration
	// HalfOpenRequests is how many probes are let through while half-open
	HalfOpenRequests uint32
}

// Errors for CMS configuration
var (
	ErrCMSConfigMissingBaseURL = errors.New("cms: base URL is required")
	ErrCMSConfigInvalidBaseURL = errors.New("cms: base URL must be an absolute http(s) URL")
)

// Validate checks the configuration and fills defaults
func (c *CMSConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrCMSConfigMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrCMSConfigInvalidBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.MaxConsecutiveFailures == 0 {
		c.MaxConsecutiveFailures = 3
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 30 * time.Second
	}
	if c.HalfOpenRequests == 0 {
		c.HalfOpenRequests = 1
	}
	return nil
}
