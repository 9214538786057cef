package api

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production Brew Leaf backend.
const DefaultBaseURL = "https://brew-connect-backend.onrender.com"

// Config errors
var (
	ErrConfigMissingBaseURL = errors.New("brewapi: base URL is required")
	ErrConfigInvalidBaseURL = errors.New("brewapi: base URL must be an absolute http(s) URL")
)

// Config holds settings for the backend API client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewConfig creates a config pointing at the given backend
func NewConfig(baseURL string) *Config {
	return &Config{BaseURL: baseURL}
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrConfigInvalidBaseURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrConfigInvalidBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout == 0 {
		c.Timeout = 15 * time.Second
	}
	return nil
}
