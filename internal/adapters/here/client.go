// Package here talks to the HERE Routing v8 and Geocoding & Search v1 REST APIs.
package here

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrUpstream is returned for any non-2xx answer from HERE.
var ErrUpstream = errors.New("here upstream error")

// Config selects endpoints and fixed request parameters.
type Config struct {
	APIKey        string
	RoutingURL    string
	GeocodeURL    string
	TransportMode string
	RoutingMode   string
	Timeout       time.Duration
}

// Client implements ports.RoutingService and ports.GeocodingService.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a HERE client. A nil httpClient gets one with cfg.Timeout.
func New(cfg Config, httpClient *http.Client) *Client {
	if cfg.TransportMode == "" {
		cfg.TransportMode = "truck"
	}
	if cfg.RoutingMode == "" {
		cfg.RoutingMode = "fast"
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, http: httpClient}
}

func (c *Client) getJSON(ctx context.Context, base string, q url.Values, out any) error {
	q.Set("apiKey", c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
