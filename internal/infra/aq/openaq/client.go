package openaq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
)

const defaultBaseURL = "https://api.openaq.org/v2/latest"

// Config controls the live source client.
type Config struct {
	BaseURL            string
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// Client fetches current readings from an OpenAQ style JSON endpoint. A
// circuit breaker keeps a flapping upstream from delaying every request;
// there are no retries, failures surface to the caller immediately.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient builds an API client.
func NewClient(cfg Config) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 3
	}
	openTimeout := cfg.BreakerOpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "openaq",
			Timeout: openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
		}),
	}
}

// Name identifies the source in advisory responses.
func (c *Client) Name() string {
	return "live"
}

// Current retrieves the latest reading for a location.
func (c *Client) Current(ctx context.Context, location string) (airquality.Reading, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, location)
	})
	if err != nil {
		return airquality.Reading{}, err
	}
	reading, ok := result.(airquality.Reading)
	if !ok {
		return airquality.Reading{}, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return reading, nil
}

func (c *Client) fetch(ctx context.Context, location string) (airquality.Reading, error) {
	endpoint := fmt.Sprintf("%s?location=%s", c.baseURL, url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return airquality.Reading{}, fmt.Errorf("build air quality request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return airquality.Reading{}, fmt.Errorf("air quality request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return airquality.Reading{}, fmt.Errorf("air quality request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return airquality.Reading{}, fmt.Errorf("read air quality response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return airquality.Reading{}, fmt.Errorf("decode air quality response: %w", err)
	}

	return normalizeResults(location, raw.Results)
}

type apiResponse struct {
	Results []resultEntry `json:"results"`
}

type resultEntry struct {
	Location     string        `json:"location"`
	Measurements []measurement `json:"measurements"`
}

type measurement struct {
	Parameter   string  `json:"parameter"`
	Value       float64 `json:"value"`
	LastUpdated string  `json:"lastUpdated"`
}

// normalizeResults picks the newest finite measurement across all result
// entries for the requested location.
func normalizeResults(location string, results []resultEntry) (airquality.Reading, error) {
	var (
		best  airquality.Reading
		found bool
	)
	for _, entry := range results {
		if entry.Location != "" && !strings.EqualFold(entry.Location, location) {
			continue
		}
		for _, m := range entry.Measurements {
			if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) || m.Value < 0 {
				continue
			}
			ts := parseTime(m.LastUpdated)
			if ts.IsZero() {
				continue
			}
			if !found || ts.After(best.Timestamp) {
				best = airquality.Reading{
					Location:       location,
					PollutantIndex: m.Value,
					Timestamp:      ts,
				}
				found = true
			}
		}
	}
	if !found {
		return airquality.Reading{}, fmt.Errorf("no usable measurements for %q", location)
	}
	return best, nil
}

func parseTime(value string) time.Time {
	if strings.TrimSpace(value) == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

var _ airquality.Source = (*Client)(nil)
