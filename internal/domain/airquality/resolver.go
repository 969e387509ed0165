package airquality

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	apperrors "github.com/dharshaa/air-advisor/pkg/errors"
)

// Source provides the current reading for a location.
type Source interface {
	Name() string
	Current(ctx context.Context, location string) (Reading, error)
}

// HistorySource lists recent readings for a location, oldest first.
type HistorySource interface {
	Recent(ctx context.Context, location string, limit int) ([]Reading, error)
}

// HistoryRepository persists readings used for trend baselines.
type HistoryRepository interface {
	HistorySource
	Append(ctx context.Context, reading Reading) error
}

// Resolver tries the live source first and falls back to the CSV backed
// source exactly once. It keeps no state between calls.
type Resolver struct {
	primary  Source
	fallback Source
	timeout  time.Duration
	logger   *slog.Logger
}

// NewResolver builds a resolver over a primary and a fallback source.
func NewResolver(primary, fallback Source, timeout time.Duration, logger *slog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger.With("component", "airquality.resolver"),
	}
}

// Resolve returns a validated reading and the name of the source it came
// from. A live failure, timeout, or invalid reading triggers the fallback;
// when both sources fail the error carries the data_unavailable code.
func (r *Resolver) Resolve(ctx context.Context, location string) (Reading, string, error) {
	if r.primary != nil {
		liveCtx, cancel := context.WithTimeout(ctx, r.timeout)
		reading, err := r.primary.Current(liveCtx, location)
		cancel()
		if err == nil {
			if verr := ValidateReading(reading); verr == nil {
				return reading, r.primary.Name(), nil
			} else {
				r.logger.Warn("live reading rejected", "location", location, "error", verr)
			}
		} else {
			r.logger.Warn("live source failed, falling back", "location", location, "error", err)
		}
	}

	if r.fallback == nil {
		return Reading{}, "", apperrors.Wrap("data_unavailable", "no data source available for "+location, nil)
	}

	reading, err := r.fallback.Current(ctx, location)
	if err != nil {
		return Reading{}, "", apperrors.Wrap("data_unavailable", "no air quality data available for "+location, err)
	}
	if verr := ValidateReading(reading); verr != nil {
		return Reading{}, "", apperrors.Wrap("data_unavailable", "no valid air quality data available for "+location, verr)
	}
	return reading, r.fallback.Name(), nil
}

// ValidateReading rejects values that can never be classified.
func ValidateReading(r Reading) error {
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("reading has no location")
	}
	if math.IsNaN(r.PollutantIndex) || math.IsInf(r.PollutantIndex, 0) {
		return fmt.Errorf("pollutant index is not finite")
	}
	if r.PollutantIndex < 0 {
		return fmt.Errorf("pollutant index %v is negative", r.PollutantIndex)
	}
	return nil
}
