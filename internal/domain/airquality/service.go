package airquality

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/dharshaa/air-advisor/pkg/errors"
)

const anomalyNote = "Note: pollution is unusually far from the recent average for this area."

// Service exposes air quality advisory capabilities.
type Service interface {
	Advise(ctx context.Context, req Request) (Advisory, error)
	RecentQueries(ctx context.Context) ([]QueryEntry, error)
}

// QueryLog records served advisories for later inspection.
type QueryLog interface {
	Record(ctx context.Context, entry QueryEntry) error
	Recent(ctx context.Context, limit int) ([]QueryEntry, error)
}

type service struct {
	cfg       Config
	resolver  *Resolver
	history   HistorySource
	analyzer  *Analyzer
	formatter Formatter
	queries   QueryLog
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the advisor domain.
func NewService(cfg Config, resolver *Resolver, history HistorySource, queries QueryLog, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		resolver:  resolver,
		history:   history,
		analyzer:  NewAnalyzer(cfg),
		queries:   queries,
		logger:    logger.With("component", "airquality.service"),
		now:       time.Now,
	}
}

// Advise runs resolve -> analyze -> format strictly in sequence. Any
// resolver or analyzer failure surfaces unchanged; there is never a partial
// advisory.
func (s *service) Advise(ctx context.Context, req Request) (Advisory, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return Advisory{}, apperrors.Wrap("invalid_input", "location must not be empty", nil)
	}

	reading, source, err := s.resolver.Resolve(ctx, location)
	if err != nil {
		return Advisory{}, err
	}

	history := s.recentHistory(ctx, location)

	assessment, err := s.analyzer.Analyze(reading, history)
	if err != nil {
		return Advisory{}, err
	}

	advisory := s.formatter.Format(assessment.Severity, UserPreference{SensitiveGroup: req.SensitiveGroup})
	if assessment.Anomaly {
		advisory.Message += " " + anomalyNote
	}
	advisory.Trend = assessment.Trend
	advisory.Anomaly = assessment.Anomaly
	advisory.Reading = reading
	advisory.Source = source

	s.logger.Info("advisory served",
		"location", location,
		"source", source,
		"severity", advisory.Severity.String(),
		"trend", string(advisory.Trend),
		"anomaly", advisory.Anomaly,
	)
	s.recordQuery(ctx, location, advisory)

	return advisory, nil
}

// RecentQueries lists the latest served advisories, newest first.
func (s *service) RecentQueries(ctx context.Context) ([]QueryEntry, error) {
	if s.queries == nil {
		return nil, nil
	}
	limit := s.cfg.RecentQueries
	if limit <= 0 {
		limit = 20
	}
	return s.queries.Recent(ctx, limit)
}

// recentHistory is best effort: a broken history store degrades to an empty
// baseline rather than failing the advisory.
func (s *service) recentHistory(ctx context.Context, location string) []Reading {
	if s.history == nil {
		return nil
	}
	window := s.cfg.HistoryWindow
	if window <= 0 {
		window = 7
	}
	history, err := s.history.Recent(ctx, location, window)
	if err != nil {
		s.logger.Warn("history lookup failed", "location", location, "error", err)
		return nil
	}
	return history
}

func (s *service) recordQuery(ctx context.Context, location string, advisory Advisory) {
	if s.queries == nil {
		return
	}
	entry := QueryEntry{
		ID:       uuid.NewString(),
		Location: location,
		Severity: advisory.Severity,
		Anomaly:  advisory.Anomaly,
		At:       s.now().UTC(),
	}
	if err := s.queries.Record(ctx, entry); err != nil {
		s.logger.Warn("query log write failed", "location", location, "error", err)
	}
}
