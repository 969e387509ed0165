package airquality

import (
	"encoding/json"
	"fmt"
	"time"
)

// Severity orders the four risk bands from least to most dangerous.
type Severity int

const (
	SeverityGood Severity = iota
	SeverityModerate
	SeverityUnhealthy
	SeverityHazardous
)

func (s Severity) String() string {
	switch s {
	case SeverityGood:
		return "good"
	case SeverityModerate:
		return "moderate"
	case SeverityUnhealthy:
		return "unhealthy"
	case SeverityHazardous:
		return "hazardous"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalJSON serializes the band as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the lowercase band name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "good":
		*s = SeverityGood
	case "moderate":
		*s = SeverityModerate
	case "unhealthy":
		*s = SeverityUnhealthy
	case "hazardous":
		*s = SeverityHazardous
	default:
		return fmt.Errorf("unknown severity %q", name)
	}
	return nil
}

// Trend summarizes how the current reading compares to the recent baseline.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// Reading is a single pollutant index measurement for a location. Immutable
// once produced; a non-finite or negative index never becomes a Reading.
type Reading struct {
	Location       string    `json:"location"`
	PollutantIndex float64   `json:"pollutantIndex"`
	Timestamp      time.Time `json:"timestamp"`
}

// UserPreference is supplied by the caller and never persisted.
type UserPreference struct {
	SensitiveGroup bool `json:"sensitiveGroup"`
}

// Request is the payload accepted by the advisor service.
type Request struct {
	Location       string `json:"location"`
	SensitiveGroup bool   `json:"sensitiveGroup"`
}

// Advisory is produced once per invocation.
type Advisory struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Trend    Trend    `json:"trend,omitempty"`
	Anomaly  bool     `json:"anomaly"`
	Reading  Reading  `json:"reading"`
	Source   string   `json:"source,omitempty"`
}

// Assessment is the analyzer verdict for a reading against its history.
type Assessment struct {
	Severity  Severity
	Trend     Trend
	Anomaly   bool
	Baseline  float64
	Deviation float64
}

// QueryEntry records a served advisory for later inspection.
type QueryEntry struct {
	ID       string    `json:"id"`
	Location string    `json:"location"`
	Severity Severity  `json:"severity"`
	Anomaly  bool      `json:"anomaly"`
	At       time.Time `json:"at"`
}

// Thresholds are the band boundaries applied to the current pollutant index.
// A value exactly on a boundary classifies into the higher risk band.
type Thresholds struct {
	Moderate  float64
	Unhealthy float64
	Hazardous float64
}

// Config wires runtime tunables for the advisor domain.
type Config struct {
	Thresholds      Thresholds
	AnomalyRatio    float64
	HistoryWindow   int
	RecentQueries   int
	DefaultLocation string
}
