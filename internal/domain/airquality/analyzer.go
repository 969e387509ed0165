package airquality

import (
	"math"

	apperrors "github.com/dharshaa/air-advisor/pkg/errors"
)

// Trend cutoffs relative to the rolling baseline.
const (
	risingRatio  = 1.3
	fallingRatio = 0.8
)

// Analyzer classifies a current reading against its recent history.
type Analyzer struct {
	thresholds   Thresholds
	anomalyRatio float64
}

// NewAnalyzer builds an analyzer from the domain config.
func NewAnalyzer(cfg Config) *Analyzer {
	t := cfg.Thresholds
	if t.Moderate <= 0 && t.Unhealthy <= 0 && t.Hazardous <= 0 {
		t = DefaultThresholds()
	}
	ratio := cfg.AnomalyRatio
	if ratio <= 0 {
		ratio = 0.3
	}
	return &Analyzer{thresholds: t, anomalyRatio: ratio}
}

// DefaultThresholds returns the standard AQI style band boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{Moderate: 50, Unhealthy: 100, Hazardous: 200}
}

// Analyze computes the baseline as the arithmetic mean of the history and
// classifies the current index into one of the four bands. With no history
// there is no baseline to deviate from, so the verdict is Good and stable.
func (a *Analyzer) Analyze(current Reading, history []Reading) (Assessment, error) {
	if math.IsNaN(current.PollutantIndex) || math.IsInf(current.PollutantIndex, 0) {
		return Assessment{}, apperrors.Wrap("invalid_input", "pollutant index must be finite", nil)
	}
	if current.PollutantIndex < 0 {
		return Assessment{}, apperrors.Wrap("invalid_input", "pollutant index must not be negative", nil)
	}

	if len(history) == 0 {
		return Assessment{
			Severity: SeverityGood,
			Trend:    TrendStable,
			Baseline: current.PollutantIndex,
		}, nil
	}

	var sum float64
	for _, h := range history {
		sum += h.PollutantIndex
	}
	baseline := sum / float64(len(history))
	deviation := current.PollutantIndex - baseline

	assessment := Assessment{
		Severity:  a.classify(current.PollutantIndex),
		Trend:     TrendStable,
		Baseline:  baseline,
		Deviation: deviation,
	}
	if baseline > 0 {
		assessment.Anomaly = math.Abs(deviation) > a.anomalyRatio*baseline
		switch {
		case current.PollutantIndex > baseline*risingRatio:
			assessment.Trend = TrendRising
		case current.PollutantIndex < baseline*fallingRatio:
			assessment.Trend = TrendFalling
		}
	}
	return assessment, nil
}

// classify uses >= comparisons so a boundary value lands in the riskier band.
func (a *Analyzer) classify(index float64) Severity {
	switch {
	case index >= a.thresholds.Hazardous:
		return SeverityHazardous
	case index >= a.thresholds.Unhealthy:
		return SeverityUnhealthy
	case index >= a.thresholds.Moderate:
		return SeverityModerate
	default:
		return SeverityGood
	}
}
