package airquality

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/dharshaa/air-advisor/pkg/errors"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(Config{
		Thresholds:   Thresholds{Moderate: 50, Unhealthy: 100, Hazardous: 200},
		AnomalyRatio: 0.3,
	})
}

func reading(location string, index float64) Reading {
	return Reading{Location: location, PollutantIndex: index, Timestamp: time.Date(2025, 8, 26, 6, 0, 0, 0, time.UTC)}
}

func series(values ...float64) []Reading {
	out := make([]Reading, 0, len(values))
	base := time.Date(2025, 8, 20, 6, 0, 0, 0, time.UTC)
	for i, v := range values {
		out = append(out, Reading{Location: "Chennai", PollutantIndex: v, Timestamp: base.AddDate(0, 0, i)})
	}
	return out
}

func TestAnalyzeSeverityAlwaysWithinBands(t *testing.T) {
	analyzer := testAnalyzer()
	history := series(40, 60, 80)
	for _, index := range []float64{0, 10, 49.9, 50, 99, 100, 150, 199.9, 200, 500, 1200} {
		assessment, err := analyzer.Analyze(reading("Chennai", index), history)
		require.NoError(t, err)
		require.GreaterOrEqual(t, assessment.Severity, SeverityGood)
		require.LessOrEqual(t, assessment.Severity, SeverityHazardous)
	}
}

func TestAnalyzeEmptyHistoryYieldsGood(t *testing.T) {
	analyzer := testAnalyzer()

	assessment, err := analyzer.Analyze(reading("Chennai", 250), nil)
	require.NoError(t, err)
	require.Equal(t, SeverityGood, assessment.Severity)
	require.Equal(t, TrendStable, assessment.Trend)
	require.False(t, assessment.Anomaly)
	require.Equal(t, 250.0, assessment.Baseline)
}

func TestAnalyzeBoundaryRoundsToHigherRiskBand(t *testing.T) {
	analyzer := testAnalyzer()
	history := series(40, 60, 80)

	cases := map[float64]Severity{
		49.99: SeverityGood,
		50:    SeverityModerate,
		100:   SeverityUnhealthy,
		200:   SeverityHazardous,
	}
	for index, want := range cases {
		assessment, err := analyzer.Analyze(reading("Chennai", index), history)
		require.NoError(t, err)
		require.Equal(t, want, assessment.Severity, "index %v", index)
	}
}

func TestAnalyzeFlagsAnomalyAndRisingTrend(t *testing.T) {
	analyzer := testAnalyzer()

	assessment, err := analyzer.Analyze(reading("Chennai", 150), series(50, 52, 48))
	require.NoError(t, err)
	require.Equal(t, SeverityUnhealthy, assessment.Severity)
	require.True(t, assessment.Anomaly)
	require.Equal(t, TrendRising, assessment.Trend)
	require.InDelta(t, 50.0, assessment.Baseline, 1e-9)
	require.InDelta(t, 100.0, assessment.Deviation, 1e-9)
}

func TestAnalyzeFallingTrendWithoutAnomaly(t *testing.T) {
	analyzer := testAnalyzer()

	assessment, err := analyzer.Analyze(reading("Chennai", 75), series(100, 100, 100))
	require.NoError(t, err)
	require.Equal(t, TrendFalling, assessment.Trend)
	require.False(t, assessment.Anomaly)
}

func TestAnalyzeStableWithinRatio(t *testing.T) {
	analyzer := testAnalyzer()

	assessment, err := analyzer.Analyze(reading("Chennai", 105), series(100, 100, 100))
	require.NoError(t, err)
	require.Equal(t, TrendStable, assessment.Trend)
	require.False(t, assessment.Anomaly)
}

func TestAnalyzeRejectsNonFiniteIndex(t *testing.T) {
	analyzer := testAnalyzer()

	for _, index := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -5} {
		_, err := analyzer.Analyze(reading("Chennai", index), series(50))
		require.Error(t, err)
		require.True(t, apperrors.IsCode(err, "invalid_input"))
	}
}
