package airquality

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatIsPure(t *testing.T) {
	var formatter Formatter
	for _, severity := range []Severity{SeverityGood, SeverityModerate, SeverityUnhealthy, SeverityHazardous} {
		for _, sensitive := range []bool{false, true} {
			pref := UserPreference{SensitiveGroup: sensitive}
			first := formatter.Format(severity, pref)
			second := formatter.Format(severity, pref)
			require.Equal(t, first, second)
			require.NotEmpty(t, first.Message)
			require.Equal(t, severity, first.Severity)
		}
	}
}

func TestFormatSensitiveGroupEscalatesOneStep(t *testing.T) {
	var formatter Formatter

	general := formatter.Format(SeverityModerate, UserPreference{})
	sensitive := formatter.Format(SeverityModerate, UserPreference{SensitiveGroup: true})
	escalated := formatter.Format(SeverityUnhealthy, UserPreference{})

	require.NotEqual(t, general.Message, sensitive.Message)
	require.Equal(t, escalated.Message, sensitive.Message)
	// The reported band stays the classified one; only the caution escalates.
	require.Equal(t, SeverityModerate, sensitive.Severity)
}

func TestFormatNoEscalationPastCeiling(t *testing.T) {
	var formatter Formatter

	general := formatter.Format(SeverityHazardous, UserPreference{})
	sensitive := formatter.Format(SeverityHazardous, UserPreference{SensitiveGroup: true})
	require.Equal(t, general.Message, sensitive.Message)
}
