package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSample(t *testing.T, content string) *Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return New(path)
}

const sample = `location,pollutant_index,timestamp
Chennai,78,2025-08-20T06:00:00Z
Chennai,92,2025-08-22T06:00:00Z
Chennai,85,2025-08-21T06:00:00Z
Chennai,not-a-number,2025-08-23T06:00:00Z
Chennai,88,not-a-date
Chennai,-4,2025-08-23T06:00:00Z
,12,2025-08-23T06:00:00Z
Delhi,162
Delhi,171,2025-08-24T06:00:00Z
`

func TestCurrentReturnsMostRecentRow(t *testing.T) {
	source := writeSample(t, sample)

	got, err := source.Current(context.Background(), "Chennai")
	require.NoError(t, err)
	require.Equal(t, 92.0, got.PollutantIndex)
	require.Equal(t, "Chennai", got.Location)
}

func TestCurrentMatchesLocationCaseInsensitively(t *testing.T) {
	source := writeSample(t, sample)

	got, err := source.Current(context.Background(), "chennai")
	require.NoError(t, err)
	require.Equal(t, 92.0, got.PollutantIndex)
}

func TestCurrentUnknownLocation(t *testing.T) {
	source := writeSample(t, sample)

	_, err := source.Current(context.Background(), "Atlantis")
	require.Error(t, err)
}

func TestCurrentMissingFile(t *testing.T) {
	source := New(filepath.Join(t.TempDir(), "nope.csv"))

	_, err := source.Current(context.Background(), "Chennai")
	require.Error(t, err)
}

func TestRecentIsChronologicalAndSkipsMalformedRows(t *testing.T) {
	source := writeSample(t, sample)

	rows, err := source.Recent(context.Background(), "Chennai", 10)
	require.NoError(t, err)
	// Header, the unparsable rows and the negative index are all skipped.
	require.Len(t, rows, 3)
	require.Equal(t, 78.0, rows[0].PollutantIndex)
	require.Equal(t, 85.0, rows[1].PollutantIndex)
	require.Equal(t, 92.0, rows[2].PollutantIndex)
}

func TestRecentHonorsLimit(t *testing.T) {
	source := writeSample(t, sample)

	rows, err := source.Recent(context.Background(), "Chennai", 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 85.0, rows[0].PollutantIndex)
	require.Equal(t, 92.0, rows[1].PollutantIndex)
}

func TestDateOnlyTimestampsAccepted(t *testing.T) {
	source := writeSample(t, "Pune,61,2025-08-20\nPune,64,2025-08-21\n")

	got, err := source.Current(context.Background(), "Pune")
	require.NoError(t, err)
	require.Equal(t, 64.0, got.PollutantIndex)
}
