package querylog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
)

func entry(i int) airquality.QueryEntry {
	return airquality.QueryEntry{
		ID:       fmt.Sprintf("id-%d", i),
		Location: "Chennai",
		Severity: airquality.SeverityModerate,
		At:       time.Date(2025, 8, 26, 6, 0, i, 0, time.UTC),
	}
}

func TestRecordAndRecentNewestFirst(t *testing.T) {
	log := NewMemoryLog(10)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, log.Record(ctx, entry(i)))
	}

	entries, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "id-2", entries[0].ID)
	require.Equal(t, "id-0", entries[2].ID)
}

func TestRecentHonorsLimit(t *testing.T) {
	log := NewMemoryLog(10)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, log.Record(ctx, entry(i)))
	}

	entries, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "id-4", entries[0].ID)
}

func TestRetentionCap(t *testing.T) {
	log := NewMemoryLog(2)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, log.Record(ctx, entry(i)))
	}

	entries, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "id-3", entries[0].ID)
	require.Equal(t, "id-2", entries[1].ID)
}
