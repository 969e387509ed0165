package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
)

func sampleReading(location string, index float64, day int) airquality.Reading {
	return airquality.Reading{
		Location:       location,
		PollutantIndex: index,
		Timestamp:      time.Date(2025, 8, day, 6, 0, 0, 0, time.UTC),
	}
}

func TestAppendAndRecent(t *testing.T) {
	repo := NewMemoryRepository(10)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, sampleReading("Chennai", 78, 20)))
	require.NoError(t, repo.Append(ctx, sampleReading("Chennai", 85, 21)))
	require.NoError(t, repo.Append(ctx, sampleReading("Delhi", 162, 21)))

	rows, err := repo.Recent(ctx, "chennai", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 78.0, rows[0].PollutantIndex)
	require.Equal(t, 85.0, rows[1].PollutantIndex)
}

func TestRecentHonorsLimit(t *testing.T) {
	repo := NewMemoryRepository(10)
	ctx := context.Background()

	for day := 20; day < 27; day++ {
		require.NoError(t, repo.Append(ctx, sampleReading("Chennai", float64(day), day)))
	}

	rows, err := repo.Recent(ctx, "Chennai", 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, 24.0, rows[0].PollutantIndex)
	require.Equal(t, 26.0, rows[2].PollutantIndex)
}

func TestRetentionCapDropsOldest(t *testing.T) {
	repo := NewMemoryRepository(2)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, sampleReading("Chennai", 1, 20)))
	require.NoError(t, repo.Append(ctx, sampleReading("Chennai", 2, 21)))
	require.NoError(t, repo.Append(ctx, sampleReading("Chennai", 3, 22)))

	rows, err := repo.Recent(ctx, "Chennai", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 2.0, rows[0].PollutantIndex)
	require.Equal(t, 3.0, rows[1].PollutantIndex)
}

func TestRecentUnknownLocationIsEmpty(t *testing.T) {
	repo := NewMemoryRepository(10)

	rows, err := repo.Recent(context.Background(), "Atlantis", 5)
	require.NoError(t, err)
	require.Empty(t, rows)
}
