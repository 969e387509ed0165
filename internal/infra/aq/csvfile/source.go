package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
)

// Source serves readings from a local CSV file with the columns
// location,pollutant_index,timestamp. Malformed rows are skipped, not fatal.
type Source struct {
	path string
}

// New builds a source over the given file path. The file is re-read on each
// call so edits are picked up without a restart.
func New(path string) *Source {
	return &Source{path: path}
}

// Name identifies the source in advisory responses.
func (s *Source) Name() string {
	return "csv"
}

// Current returns the most recent valid row for the location.
func (s *Source) Current(_ context.Context, location string) (airquality.Reading, error) {
	rows, err := s.load(location)
	if err != nil {
		return airquality.Reading{}, err
	}
	if len(rows) == 0 {
		return airquality.Reading{}, fmt.Errorf("no rows for location %q in %s", location, s.path)
	}
	return rows[len(rows)-1], nil
}

// Recent returns up to limit readings for the location, oldest first.
func (s *Source) Recent(_ context.Context, location string, limit int) ([]airquality.Reading, error) {
	rows, err := s.load(location)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	return rows, nil
}

func (s *Source) load(location string) ([]airquality.Reading, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open sample data: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows []airquality.Reading
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row; keep scanning.
			continue
		}
		reading, ok := parseRecord(record)
		if !ok {
			continue
		}
		if !strings.EqualFold(reading.Location, location) {
			continue
		}
		rows = append(rows, reading)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
	return rows, nil
}

// parseRecord also rejects the header line since its index column does not
// parse as a number.
func parseRecord(record []string) (airquality.Reading, bool) {
	if len(record) < 3 {
		return airquality.Reading{}, false
	}
	loc := strings.TrimSpace(record[0])
	if loc == "" {
		return airquality.Reading{}, false
	}
	index, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil || math.IsNaN(index) || math.IsInf(index, 0) || index < 0 {
		return airquality.Reading{}, false
	}
	ts := parseTimestamp(strings.TrimSpace(record[2]))
	if ts.IsZero() {
		return airquality.Reading{}, false
	}
	return airquality.Reading{
		Location:       loc,
		PollutantIndex: index,
		Timestamp:      ts,
	}, true
}

func parseTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

var (
	_ airquality.Source        = (*Source)(nil)
	_ airquality.HistorySource = (*Source)(nil)
)
