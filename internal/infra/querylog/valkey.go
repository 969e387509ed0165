package querylog

import (
	"context"
	"encoding/json"

	"github.com/valkey-io/valkey-go"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
)

// ValkeyLog keeps advisory queries in a capped Valkey list so the log
// survives restarts and is shared between replicas.
type ValkeyLog struct {
	client valkey.Client
	key    string
	max    int64
}

// NewValkeyLog constructs a log backed by Valkey.
func NewValkeyLog(client valkey.Client, key string, maxEntries int) *ValkeyLog {
	if key == "" {
		key = "airadvisor:queries"
	}
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &ValkeyLog{client: client, key: key, max: int64(maxEntries)}
}

// Record pushes the entry to the head of the list and trims past the cap.
func (l *ValkeyLog) Record(ctx context.Context, entry airquality.QueryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := l.client.Do(ctx, l.client.B().Lpush().Key(l.key).Element(string(payload)).Build()).Error(); err != nil {
		return err
	}
	return l.client.Do(ctx, l.client.B().Ltrim().Key(l.key).Start(0).Stop(l.max-1).Build()).Error()
}

// Recent returns up to limit entries, newest first.
func (l *ValkeyLog) Recent(ctx context.Context, limit int) ([]airquality.QueryEntry, error) {
	if limit <= 0 {
		limit = int(l.max)
	}
	resp := l.client.Do(ctx, l.client.B().Lrange().Key(l.key).Start(0).Stop(int64(limit-1)).Build())
	payloads, err := resp.AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]airquality.QueryEntry, 0, len(payloads))
	for _, payload := range payloads {
		var entry airquality.QueryEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			// Skip entries written by an incompatible version.
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

var _ airquality.QueryLog = (*ValkeyLog)(nil)
