package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjtrotter/dashbuddy/pkg/adapters/sqlite"
)

func openTestLog(t *testing.T) *sqlite.EventLog {
	t.Helper()
	log, err := sqlite.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func TestAppendAndQuery(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)

	require.NoError(t, log.Append(ctx, "s1", "session_start", map[string]any{"zone": "Downtown"}, at))
	require.NoError(t, log.Append(ctx, "s1", "offer_received", map[string]any{"pay": 14.5}, at.Add(time.Minute)))
	require.NoError(t, log.Append(ctx, "s2", "session_start", nil, at.Add(2*time.Minute)))

	events, err := log.BySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "session_start", events[0].EventType)
	assert.Equal(t, "Downtown", events[0].Payload["zone"])
	assert.True(t, events[0].OccurredAt.Equal(at))

	assert.Equal(t, "offer_received", events[1].EventType)
	assert.Equal(t, 14.5, events[1].Payload["pay"])
}

func TestAppendNilPayload(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, "s1", "session_stop", nil, time.Now()))

	events, err := log.BySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].Payload)
}

func TestBySessionEmpty(t *testing.T) {
	log := openTestLog(t)

	events, err := log.BySession(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAppendOrderPreserved(t *testing.T) {
	log := openTestLog(t)
	ctx := context.Background()
	at := time.Now()

	types := []string{"session_start", "offer_received", "offer_evaluated", "pickup_started", "delivery_recorded", "session_stop"}
	for _, et := range types {
		require.NoError(t, log.Append(ctx, "s1", et, nil, at))
	}

	events, err := log.BySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, len(types))
	for i, et := range types {
		assert.Equal(t, et, events[i].EventType)
	}
}
