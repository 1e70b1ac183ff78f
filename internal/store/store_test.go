package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/abelbrown/touchline/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		// Drop rows so the shared in-memory database starts clean for the next test.
		st.db.Exec("DELETE FROM fetch_attempts")
		st.Close()
	})
	return st
}

func attempt(id, endpoint string, status int, outcome fetch.Outcome, at time.Time) fetch.Attempt {
	return fetch.Attempt{
		RequestID: id,
		Endpoint:  endpoint,
		Status:    status,
		Outcome:   outcome,
		Bytes:     128,
		Duration:  40 * time.Millisecond,
		At:        at,
	}
}

func TestOpen(t *testing.T) {
	st := openTestStore(t)

	var name string
	err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='fetch_attempts'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "fetch_attempts", name)
}

func TestOpenFileDatabase(t *testing.T) {
	path := t.TempDir() + "/journal.db"
	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	var mode string
	require.NoError(t, st.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestRecordAndRecent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.RecordAttempt(ctx, attempt("a", "live-matches", 200, fetch.OutcomeOK, base)))
	require.NoError(t, st.RecordAttempt(ctx, attempt("b", "standings/PL", 503, fetch.OutcomeServer, base.Add(time.Minute))))
	require.NoError(t, st.RecordAttempt(ctx, attempt("c", "teams/PL", 0, fetch.OutcomeNetwork, base.Add(2*time.Minute))))

	recent, err := st.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	assert.Equal(t, "c", recent[0].RequestID)
	assert.Equal(t, fetch.OutcomeNetwork, recent[0].Outcome)
	assert.Equal(t, "b", recent[1].RequestID)
	assert.Equal(t, 503, recent[1].Status)
	assert.Equal(t, 40*time.Millisecond, recent[1].Duration)
	assert.True(t, recent[1].At.Equal(base.Add(time.Minute)), "got %v", recent[1].At)
}

func TestStats(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.RecordAttempt(ctx, attempt("1", "live-matches", 200, fetch.OutcomeOK, base)))
	require.NoError(t, st.RecordAttempt(ctx, attempt("2", "live-matches", 500, fetch.OutcomeServer, base.Add(time.Second))))
	require.NoError(t, st.RecordAttempt(ctx, attempt("3", "live-matches", 200, fetch.OutcomeOK, base.Add(2*time.Second))))
	require.NoError(t, st.RecordAttempt(ctx, attempt("4", "competitions", 200, fetch.OutcomeOK, base)))

	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	live := stats[0]
	assert.Equal(t, "live-matches", live.Endpoint)
	assert.Equal(t, 3, live.Requests)
	assert.Equal(t, 1, live.Failures)
	assert.Equal(t, 200, live.LastStatus)
	assert.Equal(t, 40*time.Millisecond, live.AvgDuration)
	assert.True(t, live.LastAt.Equal(base.Add(2*time.Second)), "got %v", live.LastAt)

	assert.Equal(t, "competitions", stats[1].Endpoint)
	assert.Equal(t, 0, stats[1].Failures)
}

func TestPrune(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.RecordAttempt(ctx, attempt("old", "live-matches", 200, fetch.OutcomeOK, now.Add(-48*time.Hour))))
	require.NoError(t, st.RecordAttempt(ctx, attempt("new", "live-matches", 200, fetch.OutcomeOK, now)))

	removed, err := st.Prune(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	recent, err := st.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].RequestID)
}

func TestConcurrentRecord(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, st.RecordAttempt(ctx, attempt(fmt.Sprintf("r%d", i), "upcoming-matches", 200, fetch.OutcomeOK, now)))
		}(i)
	}
	wg.Wait()

	recent, err := st.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, recent, 20)
}
