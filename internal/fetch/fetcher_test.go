package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRecorder struct {
	mu       sync.Mutex
	attempts []Attempt
	err      error
}

func (m *memRecorder) RecordAttempt(_ context.Context, a Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, a)
	return m.err
}

func TestClientGetReturnsBodyAsIs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/live-matches", r.URL.Path)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"homeTeam":"Arsenal"}]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL + "/api/"})
	body, err := client.Get(context.Background(), LiveMatches)

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"homeTeam":"Arsenal"}]`, string(body))
}

func TestClientGetPassesUnexpectedShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something":"else"}`))
	}))
	defer server.Close()

	body, err := NewClient(ClientConfig{BaseURL: server.URL}).Get(context.Background(), Competitions)

	require.NoError(t, err)
	assert.JSONEq(t, `{"something":"else"}`, string(body))
}

func TestClientGetServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(ClientConfig{BaseURL: server.URL}).Get(context.Background(), Standings("PL"))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ServerFailure, fe.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, fe.Status)
	assert.Equal(t, "standings/PL", fe.Endpoint)
	assert.Contains(t, err.Error(), "503")
}

func TestClientGetParseFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	_, err := NewClient(ClientConfig{BaseURL: server.URL}).Get(context.Background(), Teams("PD"))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ParseFailure, fe.Kind)
	assert.Equal(t, "failed to load teams/PD: malformed response", fe.Error())
}

func TestClientGetNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(ClientConfig{BaseURL: url}).Get(context.Background(), UpcomingMatches)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, NetworkFailure, fe.Kind)
	assert.Zero(t, fe.Status)
}

func TestClientGetCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(ClientConfig{BaseURL: server.URL}).Get(ctx, LiveMatches)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClientDoesNotDeduplicate(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	_, err1 := client.Get(context.Background(), LiveMatches)
	_, err2 := client.Get(context.Background(), LiveMatches)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClientRecordsAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/teams/PL" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"competitions":[]}`))
	}))
	defer server.Close()

	rec := &memRecorder{}
	client := NewClient(ClientConfig{BaseURL: server.URL}, WithRecorder(rec))

	_, err := client.Get(context.Background(), Competitions)
	require.NoError(t, err)
	_, err = client.Get(context.Background(), Teams("PL"))
	require.Error(t, err)

	require.Len(t, rec.attempts, 2)
	assert.Equal(t, OutcomeOK, rec.attempts[0].Outcome)
	assert.Equal(t, http.StatusOK, rec.attempts[0].Status)
	assert.Equal(t, len(`{"competitions":[]}`), rec.attempts[0].Bytes)
	assert.Equal(t, OutcomeServer, rec.attempts[1].Outcome)
	assert.Equal(t, http.StatusNotFound, rec.attempts[1].Status)
	assert.NotEqual(t, rec.attempts[0].RequestID, rec.attempts[1].RequestID)
}

func TestClientRecorderErrorIsNotSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	rec := &memRecorder{err: errors.New("disk full")}
	_, err := NewClient(ClientConfig{BaseURL: server.URL}, WithRecorder(rec)).Get(context.Background(), LiveMatches)

	assert.NoError(t, err)
}

func TestClientPacing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, RequestsPerSecond: 20})

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), LiveMatches)
		require.NoError(t, err)
	}
	// Burst of 1 at 20/s: the 2nd and 3rd requests each wait ~50ms.
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestClientURL(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://localhost:5000/api/"})
	assert.Equal(t, "http://localhost:5000/api", client.BaseURL())
	assert.Equal(t, "http://localhost:5000/api/standings/PL", client.URL("/standings/PL"))
}

func TestEndpoints(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Standings("PL"), "standings/PL"},
		{Teams("CL"), "teams/CL"},
		{Standings("a/b"), "standings/a%2Fb"},
		{Teams(""), "teams/"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.got)
	}
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeOK, outcomeOf(nil))
	assert.Equal(t, OutcomeNetwork, outcomeOf(errors.New("boom")))
	assert.Equal(t, OutcomeServer, outcomeOf(&FetchError{Kind: ServerFailure}))
	assert.Equal(t, OutcomeParse, outcomeOf(&FetchError{Kind: ParseFailure}))
	assert.Equal(t, OutcomeNetwork, outcomeOf(&FetchError{Kind: NetworkFailure}))
}
