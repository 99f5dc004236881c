package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-etl/internal/platform/resilience"
	"github.com/riskibarqy/matchday-etl/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg ClientConfig) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL + "/"
	cfg.HTTPClient = server.Client()
	client := NewClient(cfg)
	client.backoff = func(int) time.Duration { return time.Millisecond }
	return client
}

func TestClient_FetchScoreboardBuildsDateQuery(t *testing.T) {
	t.Parallel()

	var gotPath, gotDates string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDates = r.URL.Query().Get("dates")
		_, _ = w.Write([]byte(`{"events":[{"id":"401"}]}`))
	}, ClientConfig{})

	raw, err := client.FetchScoreboard(context.Background(), time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "/scoreboard", gotPath)
	assert.Equal(t, "20250614", gotDates)
	assert.JSONEq(t, `{"events":[{"id":"401"}]}`, string(raw))
}

func TestClient_FetchSummaryBuildsEventQuery(t *testing.T) {
	t.Parallel()

	var gotEvent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summary", r.URL.Path)
		gotEvent = r.URL.Query().Get("event")
		_, _ = w.Write([]byte(`{}`))
	}, ClientConfig{})

	_, err := client.FetchSummary(context.Background(), " 401 ")
	require.NoError(t, err)
	assert.Equal(t, "401", gotEvent)

	_, err = client.FetchSummary(context.Background(), "")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestClient_NonSuccessStatusIsError(t *testing.T) {
	t.Parallel()

	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "missing event", http.StatusNotFound)
	}, ClientConfig{MaxRetries: 3})

	_, err := client.FetchSummary(context.Background(), "402")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "status=404")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx must not be retried")
}

func TestClient_NoRetriesByDefault(t *testing.T) {
	t.Parallel()

	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}, ClientConfig{})

	_, err := client.FetchSummary(context.Background(), "401")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, ClientConfig{MaxRetries: 2})

	raw, err := client.FetchSummary(context.Background(), "401")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}, ClientConfig{CircuitBreaker: resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}})

	for i := 0; i < 2; i++ {
		_, err := client.FetchSummary(context.Background(), "401")
		require.ErrorIs(t, err, ErrUnexpectedStatus)
	}

	_, err := client.FetchSummary(context.Background(), "401")
	assert.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_NotFoundDoesNotTripCircuit(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, ClientConfig{CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1}})

	for i := 0; i < 3; i++ {
		_, err := client.FetchSummary(context.Background(), "401")
		require.ErrorIs(t, err, ErrUnexpectedStatus)
	}
	assert.Equal(t, resilience.CircuitStateClosed, client.breaker.State())
}
