package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.FetchesTotal)
	assert.NotNil(t, m.FetchDuration)
	assert.NotNil(t, m.RowsFetched)
	assert.NotNil(t, m.FetchesInFlight)
	assert.NotNil(t, m.Registry())

	// A second instance must not collide with the first.
	assert.NotPanics(t, func() { NewMetrics() })
}

func TestRequestTrackingMiddleware(t *testing.T) {
	m := NewMetrics()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	ts := httptest.NewServer(m.RequestTrackingMiddleware(handler))
	defer ts.Close()

	for _, path := range []string{"/test", "/test", "/missing"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/test", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/missing", "404")))
}

func TestObserveFetch(t *testing.T) {
	m := NewMetrics()

	m.ObserveFetch("rest", "example_table", OutcomeSuccess, 3, 20*time.Millisecond)
	m.ObserveFetch("rest", "example_table", OutcomeError, 0, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("rest", "example_table", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("rest", "example_table", OutcomeError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RowsFetched.WithLabelValues("rest", "example_table")))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveFetch("sqlite", "example_table", OutcomeSuccess, 1, time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(body), "supaview_fetches_total")
	assert.Contains(t, string(body), "go_goroutines")
}
