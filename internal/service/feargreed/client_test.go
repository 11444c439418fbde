package feargreed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct{ n map[string]int }

func (r *countingRecorder) RecordSourceError(source string) {
	if r.n == nil {
		r.n = map[string]int{}
	}
	r.n[source]++
}

func serve(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"string value", `{"data":[{"value":"54","value_classification":"Neutral","timestamp":"1760486400"}]}`, 54},
		{"numeric value", `{"data":[{"value":21,"value_classification":"Extreme Fear","timestamp":"1"}]}`, 21},
		{"first element only", `{"data":[{"value":"70","value_classification":"Greed"},{"value":"10"}]}`, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(serve(t, http.StatusOK, tt.body), time.Second)
			got := c.Latest(context.Background())
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestLatestFailuresAreAbsent(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-200", http.StatusServiceUnavailable, `{"data":[{"value":"50"}]}`},
		{"malformed", http.StatusOK, `{"data":`},
		{"empty data", http.StatusOK, `{"data":[]}`},
		{"non-integer", http.StatusOK, `{"data":[{"value":"fifty"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &countingRecorder{}
			c := New(serve(t, tt.status, tt.body), time.Second, WithMetrics(rec))
			assert.Nil(t, c.Latest(context.Background()))
			assert.Equal(t, 1, rec.n[sourceName])
		})
	}
}

func TestTimeoutIsClamped(t *testing.T) {
	c := New("", time.Minute)
	assert.Equal(t, DefaultURL, c.url)
	assert.NotNil(t, c.http)
}
