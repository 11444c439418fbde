package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHeadlinesSortedNewestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/api/v1/company-news" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q.Get("symbol") != "MSFT" || q.Get("token") != "key" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("from") != "2026-10-08" || q.Get("to") != "2026-10-15" {
			t.Errorf("unexpected window %s..%s", q.Get("from"), q.Get("to"))
		}
		_, _ = w.Write([]byte(`[
			{"headline":"older","datetime":100,"source":"A"},
			{"headline":"newest","datetime":300,"source":"B"},
			{"headline":"middle","datetime":200,"source":"C"}]`))
	}))
	defer srv.Close()

	c := New("key", srv.URL, 7, time.Second)
	c.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }

	got, err := c.Headlines(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	want := []string{"newest", "middle", "older"}
	if len(got) != len(want) {
		t.Fatalf("got %d articles want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Title != w {
			t.Fatalf("article %d: got %q want %q", i, got[i].Title, w)
		}
	}
}

func TestHeadlinesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := New("key", srv.URL, 7, time.Second).Headlines(context.Background(), "MSFT"); err == nil {
		t.Fatalf("expected error on 429")
	}
	if _, err := New("", srv.URL, 7, time.Second).Headlines(context.Background(), "MSFT"); err == nil {
		t.Fatalf("expected error without api key")
	}
}
