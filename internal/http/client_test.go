package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(r.Header.Get("User-Agent")))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	t.Run("sends user agent", func(t *testing.T) {
		c := NewClient(WithUserAgent("test-agent"))
		body, err := c.GetString(ctx, srv.URL+"/ok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body != "test-agent" {
			t.Errorf("User-Agent = %q, want %q", body, "test-agent")
		}
	})

	t.Run("default user agent", func(t *testing.T) {
		c := NewClient(WithUserAgent(""))
		if c.UserAgent() != DefaultUserAgent {
			t.Errorf("UserAgent() = %q, want %q", c.UserAgent(), DefaultUserAgent)
		}
	})

	t.Run("non-200 is a status error", func(t *testing.T) {
		c := NewClient()
		_, err := c.Get(ctx, srv.URL+"/missing")
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("expected *StatusError, got %v", err)
		}
		if se.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want 404", se.StatusCode)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		c := NewClient()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := c.Get(cctx, srv.URL+"/ok"); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
