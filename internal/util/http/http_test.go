package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	var gotAgent, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotHeader = r.Header.Get("X-Test")
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("hello"))
		case "/big":
			w.Write([]byte(strings.Repeat("x", 32)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("ok", func(t *testing.T) {
		data, err := Fetch(context.Background(), srv.URL+"/ok", FetchOptions{Headers: map[string]string{"X-Test": "yes"}, AllowPrivate: true})
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if string(data) != "hello" {
			t.Errorf("Fetch() = %q, want hello", data)
		}
		if !strings.HasPrefix(gotAgent, UserAgentName+"/") {
			t.Errorf("User-Agent = %q", gotAgent)
		}
		if gotHeader != "yes" {
			t.Errorf("X-Test header = %q, want yes", gotHeader)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := Fetch(context.Background(), srv.URL+"/missing", FetchOptions{AllowPrivate: true}); err == nil {
			t.Error("expected error for 404")
		}
	})

	t.Run("private host rejected by default", func(t *testing.T) {
		if _, err := Fetch(context.Background(), srv.URL+"/ok", FetchOptions{}); err == nil {
			t.Error("expected error for loopback host")
		}
	})

	t.Run("too large", func(t *testing.T) {
		if _, err := Fetch(context.Background(), srv.URL+"/big", FetchOptions{MaxBytes: 16, AllowPrivate: true}); err == nil {
			t.Error("expected error for oversized body")
		}
	})
}
