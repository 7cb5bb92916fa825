package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWikipedia_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/w/api.php":
			_, _ = w.Write([]byte(`{"query":{"search":[{"title":"Hash table"}]}}`))
		case strings.HasPrefix(r.URL.Path, "/api/rest_v1/page/summary/"):
			_, _ = w.Write([]byte(`{"extract":"A hash table is a data structure."}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewWikipediaClient()
	c.BaseURL = srv.URL
	got, err := c.Verify(context.Background(), "hash table")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != "A hash table is a data structure." {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestWikipedia_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
	}))
	defer srv.Close()

	c := NewWikipediaClient()
	c.BaseURL = srv.URL
	if _, err := c.Verify(context.Background(), "zzzz"); err == nil {
		t.Fatalf("expected error for empty search")
	}
}

func TestWikipedia_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewWikipediaClient()
	c.BaseURL = srv.URL
	if _, err := c.Verify(context.Background(), "topic"); err == nil {
		t.Fatalf("expected error on 500")
	}
}
