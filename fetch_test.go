package postview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTPFetcherOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"remote"}]`))
	}))
	defer srv.Close()

	f := &HTTPFetcher{Client: srv.Client()}
	data, err := f.Fetch(context.Background(), srv.URL+"/posts.json")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != `[{"title":"remote"}]` {
		t.Errorf("data = %q", data)
	}
}

func TestHTTPFetcherNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := &HTTPFetcher{Client: srv.Client()}
	if _, err := f.Fetch(context.Background(), srv.URL+"/posts.json"); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	var f FileFetcher
	data, err := f.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("data = %q", data)
	}

	if _, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestFileFetcherHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var f FileFetcher
	if _, err := f.Fetch(ctx, "posts.json"); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}

func TestNewFetcherPicksByScheme(t *testing.T) {
	if _, ok := NewFetcher("https://example.com/posts.json", nil).(*HTTPFetcher); !ok {
		t.Error("https URL should get an HTTPFetcher")
	}
	if _, ok := NewFetcher("data/posts.xml", nil).(FileFetcher); !ok {
		t.Error("local path should get a FileFetcher")
	}
}
