package imagecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	httputil "github.com/jmylchreest/paleta/internal/util/http"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		url     string
		wantExt string
	}{
		{"https://example.com/wall.jpg", ".jpg"},
		{"https://example.com/wall.PNG?size=large", ".png"},
		{"https://example.com/wall", ".img"},
		{"https://example.com/file.verylongext", ".img"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := Filename(tt.url)
			if !strings.HasSuffix(got, tt.wantExt) {
				t.Errorf("Filename() = %q, want suffix %q", got, tt.wantExt)
			}
			if Filename(tt.url) != got {
				t.Error("Filename() is not stable")
			}
		})
	}

	if Filename("https://a/x.png") == Filename("https://b/x.png") {
		t.Error("different URLs produced the same filename")
	}
}

func TestDownloadAndCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/img.png"
	fetch := httputil.FetchOptions{AllowPrivate: true}

	path, err := DownloadAndCache(context.Background(), url, CacheOptions{CacheDir: dir, Fetch: fetch})
	if err != nil {
		t.Fatalf("DownloadAndCache() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("cached at %q, want inside %q", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "payload" {
		t.Fatalf("cached content = %q, %v", data, err)
	}

	if _, err := DownloadAndCache(context.Background(), url, CacheOptions{CacheDir: dir, Fetch: fetch}); err != nil {
		t.Fatalf("second DownloadAndCache() error = %v", err)
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}

	if _, err := DownloadAndCache(context.Background(), url, CacheOptions{CacheDir: dir, Refresh: true, Fetch: fetch}); err != nil {
		t.Fatalf("refresh DownloadAndCache() error = %v", err)
	}
	if hits != 2 {
		t.Errorf("server hit %d times after refresh, want 2", hits)
	}
}

func TestDownloadAndCacheRejectsNonHTTP(t *testing.T) {
	if _, err := DownloadAndCache(context.Background(), "file:///etc/passwd", CacheOptions{CacheDir: t.TempDir()}); err == nil {
		t.Error("expected error for non-HTTP URL")
	}
}
