package preview

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ardnew/includer/fsys"
	"github.com/ardnew/includer/log"
	"github.com/ardnew/includer/render"
	"github.com/ardnew/includer/vars"
)

func newServer(t *testing.T) (*httptest.Server, *fsys.Mem) {
	t.Helper()

	mem := fsys.NewMem(map[string]string{
		"/site/index.html":         `<h1>@@title</h1>@@include("partials/foot.html")`,
		"/site/docs/index.html":    `[@@docroot]`,
		"/site/partials/foot.html": `<footer>@@title</footer>`,
		"/site/broken.html":        `@@include("partials/foot.html", {oops})`,
		"/site/notes.txt":          "plain @@title",
	})

	cfg := render.DefaultConfig()
	cfg.Docroot = "/site"
	cfg.Globals = vars.Map{{Name: "title", Value: "Home"}}

	var logs bytes.Buffer

	logger := log.Make(&logs)

	e, err := render.NewEngine(t.Context(), cfg, render.WithFS(mem), render.WithLogger(logger))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	ts := httptest.NewServer(NewServer(e, "/site", logger))
	t.Cleanup(ts.Close)

	return ts, mem
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string, string) {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
}

func TestServer_Documents(t *testing.T) {
	ts, _ := newServer(t)

	tests := []struct {
		path   string
		status int
		ctype  string
		body   string
	}{
		{"/", http.StatusOK, "text/html", "<h1>Home</h1><footer>Home</footer>"},
		{"/index.html", http.StatusOK, "text/html", "<h1>Home</h1><footer>Home</footer>"},
		{"/docs/", http.StatusOK, "text/html", "[../]"},
		{"/notes.txt", http.StatusOK, "text/plain", "plain Home"},
		{"/missing.html", http.StatusNotFound, "", ""},
		{"/../../etc/passwd", http.StatusNotFound, "", ""},
		{"/broken.html", http.StatusInternalServerError, "", "malformed include locals"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, ctype, body := get(t, ts, tt.path)
			if status != tt.status {
				t.Fatalf("status = %d, want %d (%s)", status, tt.status, body)
			}

			if !strings.HasPrefix(ctype, tt.ctype) {
				t.Errorf("content type = %q, want %q", ctype, tt.ctype)
			}

			if tt.body != "" && !strings.Contains(body, tt.body) {
				t.Errorf("body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestServer_RendersCurrentContents(t *testing.T) {
	ts, mem := newServer(t)

	if err := mem.Write("/site/partials/foot.html", "<footer>v2</footer>"); err != nil {
		t.Fatal(err)
	}

	if _, _, body := get(t, ts, "/"); body != "<h1>Home</h1><footer>v2</footer>" {
		t.Errorf("body = %q", body)
	}
}

func TestServer_HealthAndStats(t *testing.T) {
	ts, _ := newServer(t)

	if status, _, body := get(t, ts, "/_health"); status != http.StatusOK || body != `{"status":"ok"}` {
		t.Errorf("health = %d %q", status, body)
	}

	get(t, ts, "/")

	_, ctype, body := get(t, ts, "/_stats")
	if ctype != "application/json" {
		t.Errorf("content type = %q", ctype)
	}

	var stats render.Stats
	if err := json.Unmarshal([]byte(body), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}

	if stats.Documents != 1 || stats.Includes != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
