package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/zscene/pkg/cache"
	"github.com/matzehuels/zscene/pkg/config"
	"github.com/matzehuels/zscene/pkg/pipeline"
	"github.com/matzehuels/zscene/pkg/presets"
)

func newTestServer(t *testing.T, cfg *config.Config) (*httptest.Server, *bytes.Buffer) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	var logs bytes.Buffer
	logger := log.New(&logs)
	runner := pipeline.NewRunner(fc, nil, logger)
	ts := httptest.NewServer(New(runner, logger, cfg).Handler())
	t.Cleanup(ts.Close)
	return ts, &logs
}

func get(t *testing.T, url string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, body := get(t, ts.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got struct {
		Status string `json:"status"`
		Build  struct {
			Version string `json:"version"`
		} `json:"build"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "ok" || got.Build.Version == "" {
		t.Errorf("body = %s", body)
	}
}

func TestPresets(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, body := get(t, ts.URL+"/presets", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got []presets.Info
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(presets.Names()) {
		t.Errorf("got %d presets, want %d", len(got), len(presets.Names()))
	}
}

func TestFrame(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/presets/box.svg?width=100&height=80&ry=0.5", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(string(body), `width="100" height="80"`) {
		t.Errorf("size not applied:\n%s", body)
	}
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Errorf("first request X-Cache = %q", resp.Header.Get("X-Cache"))
	}

	resp, again := get(t, ts.URL+"/presets/box.svg?width=100&height=80&ry=0.5", nil)
	if resp.Header.Get("X-Cache") != "HIT" {
		t.Errorf("second request X-Cache = %q", resp.Header.Get("X-Cache"))
	}
	if !bytes.Equal(body, again) {
		t.Error("cached body differs")
	}

	resp, body = get(t, ts.URL+"/presets/orbit.png?frame=2&frames=8", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("png status = %d: %s", resp.StatusCode, body)
	}
	if !bytes.HasPrefix(body, []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}
}

func TestFrameConfigDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Width = 64
	cfg.Render.Height = 32
	ts, _ := newTestServer(t, cfg)

	_, body := get(t, ts.URL+"/presets/shapes.svg", nil)
	if !strings.Contains(string(body), `width="64" height="32"`) {
		t.Errorf("config size not applied:\n%s", body)
	}
	_, body = get(t, ts.URL+"/presets/shapes.svg?width=50", nil)
	if !strings.Contains(string(body), `width="50" height="32"`) {
		t.Errorf("query should override config:\n%s", body)
	}
}

func TestFrameErrors(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/presets/teapot.svg", http.StatusNotFound, "PRESET_NOT_FOUND"},
		{"/presets/box.gif", http.StatusBadRequest, "INVALID_FORMAT"},
		{"/presets/box", http.StatusBadRequest, "INVALID_FORMAT"},
		{"/presets/box.svg?width=abc", http.StatusBadRequest, "INVALID_INPUT"},
		{"/presets/box.svg?width=-3", http.StatusBadRequest, "INVALID_SIZE"},
		{"/presets/box.svg?rx=north", http.StatusBadRequest, "INVALID_INPUT"},
		{"/presets/box.svg?frame=5&frames=2", http.StatusBadRequest, "INVALID_INPUT"},
		{"/presets/box.svg?centered=maybe", http.StatusBadRequest, "INVALID_INPUT"},
		{"/presets/Box!.svg", http.StatusBadRequest, "INVALID_PRESET"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path, nil)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			var e errorBody
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if e.RequestID == "" {
				t.Error("error body has no request id")
			}
		})
	}
}

func TestGraph(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, body := get(t, ts.URL+"/presets/tower/graph?detailed=true", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), "digraph G") {
		t.Errorf("unexpected body:\n%s", body)
	}

	resp, _ = get(t, ts.URL+"/presets/tower/graph?format=png", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("png graph status = %d, want 400", resp.StatusCode)
	}
}

func TestRequestID(t *testing.T) {
	ts, logs := newTestServer(t, nil)

	resp, _ := get(t, ts.URL+"/healthz", nil)
	id := resp.Header.Get(RequestIDHeader)
	if len(id) != 36 {
		t.Errorf("generated request id = %q, want a UUID", id)
	}

	resp, _ = get(t, ts.URL+"/healthz", http.Header{RequestIDHeader: {"abc-123"}})
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want caller's", got)
	}
	if !strings.Contains(logs.String(), "abc-123") {
		t.Errorf("access log missing request id:\n%s", logs.String())
	}
}
