package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/zscene/pkg/cache"
	"github.com/matzehuels/zscene/pkg/errors"
	"github.com/matzehuels/zscene/pkg/geom"
	"github.com/matzehuels/zscene/pkg/illustration"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", true},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateGraphFormat(t *testing.T) {
	for _, f := range []string{"dot", "svg", "pdf"} {
		if err := ValidateGraphFormat(f); err != nil {
			t.Errorf("ValidateGraphFormat(%q): %v", f, err)
		}
	}
	if err := ValidateGraphFormat("png"); err == nil {
		t.Error("png graphs should be rejected")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if opts.Preset != DefaultPreset {
		t.Errorf("Preset should be %s, got %s", DefaultPreset, opts.Preset)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("Size should be %dx%d, got %dx%d", DefaultWidth, DefaultHeight, opts.Width, opts.Height)
	}
	if opts.Zoom != DefaultZoom {
		t.Errorf("Zoom should be %v, got %v", DefaultZoom, opts.Zoom)
	}
	if opts.Frames != DefaultFrames {
		t.Errorf("Frames should be %d, got %d", DefaultFrames, opts.Frames)
	}
	if opts.Centered == nil || !*opts.Centered {
		t.Error("Centered should default to true")
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}

	// Explicit values survive
	off := false
	opts = Options{Width: 100, Centered: &off}
	opts.SetRenderDefaults()
	if opts.Width != 100 || *opts.Centered {
		t.Errorf("explicit values overwritten: %+v", opts)
	}
}

func TestValidateForRender(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{name: "defaults", opts: Options{}},
		{name: "bad preset name", opts: Options{Preset: "Box!"}, wantCode: errors.ErrCodeInvalidPreset},
		{name: "bad format", opts: Options{Formats: []string{"gif"}}, wantCode: errors.ErrCodeInvalidFormat},
		{name: "negative width", opts: Options{Width: -1}, wantCode: errors.ErrCodeInvalidSize},
		{name: "negative zoom", opts: Options{Zoom: -1}, wantCode: errors.ErrCodeInvalidSize},
		{name: "frame out of range", opts: Options{Frame: 3, Frames: 3}, wantCode: errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateForRender: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ValidateForRender error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestFrameTime(t *testing.T) {
	if FrameTime(0, 0) != 0 {
		t.Error("FrameTime with no frames should be 0")
	}
	for i := range 4 {
		want := geom.EaseInOut(float64(i)/4, illustration.DefaultEasePower)
		if got := FrameTime(i, 4); got != want {
			t.Errorf("FrameTime(%d, 4) = %v, want %v", i, got, want)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Preset: "box", Rotate: geom.Vector{X: 1, Y: 2, Z: 3}, Frame: 2, Frames: 5}
	opts.SetRenderDefaults()
	k := opts.ArtifactKeyOpts("png")
	if k.Format != "png" || k.Rotate != [3]float64{1, 2, 3} || k.Frame != 2 || k.Frames != 5 || !k.Centered {
		t.Errorf("ArtifactKeyOpts = %+v", k)
	}
}

func TestRender(t *testing.T) {
	artifacts, stats, err := Render(context.Background(), Options{Preset: "box", Formats: []string{"svg", "png"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	svgOut := string(artifacts["svg"])
	if !strings.HasPrefix(svgOut, "<svg") || !strings.Contains(svgOut, "<title>box</title>") {
		t.Errorf("unexpected svg:\n%s", svgOut)
	}
	if !bytes.HasPrefix(artifacts["png"], []byte("\x89PNG")) {
		t.Error("png artifact is not a PNG")
	}
	if stats.NodeCount == 0 || stats.DrawCalls == 0 {
		t.Errorf("stats not filled: %+v", stats)
	}
	// Every box face is a path; the background is a rect.
	if n := strings.Count(svgOut, "<path"); n != stats.DrawCalls {
		t.Errorf("svg has %d paths, stats report %d draw calls", n, stats.DrawCalls)
	}
}

func TestRenderBackground(t *testing.T) {
	tests := []struct {
		background string
		want       string
		wantRect   bool
	}{
		{background: "", want: `fill="#FDB"`, wantRect: true},
		{background: "#123", want: `fill="#123"`, wantRect: true},
		{background: BackgroundNone, wantRect: false},
	}
	for _, tt := range tests {
		t.Run(tt.background, func(t *testing.T) {
			artifacts, _, err := Render(context.Background(), Options{Preset: "box", Background: tt.background})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			out := string(artifacts["svg"])
			if got := strings.Contains(out, "<rect"); got != tt.wantRect {
				t.Errorf("background rect present = %v, want %v", got, tt.wantRect)
			}
			if tt.want != "" && !strings.Contains(out, tt.want) {
				t.Errorf("output missing %s", tt.want)
			}
		})
	}
}

func TestRenderUnknownPreset(t *testing.T) {
	_, _, err := Render(context.Background(), Options{Preset: "teapot"})
	if !errors.Is(err, errors.ErrCodePresetNotFound) {
		t.Errorf("err = %v, want preset not found", err)
	}
}

func TestAnimate(t *testing.T) {
	var frames []string
	err := Animate(context.Background(), Options{Preset: "orbit", Frames: 3}, func(frame int, artifacts map[string][]byte) error {
		if frame != len(frames) {
			t.Errorf("frame %d out of order", frame)
		}
		frames = append(frames, string(artifacts["svg"]))
		return nil
	})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[0] == frames[1] || frames[1] == frames[2] {
		t.Error("consecutive frames are identical")
	}

	// A single frame render matches the animation frame.
	single, _, err := Render(context.Background(), Options{Preset: "orbit", Frame: 1, Frames: 3})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(single["svg"]) != frames[1] {
		t.Error("Render of frame 1 differs from the animated frame 1")
	}
}

func TestGraph(t *testing.T) {
	data, err := Graph(context.Background(), GraphOptions{Preset: "box"})
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "digraph G") || !strings.Contains(out, `label="Box"`) {
		t.Errorf("unexpected DOT:\n%s", out)
	}
	if _, err := Graph(context.Background(), GraphOptions{Preset: "box", Format: "png"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want invalid format", err)
	}
}

// memCache is an in-memory cache.Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
	ttl  time.Duration
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.sets++
	m.ttl = ttl
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func TestRunnerRenderCaches(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	opts := Options{Preset: "shapes", Formats: []string{"svg", "png"}}

	first, err := r.Render(ctx, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if first.CacheHit {
		t.Error("first render should miss")
	}
	if mc.sets != 2 {
		t.Errorf("cache sets = %d, want 2", mc.sets)
	}

	second, err := r.Render(ctx, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !second.CacheHit {
		t.Error("second render should hit")
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached artifact differs")
	}

	// A different rotation is a different artifact.
	opts.Rotate = geom.Vector{X: 0.5}
	third, err := r.Render(ctx, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if third.CacheHit {
		t.Error("changed options should miss")
	}

	// Refresh skips the lookup.
	opts.Refresh = true
	fourth, err := r.Render(ctx, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if fourth.CacheHit {
		t.Error("refresh should not hit")
	}
}

func TestRunnerAnimateCaches(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	opts := Options{Preset: "tower", Frames: 4}

	collect := func() []string {
		var out []string
		if err := r.Animate(ctx, opts, func(frame int, artifacts map[string][]byte) error {
			out = append(out, string(artifacts["svg"]))
			return nil
		}); err != nil {
			t.Fatalf("Animate: %v", err)
		}
		return out
	}

	first := collect()
	if mc.sets != 4 {
		t.Errorf("cache sets = %d, want 4", mc.sets)
	}
	second := collect()
	if mc.sets != 4 {
		t.Errorf("second run rendered again: %d sets", mc.sets)
	}
	if len(first) != 4 || len(second) != 4 {
		t.Fatalf("frame counts %d and %d, want 4", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("frame %d differs between runs", i)
		}
	}

	// Frames cached by the animation serve single renders too.
	res, err := r.Render(ctx, Options{Preset: "tower", Frame: 2, Frames: 4})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !res.CacheHit || string(res.Artifacts["svg"]) != first[2] {
		t.Error("animation frame not reused by Render")
	}
}

func TestRunnerGraphCaches(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	opts := GraphOptions{Preset: "solids", Detailed: true}

	data, hit, err := r.Graph(ctx, opts)
	if err != nil || hit {
		t.Fatalf("Graph = hit %v, err %v", hit, err)
	}
	again, hit, err := r.Graph(ctx, opts)
	if err != nil || !hit || !bytes.Equal(data, again) {
		t.Errorf("second Graph = hit %v, err %v", hit, err)
	}
}

func TestRunnerTTL(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	if _, err := r.Render(ctx, Options{Preset: "box"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if mc.ttl != cache.TTLArtifact {
		t.Errorf("ttl = %v, want %v", mc.ttl, cache.TTLArtifact)
	}

	r.TTL = time.Hour
	if _, err := r.Render(ctx, Options{Preset: "box", Refresh: true}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if mc.ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", mc.ttl)
	}
}
