package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get after Set = %q, hit %v, err %v; want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestHashKey(t *testing.T) {
	a := hashKey("artifact:box", 1, "svg")
	if a != hashKey("artifact:box", 1, "svg") {
		t.Error("hashKey should be deterministic")
	}
	if a == hashKey("artifact:box", 1, "png") {
		t.Error("different parts should give different keys")
	}
	sum, ok := strings.CutPrefix(a, "artifact:box:")
	if !ok || len(sum) != 64 {
		t.Errorf("hashKey = %q, want prefix and 64 hex digits", a)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := ArtifactKeyOpts{Format: "svg", Width: 240, Height: 240, Zoom: 1, Centered: true}

	// Same options produce the same key
	if k.ArtifactKey("box", base) != k.ArtifactKey("box", base) {
		t.Error("ArtifactKey should be deterministic")
	}

	// Every option is part of the key
	variants := []ArtifactKeyOpts{base, base, base, base, base, base}
	variants[0].Format = "png"
	variants[1].Width = 241
	variants[2].Zoom = 2
	variants[3].Rotate = [3]float64{0.1, 0, 0}
	variants[4].Frame = 1
	variants[5].Background = "#fff"
	for i, v := range variants {
		if k.ArtifactKey("box", v) == k.ArtifactKey("box", base) {
			t.Errorf("variant %d should produce a different key", i)
		}
	}

	// Preset is part of the key
	if k.ArtifactKey("box", base) == k.ArtifactKey("tower", base) {
		t.Error("Different presets should produce different keys")
	}
	if !strings.HasPrefix(k.ArtifactKey("box", base), "artifact:box:") {
		t.Errorf("ArtifactKey unexpected: %s", k.ArtifactKey("box", base))
	}

	// GraphKey
	gk1 := k.GraphKey("box", GraphKeyOpts{Format: "svg", Detailed: true})
	gk2 := k.GraphKey("box", GraphKeyOpts{Format: "svg"})
	if gk1 == gk2 {
		t.Error("Different GraphKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	// All keys should be prefixed
	opts := ArtifactKeyOpts{Format: "svg"}
	if got, want := scoped.ArtifactKey("box", opts), "staging:"+inner.ArtifactKey("box", opts); got != want {
		t.Errorf("ScopedKeyer ArtifactKey = %s, want %s", got, want)
	}

	graphKey := scoped.GraphKey("box", GraphKeyOpts{})
	if !strings.HasPrefix(graphKey, "staging:graph:box:") {
		t.Errorf("ScopedKeyer GraphKey should be prefixed: %s", graphKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("box", ArtifactKeyOpts{})
	if want := "prefix:" + NewDefaultKeyer().ArtifactKey("box", ArtifactKeyOpts{}); key != want {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "a", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get(a) = %q, hit %v, err %v", data, hit, err)
	}

	// Expired entries are misses
	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should be a miss")
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("deleted entry should be a miss")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete of a missing key: %v", err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("cache dir removed: %v", err)
	}
}

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantAddr string
		wantDB   int
		wantErr  bool
	}{
		{name: "default port", url: "redis://localhost", wantAddr: "localhost:6379"},
		{name: "with db", url: "redis://cache.internal:6380/2", wantAddr: "cache.internal:6380", wantDB: 2},
		{name: "empty", url: "", wantErr: true},
		{name: "bad scheme", url: "http://localhost", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := redisOptions(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("redisOptions(%q) should fail", tt.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("redisOptions(%q): %v", tt.url, err)
			}
			if opts.Addr != tt.wantAddr || opts.DB != tt.wantDB {
				t.Errorf("redisOptions(%q) = %s db %d, want %s db %d", tt.url, opts.Addr, opts.DB, tt.wantAddr, tt.wantDB)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
	if err := classify(&net.OpError{Op: "dial", Err: errors.New("refused")}); !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("network errors should be retryable: %v", err)
	}
	if err := classify(errors.New("WRONGTYPE")); IsRetryable(err) {
		t.Errorf("server errors should not be retried: %v", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("Retryable(ErrNetwork) = %v, should be retryable and wrap ErrNetwork", err)
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("message = %q", err.Error())
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}

func TestBackoff(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Delay: time.Millisecond}
	errPermanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		failWith  error
		wantErr   error
		wantCalls int
	}{
		{name: "first try", failures: 0, wantCalls: 1},
		{name: "recovers", failures: 2, failWith: Retryable(ErrNetwork), wantCalls: 3},
		{name: "gives up", failures: 5, failWith: Retryable(ErrNetwork), wantErr: ErrNetwork, wantCalls: 3},
		{name: "not retryable", failures: 5, failWith: errPermanent, wantErr: errPermanent, wantCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})
			if tt.wantErr == nil && err != nil {
				t.Errorf("Do: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Do = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultBackoff.Do(ctx, func() error { return Retryable(ErrNetwork) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do = %v, want context.Canceled", err)
	}
}

func TestBackoffZeroAttempts(t *testing.T) {
	calls := 0
	_ = Backoff{}.Do(context.Background(), func() error { calls++; return nil })
	if calls != 1 {
		t.Errorf("calls = %d, want at least one attempt", calls)
	}
}
