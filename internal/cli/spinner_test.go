package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testSpinner(ctx context.Context, msg string) (*Spinner, *syncBuffer) {
	out := &syncBuffer{}
	s := newSpinner(ctx, msg)
	s.out = out
	return s, out
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	s, out := testSpinner(context.Background(), "Rendering box...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Rendering box...") {
		t.Errorf("spinner output %q should contain the message", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner should end by blanking the line, got %q", got)
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	s, out := testSpinner(context.Background(), "Animating orbit (frame 1/36)...")
	s.Start()
	s.SetMessage("Animating orbit (frame 2/36)...")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "frame 2/36") {
		t.Errorf("spinner output %q should show the new message", out.String())
	}
}

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			s, _ := testSpinner(ctx, "Waiting...")
			s.Start()
			if tt.name == "cancel" {
				cancel()
			}
			time.Sleep(100 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("spinner should report cancellation")
			}
			s.Stop()
			cancel()
		})
	}
}

func TestSpinnerStop(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		s, _ := testSpinner(context.Background(), "Stopping...")
		s.Start()
		s.Stop()
		s.Stop()
	})
	t.Run("before start", func(t *testing.T) {
		s, out := testSpinner(context.Background(), "Never started")
		s.Stop()
		if out.String() != "" {
			t.Errorf("unstarted spinner wrote %q", out.String())
		}
	})
	t.Run("with status", func(t *testing.T) {
		s, _ := testSpinner(context.Background(), "Rendering...")
		s.Start()
		s.StopWithSuccess("Rendered")
		s2, _ := testSpinner(context.Background(), "Rendering...")
		s2.Start()
		s2.StopWithError("Render failed")
	})
}
