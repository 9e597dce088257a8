package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, and failed
// renders and server errors at warn level. It implements all three hook
// interfaces; [UseLogger] registers it for each.
type LogHooks struct {
	Logger *log.Logger
}

// UseLogger registers LogHooks for l as the pipeline, cache and HTTP hooks.
func UseLogger(l *log.Logger) {
	h := LogHooks{Logger: l}
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h LogHooks) OnUpdateStart(_ context.Context, preset string) {
	h.Logger.Debug("update start", "preset", preset)
}

func (h LogHooks) OnUpdateComplete(_ context.Context, preset string, nodeCount int, d time.Duration) {
	h.Logger.Debug("update done", "preset", preset, "nodes", nodeCount, "duration", d)
}

func (h LogHooks) OnRenderStart(_ context.Context, preset string, formats []string) {
	h.Logger.Debug("render start", "preset", preset, "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, preset string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "preset", preset, "formats", formats, "err", err)
		return
	}
	h.Logger.Debug("render done", "preset", preset, "formats", formats, "duration", d)
}

func (h LogHooks) OnCacheHit(_ context.Context, kind string) {
	h.Logger.Debug("cache hit", "kind", kind)
}

func (h LogHooks) OnCacheMiss(_ context.Context, kind string) {
	h.Logger.Debug("cache miss", "kind", kind)
}

func (h LogHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.Logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request start", "method", method, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.Logger.Warn("request failed", "method", method, "path", path, "status", status, "duration", d)
	}
}
