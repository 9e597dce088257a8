// Package server implements the zscene HTTP preview server.
//
// Routes:
//
//	GET /healthz                     liveness and build version
//	GET /presets                     preset catalogue as JSON
//	GET /presets/{name}.{svg|png}    one rendered frame
//	GET /presets/{name}/graph        node-link diagram (?format=dot|svg)
//
// Frame requests accept width, height, zoom, background, centered, rx, ry,
// rz (radians), frame and frames query parameters. Renders go through a
// [pipeline.Runner], so repeated requests are served from its cache.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/zscene/pkg/buildinfo"
	"github.com/matzehuels/zscene/pkg/config"
	"github.com/matzehuels/zscene/pkg/errors"
	"github.com/matzehuels/zscene/pkg/pipeline"
	"github.com/matzehuels/zscene/pkg/presets"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

// Server serves rendered presets over HTTP.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	render config.RenderConfig
}

// New returns a server rendering through runner. Render defaults come from
// cfg when it is not nil.
func New(runner *pipeline.Runner, logger *log.Logger, cfg *config.Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	if cfg != nil {
		s.render = cfg.Render
	}
	return s
}

// Handler returns the routed handler with request IDs, access logging and
// panic recovery installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/presets", func(r chi.Router) {
		r.Get("/", s.handlePresets)
		r.Get("/{name}/graph", s.handleGraph)
		r.Get("/{file}", s.handleFrame)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, presets.Describe())
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	name, format := strings.TrimSuffix(file, ext), strings.TrimPrefix(ext, ".")
	if format == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "missing format extension in %q", file))
		return
	}

	opts, err := frameOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Preset = name
	opts.Formats = []string{format}
	opts.Logger = s.logger
	cfg := config.Config{Render: s.render}
	cfg.ApplyRender(&opts)

	res, err := s.runner.Render(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, format, res.Artifacts[format], res.CacheHit)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.GraphOptions{
		Preset:    chi.URLParam(r, "name"),
		Format:    q.Get("format"),
		Detailed:  q.Get("detailed") == "true",
		Generated: q.Get("generated") == "true",
	}
	opts.SetDefaults()
	var err error
	if opts.Rotate, err = rotation(q.Get("rx"), q.Get("ry"), q.Get("rz")); err != nil {
		s.writeError(w, r, err)
		return
	}
	data, hit, err := s.runner.Graph(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, opts.Format, data, hit)
}

func writeArtifact(w http.ResponseWriter, format string, data []byte, hit bool) {
	if ct, ok := contentTypes[format]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{
		Error:     msg,
		Code:      string(errors.GetCode(err)),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
