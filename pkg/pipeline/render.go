package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/zscene/pkg/illustration"
	"github.com/matzehuels/zscene/pkg/observability"
	"github.com/matzehuels/zscene/pkg/presets"
	"github.com/matzehuels/zscene/pkg/render"
	"github.com/matzehuels/zscene/pkg/render/nodelink"
	"github.com/matzehuels/zscene/pkg/render/svg"
	"github.com/matzehuels/zscene/pkg/scene"
)

// Render builds the preset frame selected by opts and encodes it in every
// requested format. It does not use a cache; see [Runner.Render].
func Render(ctx context.Context, opts Options) (map[string][]byte, Stats, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, Stats{}, err
	}
	p, err := presets.Lookup(opts.Preset)
	if err != nil {
		return nil, Stats{}, err
	}

	il := newIllustration(p, opts)
	root := p.Build(presets.Params{Rotate: opts.Rotate, Time: opts.Time()})
	il.AddChild(root)

	var stats Stats
	observability.Pipeline().OnUpdateStart(ctx, p.Name)
	start := time.Now()
	il.UpdateGraph()
	stats.UpdateTime = time.Since(start)
	stats.NodeCount = countNodes(il.Anchor)
	observability.Pipeline().OnUpdateComplete(ctx, p.Name, stats.NodeCount, stats.UpdateTime)

	rec := &scene.Recorder{}
	il.RenderGraph(rec, nil)
	artifacts, err := encodeFrame(ctx, il, p, rec, opts.Formats)
	stats.DrawCalls = len(rec.Calls)
	stats.RenderTime = time.Since(start) - stats.UpdateTime
	if err != nil {
		return nil, stats, err
	}
	return artifacts, stats, nil
}

// Animate renders every frame of opts.Frames in order and hands each
// frame's artifacts to fn. opts.Frame is ignored. It stops at the first
// error or when ctx is done.
func Animate(ctx context.Context, opts Options, fn func(frame int, artifacts map[string][]byte) error) error {
	opts.Frame = 0
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	p, err := presets.Lookup(opts.Preset)
	if err != nil {
		return err
	}

	il := newIllustration(p, opts)
	var root *scene.Anchor
	rec := &scene.Recorder{}

	return il.Animate(ctx, illustration.AnimateOptions{
		Frames: opts.Frames,
		Update: func(f illustration.Frame) {
			if root != nil {
				root.Remove()
			}
			root = p.Build(presets.Params{Rotate: opts.Rotate, Time: f.Eased})
			il.AddChild(root)
		},
	}, rec, func(f illustration.Frame) error {
		artifacts, err := encodeFrame(ctx, il, p, rec, opts.Formats)
		if err != nil {
			return err
		}
		opts.Logger.Debug("rendered frame", "preset", p.Name, "frame", f.Index, "draw_calls", len(rec.Calls))
		return fn(f.Index, artifacts)
	})
}

// Graph builds the preset scene and renders a node-link diagram of its
// hierarchy. It does not use a cache; see [Runner.Graph].
func Graph(ctx context.Context, opts GraphOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p, err := presets.Lookup(opts.Preset)
	if err != nil {
		return nil, err
	}
	root := p.Build(presets.Params{Rotate: opts.Rotate})
	root.UpdateGraph()

	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed, Generated: opts.Generated})
	switch opts.Format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	}
	return nil, fmt.Errorf("unsupported graph format: %s", opts.Format)
}

func newIllustration(p *presets.Preset, opts Options) *illustration.Illustration {
	bg := opts.Background
	switch bg {
	case "":
		bg = p.Background
	case BackgroundNone:
		bg = ""
	}
	return illustration.New(illustration.Options{
		Width:      opts.Width,
		Height:     opts.Height,
		Zoom:       opts.Zoom,
		Centered:   opts.Centered,
		Background: bg,
	})
}

// encodeFrame replays the recorded draw calls into a sink per format.
func encodeFrame(ctx context.Context, il *illustration.Illustration, p *presets.Preset, rec *scene.Recorder, formats []string) (map[string][]byte, error) {
	observability.Pipeline().OnRenderStart(ctx, p.Name, formats)
	start := time.Now()
	artifacts, err := encodeFormats(ctx, il, p, rec, formats)
	observability.Pipeline().OnRenderComplete(ctx, p.Name, formats, time.Since(start), err)
	return artifacts, err
}

func encodeFormats(ctx context.Context, il *illustration.Illustration, p *presets.Preset, rec *scene.Recorder, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	var svgData []byte
	svgBytes := func() []byte {
		if svgData == nil {
			s := il.SVG(svg.WithTitle(p.Name))
			replay(rec, s)
			svgData = s.Bytes()
		}
		return svgData
	}

	for _, format := range formats {
		switch format {
		case FormatSVG:
			artifacts[format] = svgBytes()
		case FormatPNG:
			data, err := encodePNG(il, rec)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", format, err)
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := render.ToPDF(ctx, svgBytes())
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", format, err)
			}
			artifacts[format] = data
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}
	}
	return artifacts, nil
}

func encodePNG(il *illustration.Illustration, rec *scene.Recorder) ([]byte, error) {
	c := il.Canvas()
	defer c.Close()
	replay(rec, c)
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// replay clears r and draws the recorded calls in order.
func replay(rec *scene.Recorder, r scene.Renderer) {
	r.Clear()
	for _, call := range rec.Calls {
		r.Draw(call)
	}
}

func countNodes(n scene.Node) int {
	count := 1
	for _, c := range n.Base().Children() {
		count += countNodes(c)
	}
	return count
}
