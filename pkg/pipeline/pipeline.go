// Package pipeline provides the preset rendering pipeline for zscene.
//
// This package implements the complete build → update → render pipeline
// used by the CLI and the preview server. By centralizing this logic, both
// entry points validate, default, cache and encode the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Construct the preset scene for the requested rotation and frame
//  2. Update: Compute world transforms, projections and sort depths
//  3. Render: Paint the sorted draw calls into every requested format (SVG, PNG, PDF)
//
// The draw calls of a frame are recorded once and replayed into each
// sink, so all formats of one frame show exactly the same picture.
//
// # Usage
//
// Create a Runner and render a preset:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Preset:  "box",
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Render(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Render every frame of an animation:
//
//	err := runner.Animate(ctx, opts, func(frame int, artifacts map[string][]byte) error {
//	    return os.WriteFile(fmt.Sprintf("frame%03d.svg", frame), artifacts["svg"], 0o644)
//	})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/zscene/pkg/cache"
	"github.com/matzehuels/zscene/pkg/errors"
	"github.com/matzehuels/zscene/pkg/geom"
	"github.com/matzehuels/zscene/pkg/illustration"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultPreset is rendered when no preset is named.
	DefaultPreset = "box"

	// DefaultWidth is the default surface width in pixels.
	DefaultWidth = 240

	// DefaultHeight is the default surface height in pixels.
	DefaultHeight = 240

	// DefaultZoom is the default view-space to pixel scale.
	DefaultZoom = 1.0

	// DefaultFrames is the default animation length.
	DefaultFrames = 1

	// DefaultAnimationFrames is the frame count the animate command uses
	// when none is given.
	DefaultAnimationFrames = 36
)

// BackgroundNone disables the preset background.
const BackgroundNone = "none"

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported scene output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidGraphFormats is the set of supported node-link diagram formats.
var ValidGraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for rendering a preset.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Scene options
	Preset string      `json:"preset"`
	Rotate geom.Vector `json:"rotate"`
	Frame  int         `json:"frame,omitempty"`
	Frames int         `json:"frames,omitempty"`

	// Surface options
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Zoom     float64 `json:"zoom,omitempty"`
	Centered *bool   `json:"centered,omitempty"`
	// Background overrides the preset background. "none" renders a
	// transparent surface.
	Background string `json:"background,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// GraphOptions configures a node-link diagram of a preset's scene graph.
type GraphOptions struct {
	Preset    string      `json:"preset"`
	Rotate    geom.Vector `json:"rotate"`
	Format    string      `json:"format,omitempty"`
	Detailed  bool        `json:"detailed,omitempty"`
	Generated bool        `json:"generated,omitempty"`
	Refresh   bool        `json:"refresh,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	DrawCalls  int
	UpdateTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGraphFormat checks that a node-link diagram format is valid.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid graph format: %q (must be one of: dot, svg, pdf)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	if o.Frames == 0 {
		o.Frames = DefaultFrames
	}
	if o.Centered == nil {
		centered := true
		o.Centered = &centered
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidatePresetName(o.Preset); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateZoom(o.Zoom); err != nil {
		return err
	}
	return errors.ValidateFrames(o.Frame, o.Frames)
}

// Time returns the animation time of the selected frame: its linear
// progress through the loop, eased the way [illustration.Illustration.Animate]
// eases it.
func (o *Options) Time() float64 {
	return FrameTime(o.Frame, o.Frames)
}

// FrameTime returns the eased animation time of frame out of frames.
func FrameTime(frame, frames int) float64 {
	if frames < 1 {
		return 0
	}
	return geom.EaseInOut(float64(frame)/float64(frames), illustration.DefaultEasePower)
}

// ArtifactKeyOpts returns cache key options for one artifact format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	centered := o.Centered == nil || *o.Centered
	return cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		Zoom:       o.Zoom,
		Centered:   centered,
		Background: o.Background,
		Rotate:     [3]float64{o.Rotate.X, o.Rotate.Y, o.Rotate.Z},
		Frame:      o.Frame,
		Frames:     o.Frames,
	}
}

// SetDefaults sets default values for a node-link diagram.
func (o *GraphOptions) SetDefaults() {
	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if o.Format == "" {
		o.Format = FormatDOT
	}
}

// Validate validates and sets defaults for a node-link diagram.
func (o *GraphOptions) Validate() error {
	o.SetDefaults()
	if err := errors.ValidatePresetName(o.Preset); err != nil {
		return err
	}
	return ValidateGraphFormat(o.Format)
}

// KeyOpts returns cache key options for the diagram.
func (o *GraphOptions) KeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Format:    o.Format,
		Detailed:  o.Detailed,
		Generated: o.Generated,
		Rotate:    [3]float64{o.Rotate.X, o.Rotate.Y, o.Rotate.Z},
	}
}
