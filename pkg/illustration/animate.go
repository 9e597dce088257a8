package illustration

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/zscene/pkg/geom"
	"github.com/matzehuels/zscene/pkg/scene"
)

// DefaultEasePower is the ease curve steepness used when AnimateOptions
// leaves Power unset.
const DefaultEasePower = 3

// Frame describes one step of an animation.
type Frame struct {
	Index int
	Count int
	// Progress runs linearly from 0 towards 1, reaching (Count-1)/Count on
	// the last frame so that looping animations do not repeat a frame.
	Progress float64
	// Eased is Progress mapped through [geom.EaseInOut].
	Eased float64
}

// AnimateOptions configures [Illustration.Animate].
type AnimateOptions struct {
	Frames int
	Power  int
	// Interval paces the loop. Zero renders frames back to back.
	Interval time.Duration
	// Update moves the scene to the state of a frame before it is drawn.
	Update func(Frame)
}

// Animate renders opts.Frames frames to r. For each frame it calls
// opts.Update, updates and renders the illustration, then hands the frame
// to emit, which typically encodes r. It stops at the first error from
// emit or when ctx is done.
func (il *Illustration) Animate(ctx context.Context, opts AnimateOptions, r scene.Renderer, emit func(Frame) error) error {
	if opts.Frames < 1 {
		return fmt.Errorf("animate: frame count must be positive, got %d", opts.Frames)
	}
	power := opts.Power
	if power == 0 {
		power = DefaultEasePower
	}

	var tick <-chan time.Time
	if opts.Interval > 0 {
		t := time.NewTicker(opts.Interval)
		defer t.Stop()
		tick = t.C
	}

	for i := range opts.Frames {
		if i > 0 && tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		progress := float64(i) / float64(opts.Frames)
		f := Frame{
			Index:    i,
			Count:    opts.Frames,
			Progress: progress,
			Eased:    geom.EaseInOut(progress, power),
		}
		if opts.Update != nil {
			opts.Update(f)
		}
		il.UpdateRenderGraph(r, nil)
		if emit != nil {
			if err := emit(f); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}
	}
	return nil
}
