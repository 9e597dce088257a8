// Package presets provides named, ready-made scenes.
//
// Each [Preset] builds a fresh scene graph from [Params]: the viewer
// rotation and an animation time. Builders are pure: the same params always
// produce the same graph, which lets the pipeline cache rendered artifacts
// by preset name and params alone.
//
// Scenes are sized for the default 240x240 surface at zoom 1.
//
//	p, err := presets.Lookup("box")
//	root := p.Build(presets.Params{Rotate: geom.Vector{X: -0.3}})
//	root.UpdateGraph()
//	root.RenderGraph(r)
package presets

import (
	"slices"
	"strings"

	"github.com/matzehuels/zscene/pkg/errors"
	"github.com/matzehuels/zscene/pkg/geom"
	"github.com/matzehuels/zscene/pkg/scene"
)

// Palette used across presets.
const (
	Eggplant = "#636"
	Garnet   = "#C25"
	Orange   = "#E62"
	Gold     = "#EA0"
	Yellow   = "#ED0"
	Cream    = "#FDB"
	Ink      = "#333"
)

// Params controls the state a preset is built in.
type Params struct {
	// Rotate is applied to the scene root.
	Rotate geom.Vector
	// Time is the animation progress in [0, 1). Presets loop over it.
	Time float64
}

// Preset is a named scene builder.
type Preset struct {
	Name        string
	Description string
	// Background is the suggested surface color.
	Background string
	Build      func(Params) *scene.Anchor
}

// Info is the public description of a preset.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Background  string `json:"background"`
}

// All is the canonical list of presets, in display order.
var All = []*Preset{
	{
		Name:        "box",
		Description: "A cube with a different color on every face, spinning once per loop",
		Background:  Cream,
		Build:       buildBox,
	},
	{
		Name:        "shapes",
		Description: "The flat shapes: rect, rounded rect, ellipse, polygon, line and dot",
		Background:  "white",
		Build:       buildShapes,
	},
	{
		Name:        "solids",
		Description: "Hemisphere, cone, cylinder and box around a common center",
		Background:  Cream,
		Build:       buildSolids,
	},
	{
		Name:        "orbit",
		Description: "Three moons orbiting a planet on tilted rings",
		Background:  Eggplant,
		Build:       buildOrbit,
	},
	{
		Name:        "tower",
		Description: "A stack of blocks of decreasing width, each layer turned against the last",
		Background:  "white",
		Build:       buildTower,
	},
}

// Find returns the preset with the given name, or nil if not found.
func Find(name string) *Preset {
	for _, p := range All {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Lookup returns the preset with the given name. The name is normalized to
// lowercase first.
func Lookup(name string) (*Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if err := errors.ValidatePresetName(name); err != nil {
		return nil, err
	}
	if p := Find(name); p != nil {
		return p, nil
	}
	return nil, errors.New(errors.ErrCodePresetNotFound, "unknown preset %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the names of all presets, sorted.
func Names() []string {
	names := make([]string, len(All))
	for i, p := range All {
		names[i] = p.Name
	}
	slices.Sort(names)
	return names
}

// Describe returns the public description of every preset, in display
// order.
func Describe() []Info {
	infos := make([]Info, len(All))
	for i, p := range All {
		infos[i] = Info{Name: p.Name, Description: p.Description, Background: p.Background}
	}
	return infos
}

// newRoot returns the scene root for p, turned by a full revolution about
// y over the animation loop when spin is set.
func newRoot(p Params, spin bool) *scene.Anchor {
	rotate := p.Rotate
	if spin {
		rotate.Y += p.Time * geom.TAU
	}
	return scene.NewAnchor(scene.AnchorOptions{Rotate: &rotate})
}

func at(parent scene.Node, x, y, z float64) scene.AnchorOptions {
	return scene.AnchorOptions{AddTo: parent, Translate: scene.V(x, y, z)}
}
