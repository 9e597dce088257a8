package scene

import (
	"fmt"

	"github.com/matzehuels/zscene/pkg/geom"
)

// Node is a scene graph item. The interface is sealed: only the types in
// this package implement it, each by embedding [Anchor].
type Node interface {
	// Base returns the embedded anchor carrying the node's transform and
	// graph links.
	Base() *Anchor

	clone() Node
	updateRender()
	updateDepth()
	collect(list *[]Node)
	render(r Renderer)
}

// Anchor is a transform node with no appearance of its own. It positions,
// rotates and scales its children.
type Anchor struct {
	Translate geom.Vector
	Rotate    geom.Vector
	Scale     geom.Vector

	// Order, when set, replaces the node's position in the flattened graph
	// as the secondary sort key between equal depths.
	Order *float64

	self     Node
	parent   *Anchor
	children []Node
	owned    bool

	world        geom.Affine
	renderOrigin geom.Vector
	depth        float64
	order        float64
}

// NewAnchor creates an anchor and attaches it to opts.AddTo when set.
func NewAnchor(opts AnchorOptions) *Anchor {
	a := &Anchor{}
	a.init(a, DefaultAnchorConfig().Apply(opts))
	if opts.AddTo != nil {
		opts.AddTo.Base().AddChild(a)
	}
	return a
}

func (a *Anchor) init(self Node, cfg AnchorConfig) {
	a.self = self
	a.Translate = cfg.Translate
	a.Rotate = cfg.Rotate
	a.Scale = cfg.Scale
	if cfg.Order != nil {
		o := *cfg.Order
		a.Order = &o
	}
	a.world = geom.Identity()
	a.world.Origin = a.Translate
	a.renderOrigin = a.Translate
}

// node returns the outermost value embedding a, so promoted methods can
// hand the right dynamic type to the rest of the graph.
func (a *Anchor) node() Node {
	if a.self != nil {
		return a.self
	}
	return a
}

// Base implements [Node].
func (a *Anchor) Base() *Anchor { return a }

// Parent returns the node a is attached to, or nil.
func (a *Anchor) Parent() Node {
	if a.parent == nil {
		return nil
	}
	return a.parent.node()
}

// Children returns the direct children of a, in insertion order. The slice
// must not be modified.
func (a *Anchor) Children() []Node { return a.children }

// AddChild attaches child to a, detaching it from any previous parent.
func (a *Anchor) AddChild(child Node) {
	c := child.Base()
	if debug {
		for p := a; p != nil; p = p.parent {
			if p == c {
				panic(fmt.Sprintf("scene: adding %T under its own descendant", child))
			}
		}
	}
	if c.parent != nil {
		c.parent.RemoveChild(child)
	}
	c.parent = a
	a.children = append(a.children, c.node())
}

// RemoveChild detaches child from a. It is a no-op when child is not a
// direct child of a.
func (a *Anchor) RemoveChild(child Node) {
	c := child.Base()
	for i, n := range a.children {
		if n.Base() == c {
			a.children = append(a.children[:i], a.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// AddTo attaches a to parent.
func (a *Anchor) AddTo(parent Node) {
	parent.Base().AddChild(a.node())
}

// Remove detaches a from its parent, if any.
func (a *Anchor) Remove() {
	if a.parent != nil {
		a.parent.RemoveChild(a.node())
	}
}

// NormalizeRotate wraps every rotation angle into [0, TAU).
func (a *Anchor) NormalizeRotate() {
	a.Rotate.Mod(geom.TAU)
}

// Generated reports whether a was created by a composite shape as part of
// its own geometry. Generated nodes are rebuilt rather than copied.
func (a *Anchor) Generated() bool { return a.owned }

// World returns the transform computed by the last [Anchor.UpdateGraph].
func (a *Anchor) World() geom.Affine { return a.world }

// RenderOrigin returns the world position of the node origin computed by
// the last update.
func (a *Anchor) RenderOrigin() geom.Vector { return a.renderOrigin }

// RenderDepth returns the primary sort key computed by the last update.
func (a *Anchor) RenderDepth() float64 { return a.depth }

// RenderOrder returns the secondary sort key used by the last render list:
// Order when set, otherwise the node's index in the flattened graph.
func (a *Anchor) RenderOrder() float64 { return a.order }

// Copy returns a new anchor with the attributes of a, overridden by opts.
// The copy has no children and no parent unless opts.AddTo is set.
func (a *Anchor) Copy(opts AnchorOptions) *Anchor {
	c := &Anchor{}
	c.init(c, a.anchorConfig().Apply(opts))
	attach(c, opts.AddTo)
	return c
}

// CopyGraph is [Anchor.Copy] followed by a deep copy of every descendant.
func (a *Anchor) CopyGraph(opts AnchorOptions) *Anchor {
	c := a.Copy(opts)
	copyChildren(a, c)
	return c
}

func (a *Anchor) anchorConfig() AnchorConfig {
	return AnchorConfig{
		Translate: a.Translate,
		Rotate:    a.Rotate,
		Scale:     a.Scale,
		Order:     a.Order,
	}
}

func (a *Anchor) clone() Node { return a.Copy(AnchorOptions{}) }

func (a *Anchor) updateRender() {}

func (a *Anchor) updateDepth() { a.depth = a.renderOrigin.Z }

func (a *Anchor) collect(list *[]Node) {
	for _, c := range a.children {
		c.collect(list)
	}
}

func (a *Anchor) render(Renderer) {}

func attach(n Node, parent Node) {
	if parent != nil {
		parent.Base().AddChild(n)
	}
}

// copyChildren deep-copies the children of src under dst. Children owned by
// a composite are skipped: the composite copy regenerates its own.
func copyChildren(src, dst Node) {
	for _, child := range src.Base().children {
		if child.Base().owned {
			continue
		}
		c := child.clone()
		dst.Base().AddChild(c)
		copyChildren(child, c)
	}
}
