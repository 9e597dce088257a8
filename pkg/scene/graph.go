package scene

import (
	"slices"

	"github.com/matzehuels/zscene/pkg/geom"
)

// UpdateGraph recomputes world transforms, projected paths and sort depths
// for a and all of its descendants. a is treated as the root: transforms of
// its own ancestors are ignored.
func (a *Anchor) UpdateGraph() {
	root := a.node()
	updateTransforms(root, geom.Identity())
	updateDepths(root)
}

func updateTransforms(n Node, parent geom.Affine) {
	b := n.Base()
	b.world = parent.Then(geom.Local(b.Translate, b.Rotate, b.Scale))
	b.renderOrigin = b.world.Origin
	n.updateRender()
	for _, c := range b.children {
		updateTransforms(c, b.world)
	}
}

// updateDepths runs children first: groups and solids derive their depth
// from descendants.
func updateDepths(n Node) {
	for _, c := range n.Base().children {
		updateDepths(c)
	}
	n.updateDepth()
}

// RenderList returns the drawable nodes under a in the order they are
// painted: ascending depth, then ascending render order, then position in
// the flattened graph.
func (a *Anchor) RenderList() []Node {
	var list []Node
	a.node().collect(&list)
	sortNodes(list)
	return list
}

// RenderGraph clears r and paints the subtree rooted at a back to front,
// using the data of the last [Anchor.UpdateGraph].
func (a *Anchor) RenderGraph(r Renderer) {
	r.Clear()
	for _, n := range a.RenderList() {
		n.render(r)
	}
}

// sortNodes assigns render orders from the flattened positions and sorts
// list in place. The sort is stable, so equal keys keep graph order.
func sortNodes(list []Node) {
	for i, n := range list {
		b := n.Base()
		if b.Order != nil {
			b.order = *b.Order
		} else {
			b.order = float64(i)
		}
	}
	slices.SortStableFunc(list, func(x, y Node) int {
		bx, by := x.Base(), y.Base()
		switch {
		case bx.depth < by.depth:
			return -1
		case bx.depth > by.depth:
			return 1
		case bx.order < by.order:
			return -1
		case bx.order > by.order:
			return 1
		}
		return 0
	})
}
