package scene

// GroupOptions configures a new group.
type GroupOptions struct {
	AnchorOptions
	Visible *bool
	// UpdateSort sorts the group's own descendants by depth when drawing.
	// Without it they are drawn in graph order.
	UpdateSort *bool
}

// Group draws its descendants as one unit in the parent's sort: the whole
// group is placed by the mean depth of its contents.
type Group struct {
	Anchor
	Visible    bool
	UpdateSort bool
}

// NewGroup creates a group and attaches it to opts.AddTo when set.
func NewGroup(opts GroupOptions) *Group {
	g := &Group{}
	g.initGroup(g, DefaultAnchorConfig().Apply(opts.AnchorOptions), opts)
	attach(g, opts.AddTo)
	return g
}

func (g *Group) initGroup(self Node, cfg AnchorConfig, opts GroupOptions) {
	g.Anchor.init(self, cfg)
	g.Visible = true
	if opts.Visible != nil {
		g.Visible = *opts.Visible
	}
	if opts.UpdateSort != nil {
		g.UpdateSort = *opts.UpdateSort
	}
}

// Copy returns a new group with the attributes of g, overridden by opts.
func (g *Group) Copy(opts GroupOptions) *Group {
	if opts.Visible == nil {
		opts.Visible = Bool(g.Visible)
	}
	if opts.UpdateSort == nil {
		opts.UpdateSort = Bool(g.UpdateSort)
	}
	c := &Group{}
	c.initGroup(c, g.anchorConfig().Apply(opts.AnchorOptions), opts)
	attach(c, opts.AddTo)
	return c
}

// CopyGraph is [Group.Copy] followed by a deep copy of every descendant.
func (g *Group) CopyGraph(opts GroupOptions) *Group {
	c := g.Copy(opts)
	copyChildren(g, c)
	return c
}

func (g *Group) clone() Node { return g.Copy(GroupOptions{}) }

// contents returns the drawable descendants of g.
func (g *Group) contents() []Node {
	var list []Node
	g.Anchor.collect(&list)
	return list
}

func (g *Group) updateDepth() {
	list := g.contents()
	if len(list) == 0 {
		g.depth = g.renderOrigin.Z
		return
	}
	var sum float64
	for _, n := range list {
		sum += n.Base().depth
	}
	g.depth = sum / float64(len(list))
}

func (g *Group) collect(list *[]Node) {
	*list = append(*list, g.node())
}

func (g *Group) render(r Renderer) {
	if !g.Visible {
		return
	}
	list := g.contents()
	if g.UpdateSort {
		sortNodes(list)
	}
	for _, n := range list {
		n.render(r)
	}
}
