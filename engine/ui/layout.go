package ui

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// SetChildDock docks a direct child and re-resolves the docking of every
// docked child.
func (b *Base) SetChildDock(child Widget, d DockStyle) error {
	if child == nil {
		return ErrNilWidget
	}
	if b.indexOf(child) < 0 {
		return ErrNotChild
	}
	child.Node().dock = d
	b.resolveDocks()
	for _, c := range b.children {
		c.Node().UpdatePosition()
	}
	return nil
}

// resize sets new dimensions and lays the children out again: anchored
// children follow the size delta, docked children are re-resolved.
// Absolute positions are left to the caller's UpdatePosition.
func (b *Base) resize(d Vec2) {
	d.X, d.Y = maxf(d.X, 0), maxf(d.Y, 0)
	delta := d.Sub(b.dims)
	b.dims = d
	if delta != (Vec2{}) {
		for _, c := range b.children {
			if cb := c.Node(); cb.dock.State == DockNone {
				cb.applyAnchor(delta)
			}
		}
	}
	b.resolveDocks()
}

// applyAnchor moves or stretches b after its parent grew by delta.
func (b *Base) applyAnchor(delta Vec2) {
	pos, dims := b.relPos, b.dims
	pos.X, dims.X = anchorAxis(b.anchor.Left, b.anchor.Right, pos.X, dims.X, delta.X)
	pos.Y, dims.Y = anchorAxis(b.anchor.Top, b.anchor.Bottom, pos.Y, dims.Y, delta.Y)
	b.relPos = pos
	b.resize(dims)
}

func anchorAxis(near, far bool, pos, size, delta float32) (float32, float32) {
	switch {
	case near && far:
		size += delta
	case far:
		pos += delta
	case !near:
		pos += delta / 2
	}
	return pos, size
}

// resolveDocks carves the parent area edge by edge in child order; Fill
// children share whatever is left.
func (b *Base) resolveDocks() {
	free := Rect{W: b.dims.X, H: b.dims.Y}
	var fills []*Base
	for _, c := range b.children {
		cb := c.Node()
		switch cb.dock.State {
		case DockLeft:
			s := clamp(cb.dock.Size, 0, free.W)
			cb.relPos = Vec2{X: free.X, Y: free.Y}
			cb.resize(Vec2{X: s, Y: free.H})
			free.X += s
			free.W -= s
		case DockRight:
			s := clamp(cb.dock.Size, 0, free.W)
			cb.relPos = Vec2{X: free.X + free.W - s, Y: free.Y}
			cb.resize(Vec2{X: s, Y: free.H})
			free.W -= s
		case DockTop:
			s := clamp(cb.dock.Size, 0, free.H)
			cb.relPos = Vec2{X: free.X, Y: free.Y}
			cb.resize(Vec2{X: free.W, Y: s})
			free.Y += s
			free.H -= s
		case DockBottom:
			s := clamp(cb.dock.Size, 0, free.H)
			cb.relPos = Vec2{X: free.X, Y: free.Y + free.H - s}
			cb.resize(Vec2{X: free.W, Y: s})
			free.H -= s
		case DockFill:
			fills = append(fills, cb)
		}
	}
	for _, cb := range fills {
		cb.relPos = free.Position()
		cb.resize(free.Dimensions())
	}
}
