// Package scene holds the camera that maps screen pixels to clip space.
package scene

// ScreenCamera is an orthographic camera for pixel-space drawing: (0, 0) is
// the top-left corner of the viewport and Y grows downwards, matching
// widget coordinates.
type ScreenCamera struct {
	Width, Height float32
	X, Y          float32 // scroll offset in pixels
	Zoom          float32 // 1 = no zoom
	vp            [16]float32
	dirty         bool
}

func NewScreenCamera(width, height int) *ScreenCamera {
	c := &ScreenCamera{Zoom: 1}
	c.SetViewportPixels(width, height)
	c.Recalculate()
	return c
}

func (c *ScreenCamera) SetViewportPixels(w, h int) {
	c.Width, c.Height = float32(w), float32(h)
	c.dirty = true
}

func (c *ScreenCamera) Scroll(dx, dy float32) { c.X += dx; c.Y += dy; c.dirty = true }

func (c *ScreenCamera) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
	c.dirty = true
}

func (c *ScreenCamera) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *ScreenCamera) Recalculate() {
	z := c.Zoom
	// top and bottom swapped so Y points down.
	proj := ortho(0, c.Width/z, c.Height/z, 0, -1, 1)
	// mul(a, b) is b·a, so this is proj·T.
	c.vp = mul(translate(-c.X, -c.Y, 0), proj)
	c.dirty = false
}

// Project maps a pixel position to normalized device coordinates.
func (c *ScreenCamera) Project(x, y float32) (float32, float32) {
	m := c.VP()
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

// ---- tiny mat helpers (column-major, GLSL-style) ----

func translate(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

func mul(a, b [16]float32) [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i+4*j] = a[0+4*j]*b[i+0] + a[1+4*j]*b[i+4] + a[2+4*j]*b[i+8] + a[3+4*j]*b[i+12]
		}
	}
	return out
}
