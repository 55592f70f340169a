// Package renderer2d batches screen-space quads for a GPU backend. It owns
// vertex generation, texture slot assignment and clipping; the backend only
// uploads and draws finished batches.
package renderer2d

import "github.com/hubastard/canopy/engine/colors"

// Max textures per batch (common GL limit is 16)
const MaxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const (
	VertexStride = 9
	vertsPerQuad = 4
	indsPerQuad  = 6
)

// Texture is a backend texture handle. Zero is never a valid texture.
type Texture uint32

// Backend draws a finished batch. textures[i] is bound to sampler slot i.
type Backend interface {
	DrawBatch(verts []float32, inds []uint32, textures []Texture)
}

// Rect is a screen-space rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect returns the overlap of r and o, empty when they are disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

type Renderer2D struct {
	backend Backend
	white   Texture // slot 0
	texArr  [MaxTexSlots]Texture
	texCnt  int

	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	stats Statistics
}

// New creates a renderer flushing into b. white must be a 1x1 opaque white
// texture; untextured quads sample it.
func New(b Backend, white Texture, maxQuads int) *Renderer2D {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	rd := &Renderer2D{
		backend:  b,
		white:    white,
		maxQuads: maxQuads,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*VertexStride),
		inds:     make([]uint32, 0, maxQuads*indsPerQuad),
	}
	rd.resetBatch()
	return rd
}

func (rd *Renderer2D) BeginScene() {
	rd.stats = Statistics{}
	rd.resetBatch()
}

func (rd *Renderer2D) EndScene() { rd.flush() }

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// DrawQuad draws a solid rectangle.
func (rd *Renderer2D) DrawQuad(r Rect, color colors.Color) {
	if r.Empty() || !color.Visible() {
		return
	}
	rd.ensureQuadCapacity()
	rd.quad(r, color, rd.texSlot(rd.white), 0, 0, 1, 1)
}

// DrawSubTexQuad draws r textured with sub, cut down to clip. The UVs are
// cut by the same fraction as the geometry so the texture does not stretch.
func (rd *Renderer2D) DrawSubTexQuad(r Rect, sub SubTexture2D, tint colors.Color, clip Rect) {
	c := r.Intersect(clip)
	if c.Empty() || !tint.Visible() {
		return
	}
	du, dv := sub.U1-sub.U0, sub.V1-sub.V0
	u0 := sub.U0 + du*(c.X-r.X)/r.W
	v0 := sub.V0 + dv*(c.Y-r.Y)/r.H
	u1 := sub.U0 + du*(c.X+c.W-r.X)/r.W
	v1 := sub.V0 + dv*(c.Y+c.H-r.Y)/r.H

	rd.ensureQuadCapacity()
	rd.quad(c, tint, rd.texSlot(sub.Texture), u0, v0, u1, v1)
}

// --- internals ---

func (rd *Renderer2D) texSlot(t Texture) float32 {
	for i := 0; i < rd.texCnt; i++ {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	if rd.texCnt >= MaxTexSlots {
		rd.flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	if rd.texCnt > rd.stats.TextureCount {
		rd.stats.TextureCount = rd.texCnt
	}
	return float32(rd.texCnt - 1)
}

func (rd *Renderer2D) quad(r Rect, color colors.Color, texIndex float32, u0, v0, u1, v1 float32) {
	// corners TL, TR, BL, BR; positive Y goes down.
	corners := [4][4]float32{
		{r.X, r.Y, u0, v0},
		{r.X + r.W, r.Y, u1, v0},
		{r.X, r.Y + r.H, u0, v1},
		{r.X + r.W, r.Y + r.H, u1, v1},
	}
	startVertex := uint32(len(rd.verts) / VertexStride)
	for _, p := range corners {
		rd.verts = append(rd.verts,
			p[0], p[1],
			color[0], color[1], color[2], color[3],
			p[2], p[3],
			texIndex,
		)
	}
	rd.inds = append(rd.inds,
		startVertex+0, startVertex+2, startVertex+1,
		startVertex+1, startVertex+2, startVertex+3,
	)
	rd.quadCount++
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if rd.quadCount == 0 {
		return
	}
	rd.backend.DrawBatch(rd.verts, rd.inds, rd.texArr[:rd.texCnt])
	rd.stats.DrawCalls++
	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	rd.quadCount = 0
	rd.texArr = [MaxTexSlots]Texture{}
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}

func (rd *Renderer2D) ensureQuadCapacity() {
	if rd.quadCount >= rd.maxQuads {
		rd.flush()
	}
}
