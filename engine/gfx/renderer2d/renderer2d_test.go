package renderer2d_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/text"
)

type batch struct {
	verts    []float32
	inds     []uint32
	textures []renderer2d.Texture
}

type fakeBackend struct{ batches []batch }

func (b *fakeBackend) DrawBatch(verts []float32, inds []uint32, textures []renderer2d.Texture) {
	b.batches = append(b.batches, batch{
		verts:    append([]float32(nil), verts...),
		inds:     append([]uint32(nil), inds...),
		textures: append([]renderer2d.Texture(nil), textures...),
	})
}

const white renderer2d.Texture = 1

// corner returns x, y, u, v of vertex i.
func corner(b batch, i int) [4]float32 {
	v := b.verts[i*renderer2d.VertexStride:]
	return [4]float32{v[0], v[1], v[6], v[7]}
}

func TestDrawQuad(t *testing.T) {
	be := &fakeBackend{}
	rd := renderer2d.New(be, white, 0)
	rd.BeginScene()
	rd.DrawQuad(renderer2d.Rect{X: 10, Y: 20, W: 30, H: 40}, colors.Red)
	rd.DrawQuad(renderer2d.Rect{W: 5, H: 5}, colors.Transparent)
	rd.DrawQuad(renderer2d.Rect{W: 0, H: 5}, colors.Red)
	rd.EndScene()

	if len(be.batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(be.batches))
	}
	b := be.batches[0]
	want := [][4]float32{{10, 20, 0, 0}, {40, 20, 1, 0}, {10, 60, 0, 1}, {40, 60, 1, 1}}
	for i, w := range want {
		if diff := cmp.Diff(w, corner(b, i)); diff != "" {
			t.Errorf("corner %d (-want +got):\n%s", i, diff)
		}
	}
	if diff := cmp.Diff([]uint32{0, 2, 1, 1, 2, 3}, b.inds); diff != "" {
		t.Errorf("indices (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]renderer2d.Texture{white}, b.textures); diff != "" {
		t.Errorf("textures (-want +got):\n%s", diff)
	}
	stats := rd.Stats()
	if stats.QuadCount != 1 || stats.DrawCalls != 1 || stats.TotalVertexCount() != 4 || stats.TotalIndexCount() != 6 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestClippedSubTexture(t *testing.T) {
	be := &fakeBackend{}
	rd := renderer2d.New(be, white, 0)
	sub := renderer2d.FromPixels(7, 0, 0, 16, 16, 32, 32)

	rd.BeginScene()
	rd.DrawSubTexQuad(renderer2d.Rect{W: 20, H: 20}, sub, colors.White, renderer2d.Rect{X: 10, Y: 0, W: 100, H: 100})
	rd.DrawSubTexQuad(renderer2d.Rect{W: 20, H: 20}, sub, colors.White, renderer2d.Rect{X: 50, Y: 50, W: 10, H: 10})
	rd.EndScene()

	b := be.batches[0]
	if len(b.inds) != 6 {
		t.Fatalf("got %d indices, want one quad", len(b.inds))
	}
	if diff := cmp.Diff([4]float32{10, 0, 0.25, 0}, corner(b, 0)); diff != "" {
		t.Errorf("top-left (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([4]float32{20, 20, 0.5, 0.5}, corner(b, 3)); diff != "" {
		t.Errorf("bottom-right (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]renderer2d.Texture{white, 7}, b.textures); diff != "" {
		t.Errorf("textures (-want +got):\n%s", diff)
	}
}

func TestFlushOnCapacity(t *testing.T) {
	be := &fakeBackend{}
	rd := renderer2d.New(be, white, 2)
	rd.BeginScene()
	for i := 0; i < 5; i++ {
		rd.DrawQuad(renderer2d.Rect{W: 1, H: 1}, colors.White)
	}
	rd.EndScene()
	if got := rd.Stats().DrawCalls; got != 3 {
		t.Errorf("DrawCalls = %d, want 3", got)
	}
	if got := len(be.batches[2].inds); got != 6 {
		t.Errorf("last batch has %d indices, want 6", got)
	}
}

func TestFlushOnTextureSlots(t *testing.T) {
	be := &fakeBackend{}
	rd := renderer2d.New(be, white, 0)
	everything := renderer2d.Rect{W: 100, H: 100}
	rd.BeginScene()
	for tex := renderer2d.Texture(2); tex < renderer2d.MaxTexSlots+3; tex++ {
		sub := renderer2d.SubTexture2D{Texture: tex, U1: 1, V1: 1}
		rd.DrawSubTexQuad(renderer2d.Rect{W: 1, H: 1}, sub, colors.White, everything)
	}
	rd.EndScene()
	if len(be.batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(be.batches))
	}
	if got := len(be.batches[0].textures); got != renderer2d.MaxTexSlots {
		t.Errorf("first batch binds %d textures", got)
	}
	if be.batches[1].textures[0] != white {
		t.Error("white texture left slot 0 after a flush")
	}
}

func TestDrawText(t *testing.T) {
	f := text.Default()
	atlas, err := text.BuildAtlas(f, 32, 126)
	if err != nil {
		t.Fatal(err)
	}
	be := &fakeBackend{}
	rd := renderer2d.New(be, white, 0)
	g := renderer2d.GlyphAtlas{Atlas: atlas, Tex: 9}

	rd.BeginScene()
	rd.DrawText(g, "ab\ncd", 0, 0, 1, 1, colors.White, renderer2d.Rect{W: 1000, H: 1000})
	rd.EndScene()
	if got := rd.Stats().QuadCount; got != 4 {
		t.Fatalf("drew %d glyphs, want 4", got)
	}

	rd.BeginScene()
	rd.DrawText(g, "abc", 0, 0, 1, 1, colors.White, renderer2d.Rect{W: 8, H: 100})
	rd.EndScene()
	if got := rd.Stats().QuadCount; got != 2 {
		t.Errorf("clipped text drew %d glyphs, want 2", got)
	}
}

func TestRectIntersect(t *testing.T) {
	a := renderer2d.Rect{X: 0, Y: 0, W: 10, H: 10}
	if diff := cmp.Diff(renderer2d.Rect{X: 5, Y: 5, W: 5, H: 5}, a.Intersect(renderer2d.Rect{X: 5, Y: 5, W: 10, H: 10})); diff != "" {
		t.Errorf("overlap (-want +got):\n%s", diff)
	}
	if !a.Intersect(renderer2d.Rect{X: 20, W: 1, H: 1}).Empty() {
		t.Error("disjoint rects intersect")
	}
}
