package text

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Glyph locates one rune inside an Atlas.
type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // distance from baseline to glyph top
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Atlas is an alpha-coverage bitmap holding a rasterized rune range.
type Atlas struct {
	Font   *Font
	Image  *image.Alpha
	Glyphs map[rune]Glyph
}

const (
	atlasPadding = 2
	atlasMaxSize = 4096
)

// BuildAtlas rasterizes the runes first..last of f into a square atlas,
// growing it until every glyph fits.
func BuildAtlas(f *Font, first, last rune) (*Atlas, error) {
	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	measure := make([]meas, 0, last-first+1)
	for r := first; r <= last; r++ {
		br, adv, ok := f.Face.GlyphBounds(r)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r:   r,
			w:   (br.Max.X - br.Min.X).Ceil(),
			h:   (br.Max.Y - br.Min.Y).Ceil(),
			adv: fixedToFloat(adv),
			bx:  float32(br.Min.X.Floor()),
			by:  float32(-br.Min.Y.Floor()),
		})
	}

	// Simple shelf packer; start small and double.
	size := 128
	var pos map[rune]image.Point
	for {
		x, y, rowH := atlasPadding, atlasPadding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))
		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if x+g.w+atlasPadding > size {
				x = atlasPadding
				y += rowH + atlasPadding
				rowH = 0
			}
			if g.w+2*atlasPadding > size || y+g.h+atlasPadding > size {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + atlasPadding
			if g.h > rowH {
				rowH = g.h
			}
		}
		if fits {
			break
		}
		size *= 2
		if size > atlasMaxSize {
			return nil, fmt.Errorf("text: atlas for %s exceeds %d pixels", f.Name, atlasMaxSize)
		}
	}

	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	drawer := &font.Drawer{Dst: dst, Src: image.Opaque, Face: f.Face}
	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		glyph := Glyph{Rune: g.r, Advance: g.adv, BearingX: g.bx, BearingY: g.by, W: g.w, H: g.h}
		if p, ok := pos[g.r]; ok {
			// The drawer's dot sits on the baseline.
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			glyph.U0 = float32(p.X) / float32(size)
			glyph.V0 = float32(p.Y) / float32(size)
			glyph.U1 = float32(p.X+g.w) / float32(size)
			glyph.V1 = float32(p.Y+g.h) / float32(size)
		}
		glyphs[g.r] = glyph
	}
	return &Atlas{Font: f, Image: dst, Glyphs: glyphs}, nil
}

// Size returns the atlas edge length in pixels.
func (a *Atlas) Size() int { return a.Image.Bounds().Dx() }
