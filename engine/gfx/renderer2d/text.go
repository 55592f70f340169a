package renderer2d

import (
	"strings"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
)

// GlyphAtlas is a rasterized font uploaded as tex.
type GlyphAtlas struct {
	Atlas *text.Atlas
	Tex   Texture
}

// DrawText draws s with its top-left corner at (x, y). Lines split on '\n'
// and advance by the font's line height. Glyphs missing from the atlas
// advance the pen without drawing.
func (rd *Renderer2D) DrawText(g GlyphAtlas, s string, x, y, scaleX, scaleY float32, color colors.Color, clip Rect) {
	f := g.Atlas.Font
	for i, line := range strings.Split(s, "\n") {
		baseline := y + (f.Ascent+float32(i)*f.LineHeight())*scaleY
		pen := x
		for _, r := range line {
			gly, ok := g.Atlas.Glyphs[r]
			if !ok {
				pen += f.Advance(r) * scaleX
				continue
			}
			if gly.W > 0 && gly.H > 0 {
				q := Rect{
					X: pen + gly.BearingX*scaleX,
					Y: baseline - gly.BearingY*scaleY,
					W: float32(gly.W) * scaleX,
					H: float32(gly.H) * scaleY,
				}
				sub := SubTexture2D{Texture: g.Tex, U0: gly.U0, V0: gly.V0, U1: gly.U1, V1: gly.V1}
				rd.DrawSubTexQuad(q, sub, color, clip)
			}
			pen += gly.Advance * scaleX
		}
	}
}
