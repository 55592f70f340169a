package renderer2d

// SubTexture2D describes a UV sub-rect of a full texture.
type SubTexture2D struct {
	Texture Texture
	U0, V0  float32 // top-left
	U1, V1  float32 // bottom-right
}

// FromPixels builds a subtexture from pixel coordinates within an atlas.
func FromPixels(tex Texture, x, y, w, h, atlasW, atlasH int) SubTexture2D {
	u0 := float32(x) / float32(atlasW)
	v0 := float32(y) / float32(atlasH)
	u1 := float32(x+w) / float32(atlasW)
	v1 := float32(y+h) / float32(atlasH)
	return SubTexture2D{Texture: tex, U0: u0, V0: v0, U1: u1, V1: v1}
}
