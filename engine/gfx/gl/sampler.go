package glbackend

import "github.com/go-gl/gl/v3.3-core/gl"

// SamplerState is a GL sampler object: filtering and wrapping applied to
// whatever texture is bound on its unit.
type SamplerState struct {
	MinFilter int32
	MagFilter int32
	WrapS     int32
	WrapT     int32
	WrapR     int32
	id        uint32
}

func NewSamplerState(minFilter, magFilter, wrap int32) *SamplerState {
	return &SamplerState{MinFilter: minFilter, MagFilter: magFilter, WrapS: wrap, WrapT: wrap, WrapR: wrap}
}

// Predefined states. Init them once a context is current.
var (
	PointWrap         = NewSamplerState(gl.NEAREST, gl.NEAREST, gl.REPEAT)
	PointClamp        = NewSamplerState(gl.NEAREST, gl.NEAREST, gl.CLAMP_TO_EDGE)
	LinearWrap        = NewSamplerState(gl.LINEAR, gl.LINEAR, gl.REPEAT)
	LinearClamp       = NewSamplerState(gl.LINEAR, gl.LINEAR, gl.CLAMP_TO_EDGE)
	PointWrapMipmap   = NewSamplerState(gl.NEAREST_MIPMAP_NEAREST, gl.NEAREST, gl.REPEAT)
	PointClampMipmap  = NewSamplerState(gl.NEAREST_MIPMAP_NEAREST, gl.NEAREST, gl.CLAMP_TO_EDGE)
	LinearWrapMipmap  = NewSamplerState(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR, gl.REPEAT)
	LinearClampMipmap = NewSamplerState(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR, gl.CLAMP_TO_EDGE)
)

func predefined() []*SamplerState {
	return []*SamplerState{
		PointWrap, PointClamp, LinearWrap, LinearClamp,
		PointWrapMipmap, PointClampMipmap, LinearWrapMipmap, LinearClampMipmap,
	}
}

// InitPredefined creates the GL objects of the predefined states.
func InitPredefined() {
	for _, s := range predefined() {
		s.Init()
	}
}

// DisposePredefined deletes the GL objects of the predefined states.
func DisposePredefined() {
	for _, s := range predefined() {
		s.Dispose()
	}
}

// Init creates the sampler object. Calling it again is a no-op.
func (s *SamplerState) Init() {
	if s.id != 0 {
		return
	}
	gl.GenSamplers(1, &s.id)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MIN_FILTER, s.MinFilter)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MAG_FILTER, s.MagFilter)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_S, s.WrapS)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_T, s.WrapT)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_R, s.WrapR)
}

// Set writes the state into the parameters of the texture bound to target.
func (s *SamplerState) Set(target uint32) {
	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, s.MagFilter)
	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, s.MinFilter)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_S, s.WrapS)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_T, s.WrapT)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_R, s.WrapR)
}

// Bind attaches the sampler object to a texture unit.
func (s *SamplerState) Bind(unit uint32) { gl.BindSampler(unit, s.id) }

func (s *SamplerState) Dispose() {
	if s.id != 0 {
		gl.DeleteSamplers(1, &s.id)
		s.id = 0
	}
}
