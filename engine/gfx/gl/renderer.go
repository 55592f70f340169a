// Package glbackend draws widget drawables with OpenGL 3.3.
package glbackend

import (
	"embed"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/canopy/engine/assets"
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/gfx/renderer2d"
	"github.com/hubastard/canopy/engine/scene"
	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

//go:embed shaders
var shaderFS embed.FS

var logger = log.New(os.Stderr, "[gl] ", log.LstdFlags)

// Printable ASCII goes into every glyph atlas.
const (
	firstRune = ' '
	lastRune  = '~'
)

var (
	_ core.Renderer      = (*RendererGL)(nil)
	_ ui.Canvas          = (*RendererGL)(nil)
	_ renderer2d.Backend = (*RendererGL)(nil)
)

// RendererGL is the canvas widget drawables paint on. Quads are batched by
// renderer2d and flushed here.
type RendererGL struct {
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	uVP     int32

	white    uint32
	textures []uint32
	atlases  map[*text.Font]renderer2d.GlyphAtlas

	batch  *renderer2d.Renderer2D
	camera *scene.ScreenCamera
	w, h   int
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	w, h := win.FramebufferSize()
	r := &RendererGL{atlases: map[*text.Font]renderer2d.GlyphAtlas{}, camera: scene.NewScreenCamera(w, h)}
	if err := r.Init(); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	vs, err := assets.LoadShader(shaderFS, "shaders/canvas.vert")
	if err != nil {
		return err
	}
	fs, err := assets.LoadShader(shaderFS, "shaders/canvas.frag")
	if err != nil {
		return err
	}
	r.program, err = makeProgram(vs, fs)
	if err != nil {
		return err
	}
	r.uVP = gl.GetUniformLocation(r.program, gl.Str("uVP\x00"))
	gl.UseProgram(r.program)
	for i := int32(0); i < renderer2d.MaxTexSlots; i++ {
		loc := gl.GetUniformLocation(r.program, gl.Str(fmt.Sprintf("uTex[%d]\x00", i)))
		gl.Uniform1i(loc, i)
	}
	gl.UseProgram(0)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	const stride = renderer2d.VertexStride * 4 // bytes
	attribs := []struct {
		size   int32
		offset int
	}{{2, 0}, {4, 2 * 4}, {2, 6 * 4}, {1, 8 * 4}}
	for i, a := range attribs {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), a.size, gl.FLOAT, false, stride, gl.PtrOffset(a.offset))
	}
	gl.BindVertexArray(0)

	r.white = r.uploadTexture(1, 1, gl.RGBA8, gl.RGBA, []byte{255, 255, 255, 255}, false)
	r.batch = renderer2d.New(r, renderer2d.Texture(r.white), 0)

	InitPredefined()
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	return nil
}

func (r *RendererGL) Shutdown() {
	for i := range r.textures {
		gl.DeleteTextures(1, &r.textures[i])
	}
	r.textures = nil
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	DisposePredefined()
}

func (r *RendererGL) Resize(w, h int) {
	r.w, r.h = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
	r.camera.SetViewportPixels(w, h)
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Begin starts a frame of canvas drawing; End flushes it.
func (r *RendererGL) Begin()                       { r.batch.BeginScene() }
func (r *RendererGL) End()                         { r.batch.EndScene() }
func (r *RendererGL) Stats() renderer2d.Statistics { return r.batch.Stats() }

func (r *RendererGL) FillRect(rect ui.Rect, c colors.Color) {
	r.batch.DrawQuad(renderer2d.Rect(rect), c)
}

func (r *RendererGL) DrawText(f *text.Font, s string, pos, scale ui.Vec2, c colors.Color, clip ui.Rect) {
	g, err := r.atlas(f)
	if err != nil {
		logger.Printf("draw text: %v", err)
		return
	}
	cr := renderer2d.Rect(clip)
	if clip.Empty() {
		cr = renderer2d.Rect{W: float32(r.w), H: float32(r.h)}
	}
	r.batch.DrawText(g, s, pos.X, pos.Y, scale.X, scale.Y, c, cr)
}

// atlas rasterizes f on first use.
func (r *RendererGL) atlas(f *text.Font) (renderer2d.GlyphAtlas, error) {
	if g, ok := r.atlases[f]; ok {
		return g, nil
	}
	a, err := text.BuildAtlas(f, firstRune, lastRune)
	if err != nil {
		return renderer2d.GlyphAtlas{}, err
	}
	size := a.Size()
	tex := r.uploadTexture(size, size, gl.R8, gl.RED, a.Image.Pix, true)
	g := renderer2d.GlyphAtlas{Atlas: a, Tex: renderer2d.Texture(tex)}
	r.atlases[f] = g
	logger.Printf("built %dx%d atlas for %s", size, size, f.Name)
	return g, nil
}

// uploadTexture creates a texture from tightly packed pixels. Alpha-only
// textures are swizzled to read as white with coverage in alpha.
func (r *RendererGL) uploadTexture(w, h int, internal int32, format uint32, pix []byte, alphaOnly bool) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(w), int32(h), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	PointClamp.Set(gl.TEXTURE_2D)
	if alphaOnly {
		swizzle := []int32{gl.ONE, gl.ONE, gl.ONE, gl.RED}
		gl.TexParameteriv(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_RGBA, &swizzle[0])
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.textures = append(r.textures, tex)
	return tex
}

// DrawBatch uploads a finished batch and draws it.
func (r *RendererGL) DrawBatch(verts []float32, inds []uint32, textures []renderer2d.Texture) {
	gl.UseProgram(r.program)
	vp := r.camera.VP()
	gl.UniformMatrix4fv(r.uVP, 1, false, &vp[0])
	for i, t := range textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, uint32(t))
		PointClamp.Bind(uint32(i))
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STREAM_DRAW)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(inds)*4, gl.Ptr(inds), gl.STREAM_DRAW)
	gl.DrawElements(gl.TRIANGLES, int32(len(inds)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
