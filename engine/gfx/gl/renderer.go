package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/tesseract/engine/assets"
	"github.com/hubastard/tesseract/engine/colors"
	"github.com/hubastard/tesseract/engine/core"
	"github.com/hubastard/tesseract/engine/gfx/mesh"
)

// Options for the GPU renderer beyond the window config.
type Options struct {
	MarkerRadius  float32
	SphereRings   int
	SphereSectors int
}

// RendererGL draws faces as noise-shaded translucent quads and vertices as
// small spheres, with depth test and alpha blending on.
type RendererGL struct {
	win     core.Window
	opts    Options
	program uint32

	quadVAO    uint32 // attribute-less; corners come from uniforms
	sphereVAO  uint32
	sphereVBO  uint32
	sphereEBO  uint32
	sphereIdxN int32

	loc  uniformLocations
	vp   mgl32.Mat4
	time float32
}

type uniformLocations struct {
	renderFace, outerFace int32
	corners               [4]int32
	model, viewProj       int32
	time                  int32
	outerColor            int32
	innerColor            int32
	markerColor           int32
}

func NewRendererGL(win core.Window, _ core.Config, opts Options) (*RendererGL, error) {
	r := &RendererGL{win: win, opts: opts, vp: mgl32.Ident4()}
	if err := r.Init(); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	vs, err := assets.LoadShader("tesseract.vert")
	if err != nil {
		return err
	}
	fs, err := assets.LoadShader("tesseract.frag")
	if err != nil {
		return err
	}
	r.program, err = makeProgram(vs, fs)
	if err != nil {
		return err
	}
	r.lookupUniforms()

	gl.GenVertexArrays(1, &r.quadVAO)

	sph, err := mesh.UVSphere(r.opts.SphereRings, r.opts.SphereSectors)
	if err != nil {
		return err
	}
	gl.GenVertexArrays(1, &r.sphereVAO)
	gl.BindVertexArray(r.sphereVAO)

	gl.GenBuffers(1, &r.sphereVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.sphereVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(sph.Positions)*4, gl.Ptr(sph.Positions), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.sphereEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.sphereEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(sph.Indices)*4, gl.Ptr(sph.Indices), gl.STATIC_DRAW)
	r.sphereIdxN = int32(len(sph.Indices))

	// layout(location = 0) in vec3 aPos;
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(r.program)
	setColor(r.loc.outerColor, colors.OuterFace)
	setColor(r.loc.innerColor, colors.InnerFace)
	setColor(r.loc.markerColor, colors.Marker)
	gl.UseProgram(0)
	return nil
}

func (r *RendererGL) lookupUniforms() {
	loc := func(name string) int32 { return gl.GetUniformLocation(r.program, gl.Str(name+"\x00")) }
	r.loc.renderFace = loc("uRenderFace")
	r.loc.outerFace = loc("uOuterFace")
	for i := range r.loc.corners {
		r.loc.corners[i] = loc(fmt.Sprintf("uCorners[%d]", i))
	}
	r.loc.model = loc("uModel")
	r.loc.viewProj = loc("uViewProj")
	r.loc.time = loc("uTime")
	r.loc.outerColor = loc("uOuterColor")
	r.loc.innerColor = loc("uInnerColor")
	r.loc.markerColor = loc("uMarkerColor")
}

func (r *RendererGL) Shutdown() {
	if r.sphereEBO != 0 {
		gl.DeleteBuffers(1, &r.sphereEBO)
	}
	if r.sphereVBO != 0 {
		gl.DeleteBuffers(1, &r.sphereVBO)
	}
	if r.sphereVAO != 0 {
		gl.DeleteVertexArrays(1, &r.sphereVAO)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	r.sphereEBO, r.sphereVBO, r.sphereVAO, r.quadVAO, r.program = 0, 0, 0, 0, 0
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(c colors.Color) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *RendererGL) SetViewProj(vp mgl32.Mat4) { r.vp = vp }
func (r *RendererGL) SetTime(t float32)         { r.time = t }

func (r *RendererGL) DrawQuad(c0, c1, c2, c3 mgl64.Vec3, outer bool) {
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.loc.viewProj, 1, false, &r.vp[0])
	gl.Uniform1f(r.loc.time, r.time)
	gl.Uniform1i(r.loc.renderFace, 1)
	gl.Uniform1i(r.loc.outerFace, boolToInt(outer))
	for i, c := range [4]mgl64.Vec3{c0, c1, c2, c3} {
		gl.Uniform3f(r.loc.corners[i], float32(c[0]), float32(c[1]), float32(c[2]))
	}
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (r *RendererGL) DrawMarker(p mgl64.Vec3) {
	s := r.opts.MarkerRadius
	model := mgl32.Translate3D(float32(p[0]), float32(p[1]), float32(p[2])).Mul4(mgl32.Scale3D(s, s, s))
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.loc.viewProj, 1, false, &r.vp[0])
	gl.UniformMatrix4fv(r.loc.model, 1, false, &model[0])
	gl.Uniform1i(r.loc.renderFace, 0)
	gl.BindVertexArray(r.sphereVAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.sphereIdxN, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Flush reports the first pending GL error of the frame.
func (r *RendererGL) Flush() error {
	gl.UseProgram(0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

func setColor(loc int32, c colors.Color) { gl.Uniform4f(loc, c[0], c[1], c[2], c[3]) }

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
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
