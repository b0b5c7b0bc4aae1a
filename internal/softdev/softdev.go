// Package softdev is a software implementation of the flow device. It rasterizes the
// quad on the CPU and runs the reference fragment stage, which makes it usable headless
// and in tests. Programs are validated by compiling their WGSL module to SPIR-V.
package softdev

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"

	"github.com/hherman1/flowmask/internal/flow"
)

// Device creates software resources.
type Device struct{}

type program struct {
	name  string
	spirv []byte
}

func (p *program) Name() string { return p.name }

type buffer struct {
	mesh flow.Mesh
}

func (b *buffer) Mesh() flow.Mesh { return b.mesh }

// CompileProgram compiles the WGSL module of src. The compiled module is kept but only the
// built in fragment stage runs.
func (Device) CompileProgram(src flow.ProgramSource) (flow.Program, error) {
	if src.WGSL == "" {
		return nil, &flow.CompileError{Program: src.Name, Stage: flow.StageLink, Log: "no WGSL module"}
	}
	spirv, err := Compile(src.WGSL)
	if err != nil {
		return nil, &flow.CompileError{Program: src.Name, Stage: flow.StageLink, Log: err.Error()}
	}
	return &program{name: src.Name, spirv: spirv}, nil
}

func (Device) UploadMesh(m flow.Mesh) (flow.Buffer, error) {
	return &buffer{mesh: m}, nil
}

func (Device) NewTexture(img image.Image, s flow.Sampler) (flow.Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("new texture: empty image %v", b)
	}
	t := &Texture{
		w:       b.Dx(),
		h:       b.Dy(),
		sampler: s,
		texels:  make([]flow.RGBA, b.Dx()*b.Dy()),
	}
	for y := 0; y < t.h; y++ {
		for x := 0; x < t.w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			t.texels[y*t.w+x] = flow.RGBA{
				R: float32(c.R) / 0xff,
				G: float32(c.G) / 0xff,
				B: float32(c.B) / 0xff,
				A: float32(c.A) / 0xff,
			}
		}
	}
	return t, nil
}

// Target is an RGBA frame buffer.
type Target struct {
	Image *image.RGBA
	// Draws counts draw calls since the target was created.
	Draws int
	// Presents counts presented frames.
	Presents int
}

// NewTarget returns a frame buffer of the given size.
func NewTarget(width, height int) *Target {
	return &Target{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (t *Target) Clear(c color.Color) {
	draw.Draw(t.Image, t.Image.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (t *Target) Present() {
	t.Presents++
}

// Draw rasterizes call.Count vertices of the call's buffer as a triangle list.
func (t *Target) Draw(call flow.DrawCall) {
	t.Draws++
	colorTex, ok := call.ColorTexture().(*Texture)
	if !ok {
		return
	}
	maskTex, ok := call.MaskTexture().(*Texture)
	if !ok {
		return
	}
	mesh := call.Buffer.Mesh()
	n := call.Count
	if n > len(mesh) {
		n = len(mesh)
	}
	for i := 0; i+3 <= n; i += 3 {
		t.triangle(mesh[i], mesh[i+1], mesh[i+2], colorTex, maskTex, call.Uniforms.Weight)
	}
}

type point struct {
	x, y float32
}

// screen maps clip space to pixel space, y down.
func (t *Target) screen(v flow.Vertex) point {
	b := t.Image.Bounds()
	return point{
		x: (v.X + 1) / 2 * float32(b.Dx()),
		y: (1 - v.Y) / 2 * float32(b.Dy()),
	}
}

func edge(a, b, p point) float32 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

func (t *Target) triangle(v0, v1, v2 flow.Vertex, colorTex, maskTex *Texture, weight float32) {
	p0, p1, p2 := t.screen(v0), t.screen(v1), t.screen(v2)
	area := edge(p0, p1, p2)
	if area == 0 {
		return
	}
	b := t.Image.Bounds()
	minx := max(int(math32.Floor(min(p0.x, p1.x, p2.x))), 0)
	maxx := min(int(math32.Ceil(max(p0.x, p1.x, p2.x))), b.Dx())
	miny := max(int(math32.Floor(min(p0.y, p1.y, p2.y))), 0)
	maxy := min(int(math32.Ceil(max(p0.y, p1.y, p2.y))), b.Dy())

	for y := miny; y < maxy; y++ {
		for x := minx; x < maxx; x++ {
			p := point{float32(x) + 0.5, float32(y) + 0.5}
			w0 := edge(p1, p2, p) / area
			w1 := edge(p2, p0, p) / area
			w2 := edge(p0, p1, p) / area
			// shared edges are drawn twice with the same color, the fill is opaque
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			uv := flow.Vec2{
				X: w0*v0.U + w1*v1.U + w2*v2.U,
				Y: w0*v0.V + w1*v1.V + w2*v2.V,
			}
			c := flow.Shade(colorTex, maskTex, uv, weight)
			t.Image.SetRGBA(b.Min.X+x, b.Min.Y+y, toRGBA(c))
		}
	}
}

func unit8(v float32) uint8 {
	v = v*0xff + 0.5
	if v <= 0 {
		return 0
	}
	if v >= 0xff {
		return 0xff
	}
	return uint8(v)
}

func toRGBA(c flow.RGBA) color.RGBA {
	// premultiply for image.RGBA
	a := min(max(c.A, 0), 1)
	return color.RGBA{
		R: unit8(c.R * a),
		G: unit8(c.G * a),
		B: unit8(c.B * a),
		A: unit8(a),
	}
}
