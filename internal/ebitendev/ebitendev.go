// Package ebitendev runs the flow program on ebiten. The fragment stage is a Kage shader
// and ebiten's built in vertex stage passes positions and texture coordinates through.
package ebitendev

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hherman1/flowmask/internal/flow"
)

// Uniform names as declared by the Kage program. Kage uniforms must be exported.
const (
	UniformWeight = "Weight"
)

// ErrSampler is returned for sampler states the Kage program does not implement.
var ErrSampler = errors.New("unsupported sampler state")

// Device creates ebiten resources.
type Device struct{}

type program struct {
	name   string
	shader *ebiten.Shader
}

func (p *program) Name() string { return p.name }

type texture struct {
	img *ebiten.Image
}

func (t *texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (Device) CompileProgram(src flow.ProgramSource) (flow.Program, error) {
	if len(src.Kage) == 0 {
		return nil, &flow.CompileError{Program: src.Name, Stage: flow.StageFragment, Log: "no Kage source"}
	}
	s, err := ebiten.NewShader(src.Kage)
	if err != nil {
		return nil, &flow.CompileError{Program: src.Name, Stage: flow.StageFragment, Log: err.Error()}
	}
	return &program{name: src.Name, shader: s}, nil
}

func (Device) UploadMesh(m flow.Mesh) (flow.Buffer, error) {
	return newBuffer(m), nil
}

// NewTexture uploads img. Filtering and wrapping happen in the Kage program, which only
// implements flow.FlowSampler.
func (Device) NewTexture(img image.Image, s flow.Sampler) (flow.Texture, error) {
	if s != flow.FlowSampler {
		return nil, fmt.Errorf("new texture: %w: %+v", ErrSampler, s)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("new texture: empty image %v", img.Bounds())
	}
	return &texture{img: ebiten.NewImageFromImage(img)}, nil
}

// Target draws into the screen image ebiten hands to Game.Draw.
type Target struct {
	Screen *ebiten.Image
}

func (t Target) Clear(c color.Color) {
	t.Screen.Fill(c)
}

// Present is a no-op, ebiten presents once Draw returns.
func (t Target) Present() {}

func (t Target) Draw(call flow.DrawCall) {
	prog, ok := call.Program.(*program)
	if !ok {
		return
	}
	buf, ok := call.Buffer.(*buffer)
	if !ok {
		return
	}
	colorTex, ok := call.ColorTexture().(*texture)
	if !ok {
		return
	}
	maskTex, ok := call.MaskTexture().(*texture)
	if !ok {
		return
	}
	b := t.Screen.Bounds()
	cw, ch := colorTex.Size()
	vs, is := buf.vertices(b.Dx(), b.Dy(), cw, ch, call.Count)
	t.Screen.DrawTrianglesShader(vs, is, prog.shader, &ebiten.DrawTrianglesShaderOptions{
		Uniforms: map[string]any{
			UniformWeight: call.Uniforms.Weight,
		},
		Images: [4]*ebiten.Image{colorTex.img, maskTex.img},
	})
}
