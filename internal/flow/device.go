package flow

import (
	"fmt"
	"image"
	"image/color"
)

// Program is a linked vertex and fragment stage pair.
type Program interface {
	Name() string
}

// Buffer is an uploaded, immutable vertex buffer.
type Buffer interface {
	Mesh() Mesh
}

// Texture is a GPU resident image.
type Texture interface {
	Size() (width, height int)
}

type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

type Wrap int

const (
	WrapClamp Wrap = iota
	WrapRepeat
)

// Sampler is the addressing state of a texture.
type Sampler struct {
	Filter Filter
	Wrap   Wrap
}

// FlowSampler is bilinear with wraparound on both axes, the only state the flow program uses.
var FlowSampler = Sampler{Filter: FilterLinear, Wrap: WrapRepeat}

// ProgramSource carries the program in every shading language a device may want.
type ProgramSource struct {
	Name string
	// Kage fragment program, the vertex stage is the host's pass-through.
	Kage []byte
	// WGSL module with both stages.
	WGSL string
}

// Device creates GPU resources. All calls happen during setup or from texture load completions.
type Device interface {
	CompileProgram(src ProgramSource) (Program, error)
	UploadMesh(m Mesh) (Buffer, error)
	NewTexture(img image.Image, s Sampler) (Texture, error)
}

// Texture units the flow program samples from.
const (
	UnitColor = 0
	UnitMask  = 1
)

// Uniforms are the per-draw constants of the flow program.
type Uniforms struct {
	Weight       float32
	SamplerColor int
	SamplerMask  int
}

// DrawCall is one non-indexed triangle list draw.
type DrawCall struct {
	Program  Program
	Buffer   Buffer
	Units    [2]Texture
	Uniforms Uniforms
	Count    int
}

// ColorTexture returns the texture bound to the unit named by the color sampler uniform.
func (c DrawCall) ColorTexture() Texture {
	return c.unit(c.Uniforms.SamplerColor)
}

// MaskTexture returns the texture bound to the unit named by the mask sampler uniform.
func (c DrawCall) MaskTexture() Texture {
	return c.unit(c.Uniforms.SamplerMask)
}

func (c DrawCall) unit(i int) Texture {
	if i < 0 || i >= len(c.Units) {
		return nil
	}
	return c.Units[i]
}

// Target is the surface of a single frame.
type Target interface {
	Clear(c color.Color)
	Draw(call DrawCall)
	Present()
}

// Black is the clear color.
var Black = color.RGBA{A: 0xff}

type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// CompileError carries the compiler or linker log of a program that failed to build.
type CompileError struct {
	Program string
	Stage   Stage
	Log     string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("program %q: %s stage: %s", e.Program, e.Stage, e.Log)
}
