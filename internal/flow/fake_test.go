package flow

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
)

type fakeProgram string

func (p fakeProgram) Name() string { return string(p) }

type fakeBuffer struct{ m Mesh }

func (b *fakeBuffer) Mesh() Mesh { return b.m }

type fakeTexture struct{ w, h int }

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

// fakeDevice rejects any source containing "syntax error".
type fakeDevice struct {
	uploads int
}

func (d *fakeDevice) CompileProgram(src ProgramSource) (Program, error) {
	if strings.Contains(string(src.Kage), "syntax error") {
		return nil, &CompileError{Program: src.Name, Stage: StageFragment, Log: "1:1: unexpected token"}
	}
	return fakeProgram(src.Name), nil
}

func (d *fakeDevice) UploadMesh(m Mesh) (Buffer, error) {
	d.uploads++
	return &fakeBuffer{m: m}, nil
}

func (d *fakeDevice) NewTexture(img image.Image, s Sampler) (Texture, error) {
	b := img.Bounds()
	return &fakeTexture{b.Dx(), b.Dy()}, nil
}

// manualLoader begins every load and leaves completion to the test.
type manualLoader struct {
	names []string
}

func (l *manualLoader) Start(ctx context.Context, name string, slot *Slot) {
	l.names = append(l.names, name)
	slot.Begin()
}

type recordingTarget struct {
	clears   []color.Color
	draws    []DrawCall
	presents int
}

func (t *recordingTarget) Clear(c color.Color) { t.clears = append(t.clears, c) }
func (t *recordingTarget) Draw(call DrawCall) { t.draws = append(t.draws, call) }
func (t *recordingTarget) Present() { t.presents++ }

var errNotFound = errors.New("not found")
