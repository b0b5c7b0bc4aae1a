package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// State is the renderer's state. Waiting only ever moves to Rendering.
type State int

const (
	Waiting State = iota
	Rendering
)

func (s State) String() string {
	if s == Rendering {
		return "rendering"
	}
	return "waiting"
}

// Loader starts loading the named image into slot without blocking.
type Loader interface {
	Start(ctx context.Context, name string, slot *Slot)
}

// Config describes what Setup builds.
type Config struct {
	Program ProgramSource
	// Image names handed to the loader.
	Color, Mask string
	// Clock rate in cycles per second.
	Rate float32
	// Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// Stats counts what the renderer has done so far.
type Stats struct {
	Frames uint64
	Draws  uint64
	State  State
}

// Renderer owns every handle of the demo and draws one frame per call to Frame.
// It is not safe for concurrent use, only the texture slots are.
type Renderer struct {
	program Program
	buffer  Buffer
	color   *Slot
	mask    *Slot
	clock   *Clock

	now  func() time.Time
	last time.Time
	log  *slog.Logger

	state State
	stats Stats
}

// Setup compiles the program, uploads the quad and starts both texture loads.
// A program that fails to build aborts setup with a *CompileError.
func Setup(ctx context.Context, dev Device, loader Loader, cfg Config) (*Renderer, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	prog, err := dev.CompileProgram(cfg.Program)
	if err != nil {
		log.Error("program failed to build", "program", cfg.Program.Name, "error", err)
		return nil, fmt.Errorf("compile program: %w", err)
	}
	buf, err := dev.UploadMesh(Quad())
	if err != nil {
		return nil, fmt.Errorf("upload mesh: %w", err)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	r := &Renderer{
		program: prog,
		buffer:  buf,
		color:   NewSlot("color"),
		mask:    NewSlot("mask"),
		clock:   NewClock(cfg.Rate),
		now:     now,
		log:     log,
	}
	log.Debug("pipeline ready", "program", prog.Name(), "vertices", VertexCount)
	loader.Start(ctx, cfg.Color, r.color)
	loader.Start(ctx, cfg.Mask, r.mask)
	return r, nil
}

// Frame renders one frame into t. While either texture is missing the frame is only cleared.
func (r *Renderer) Frame(t Target) {
	now := r.now()
	var elapsed time.Duration
	if !r.last.IsZero() {
		elapsed = now.Sub(r.last)
	}
	r.last = now
	weight := r.clock.Advance(elapsed)

	t.Clear(Black)
	if r.state == Waiting && r.texturesReady() {
		r.state = Rendering
		r.log.Info("textures ready, rendering", "frame", r.stats.Frames)
	}
	if r.state == Rendering {
		color, _ := r.color.Texture()
		mask, _ := r.mask.Texture()
		var units [2]Texture
		units[UnitColor] = color
		units[UnitMask] = mask
		t.Draw(DrawCall{
			Program: r.program,
			Buffer:  r.buffer,
			Units:   units,
			Uniforms: Uniforms{
				Weight:       weight,
				SamplerColor: UnitColor,
				SamplerMask:  UnitMask,
			},
			Count: VertexCount,
		})
		r.stats.Draws++
	}
	t.Present()
	r.stats.Frames++
}

func (r *Renderer) texturesReady() bool {
	return r.color.State() == Ready && r.mask.State() == Ready
}

func (r *Renderer) State() State {
	return r.state
}

// Weight returns the weight used by the last frame.
func (r *Renderer) Weight() float32 {
	return r.clock.Weight()
}

// Slots returns the color and mask texture slots.
func (r *Renderer) Slots() (color, mask *Slot) {
	return r.color, r.mask
}

func (r *Renderer) Stats() Stats {
	s := r.stats
	s.State = r.state
	return s
}
