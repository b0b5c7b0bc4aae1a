package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/hherman1/flowmask/internal/assets"
	"github.com/hherman1/flowmask/internal/flow"
	"github.com/hherman1/flowmask/internal/softdev"
)

type goldenOptions struct {
	Path   string
	Frames int
	Step   time.Duration
}

// errNotReady is returned when a texture failed to load, so no frame was drawn.
var errNotReady = errors.New("textures not ready")

// renderGolden renders frames with the software device on a simulated clock and writes
// the last one as a PNG.
func renderGolden(ctx context.Context, cfg Config, src flow.ProgramSource, opts goldenOptions, logger *slog.Logger) error {
	target, err := golden(ctx, cfg, src, opts, logger)
	if err != nil {
		return err
	}
	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("create golden: %w", err)
	}
	if err := png.Encode(f, target.Image); err != nil {
		f.Close()
		return fmt.Errorf("encode golden: %w", err)
	}
	return f.Close()
}

func golden(ctx context.Context, cfg Config, src flow.ProgramSource, opts goldenOptions, logger *slog.Logger) (*softdev.Target, error) {
	dev := softdev.Device{}
	loader := &assets.Loader{
		Source: assets.Sources{Embedded: Resources()},
		Device: dev,
		Width:  cfg.TextureSize,
		Height: cfg.TextureSize,
		Logger: logger,
	}
	now := time.Unix(0, 0)
	r, err := flow.Setup(ctx, dev, loader, flow.Config{
		Program: src,
		Color:   cfg.Color,
		Mask:    cfg.Mask,
		Rate:    cfg.Rate,
		Logger:  logger,
		Now: func() time.Time {
			t := now
			now = now.Add(opts.Step)
			return t
		},
	})
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	loader.Wait()

	target := softdev.NewTarget(cfg.Width, cfg.Height)
	for i := 0; i < max(opts.Frames, 1); i++ {
		r.Frame(target)
	}
	if r.State() != flow.Rendering {
		color, mask := r.Slots()
		return target, fmt.Errorf("%w: color %s (%v), mask %s (%v)", errNotReady, color.State(), color.Err(), mask.State(), mask.Err())
	}
	logger.Info("rendered golden frames", "frames", r.Stats().Frames, "weight", r.Weight())
	return target, nil
}

func writeSPIRV(path, src string) error {
	b, err := softdev.Compile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write spirv: %w", err)
	}
	return nil
}
