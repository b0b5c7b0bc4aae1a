package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hherman1/flowmask/internal/assets"
	"github.com/hherman1/flowmask/internal/ebitendev"
	"github.com/hherman1/flowmask/internal/flow"
)

// Game hosts the renderer in an ebiten window. ebiten calls Draw once per display
// refresh, which is where frames are rendered.
type Game struct {
	// fixed surface size
	w, h int

	r *flow.Renderer
}

// NewGame sets up the pipeline on ebiten and starts loading both textures.
func NewGame(ctx context.Context, cfg Config, src flow.ProgramSource, logger *slog.Logger) (*Game, error) {
	dev := ebitendev.Device{}
	loader := &assets.Loader{
		Source: assets.Sources{Embedded: Resources()},
		Device: dev,
		Width:  cfg.TextureSize,
		Height: cfg.TextureSize,
		Logger: logger,
	}
	r, err := flow.Setup(ctx, dev, loader, flow.Config{
		Program: src,
		Color:   cfg.Color,
		Mask:    cfg.Mask,
		Rate:    cfg.Rate,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return &Game{w: cfg.Width, h: cfg.Height, r: r}, nil
}

func runGame(ctx context.Context, cfg Config, src flow.ProgramSource, logger *slog.Logger) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	g, err := NewGame(ctx, cfg, src, logger)
	if err != nil {
		return err
	}
	return ebiten.RunGame(g)
}

// Update has nothing to simulate, the animation advances with wall clock time in Draw.
func (g *Game) Update() error {
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.r.Frame(ebitendev.Target{Screen: screen})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.w, g.h
}
