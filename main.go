package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"
)

// Renders a color image distorted by a flow mask, looping forever.
// Clip space has y up, screen space y down.

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("flowmask", pflag.ContinueOnError)
	resolve := ConfigFlags(fs)
	var golden goldenOptions
	fs.StringVar(&golden.Path, "golden", "", "render headless with the software device and write the last frame to this PNG")
	fs.IntVar(&golden.Frames, "golden-frames", 1, "frames to render after both textures are ready")
	fs.DurationVar(&golden.Step, "golden-step", time.Second/60, "time between golden frames")
	spirvPath := fs.String("spirv", "", "write the WGSL program compiled to SPIR-V to this file and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg, err := resolve()
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	src, err := ProgramSource()
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch {
	case *spirvPath != "":
		return writeSPIRV(*spirvPath, src.WGSL)
	case golden.Path != "":
		return renderGolden(ctx, cfg, src, golden, logger)
	}
	if err := runGame(ctx, cfg, src, logger); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
