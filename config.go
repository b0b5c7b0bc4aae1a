package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/hherman1/flowmask/internal/flow"
)

// Config holds the demo settings, read from an optional YAML file and overridden by flags.
type Config struct {
	Title string `yaml:"title"`
	// Surface size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Image names: a path, an http(s) URL, or embed:<name> for the built in images.
	Color string `yaml:"color"`
	Mask  string `yaml:"mask"`
	// Animation cycles per second.
	Rate float32 `yaml:"rate"`
	// Both textures are scaled to TextureSize x TextureSize.
	TextureSize int    `yaml:"texture_size"`
	LogLevel    string `yaml:"log_level"`
}

// DefaultConfig returns the built in configuration: a 512x512 surface showing the embedded images.
func DefaultConfig() Config {
	return Config{
		Title:       "flowmask",
		Width:       512,
		Height:      512,
		Color:       "embed:color.png",
		Mask:        "embed:mask.png",
		Rate:        flow.DefaultRate,
		TextureSize: 512,
		LogLevel:    "info",
	}
}

// LoadConfig reads a YAML file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("surface size %dx%d must be positive", c.Width, c.Height))
	}
	if c.TextureSize <= 0 {
		errs = append(errs, fmt.Errorf("texture_size %d must be positive", c.TextureSize))
	}
	if !(c.Rate >= 0) {
		errs = append(errs, fmt.Errorf("rate %v must not be negative", c.Rate))
	}
	if c.Color == "" {
		errs = append(errs, errors.New("color image is required"))
	}
	if c.Mask == "" {
		errs = append(errs, errors.New("mask image is required"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// ConfigFlags registers the configuration flags on fs. After fs is parsed, the returned function
// loads the --config file, if any, applies the flags that were set and validates the result.
func ConfigFlags(fs *pflag.FlagSet) func() (Config, error) {
	def := DefaultConfig()
	var (
		path string
		set  Config
	)
	fs.StringVar(&path, "config", "", "YAML configuration file")
	fs.StringVar(&set.Title, "title", def.Title, "window title")
	fs.IntVar(&set.Width, "width", def.Width, "surface width in pixels")
	fs.IntVar(&set.Height, "height", def.Height, "surface height in pixels")
	fs.StringVar(&set.Color, "color", def.Color, "color image: path, URL or embed:<name>")
	fs.StringVar(&set.Mask, "mask", def.Mask, "flow mask image: path, URL or embed:<name>")
	fs.Float32Var(&set.Rate, "rate", def.Rate, "animation cycles per second")
	fs.IntVar(&set.TextureSize, "texture-size", def.TextureSize, "texture edge length in pixels")
	fs.StringVar(&set.LogLevel, "log-level", def.LogLevel, "debug, info, warn or error")

	return func() (Config, error) {
		cfg := def
		if path != "" {
			var err error
			if cfg, err = LoadConfig(path); err != nil {
				return cfg, err
			}
		}
		fs.Visit(func(f *pflag.Flag) {
			switch f.Name {
			case "title":
				cfg.Title = set.Title
			case "width":
				cfg.Width = set.Width
			case "height":
				cfg.Height = set.Height
			case "color":
				cfg.Color = set.Color
			case "mask":
				cfg.Mask = set.Mask
			case "rate":
				cfg.Rate = set.Rate
			case "texture-size":
				cfg.TextureSize = set.TextureSize
			case "log-level":
				cfg.LogLevel = set.LogLevel
			}
		})
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
}
