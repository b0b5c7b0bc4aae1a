package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/hherman1/flowmask/internal/flow"
)

// MaxImageBytes bounds how much of a source is read.
const MaxImageBytes = 64 << 20

// Loader decodes images on their own goroutines and publishes them to texture slots.
// Loads are fire-and-forget: a failure is logged and leaves the slot failed, nothing retries.
type Loader struct {
	Source Source
	Device flow.Device
	// Every texture is scaled to Width x Height.
	Width, Height int
	Logger        *slog.Logger

	wg sync.WaitGroup
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// Start begins loading name into slot. Slots that were already requested are left alone.
func (l *Loader) Start(ctx context.Context, name string, slot *flow.Slot) {
	if !slot.Begin() {
		l.logger().Warn("texture already requested", "slot", slot.Name(), "state", slot.State())
		return
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		start := time.Now()
		tex, err := l.Load(ctx, name)
		if err != nil {
			l.logger().Error("texture load failed", "slot", slot.Name(), "name", name, "error", err)
			if err := slot.Fail(err); err != nil {
				l.logger().Error("fail texture", "slot", slot.Name(), "error", err)
			}
			return
		}
		if err := slot.Publish(tex); err != nil {
			l.logger().Error("publish texture", "slot", slot.Name(), "error", err)
			return
		}
		l.logger().Info("texture ready", "slot", slot.Name(), "name", name, "took", time.Since(start))
	}()
}

// Wait blocks until every started load has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Load reads, decodes and uploads name synchronously.
func (l *Loader) Load(ctx context.Context, name string) (flow.Texture, error) {
	r, err := l.Source.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	b, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(b) > MaxImageBytes {
		return nil, fmt.Errorf("read %s: larger than %d bytes", name, MaxImageBytes)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, format, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	l.logger().Debug("decoded image", "name", name, "format", format, "size", img.Bounds().Size())
	tex, err := l.Device.NewTexture(Fit(img, l.Width, l.Height), flow.FlowSampler)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}
	return tex, nil
}
