package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/hherman1/flowmask/internal/flow"
	"github.com/hherman1/flowmask/internal/softdev"
)

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 0xff}
			if (x+y)%2 == 0 {
				c = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeFormats(t *testing.T) {
	img := checker(8, 4)
	tests := []struct {
		format string
		encode func(*bytes.Buffer) error
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, img) }},
		{"gif", func(b *bytes.Buffer) error { return gif.Encode(b, img, nil) }},
		{"bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, img) }},
		{"tif", func(b *bytes.Buffer) error { return tiff.Encode(b, img, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf))
			got, format, err := Decode(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, image.Pt(8, 4), got.Bounds().Size())
		})
	}
}

func TestDecodeRejectsNonImages(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an image, just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = Decode([]byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeCorruptImage(t *testing.T) {
	b := encodePNG(t, checker(4, 4))
	_, _, err := Decode(b[:40])
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFit(t *testing.T) {
	src := checker(4, 4)
	same := Fit(src, 4, 4)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, same.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{A: 0xff}, same.NRGBAAt(1, 0))

	scaled := Fit(src, 16, 2)
	assert.Equal(t, image.Rect(0, 0, 16, 2), scaled.Bounds())
	assert.Equal(t, uint8(0xff), scaled.NRGBAAt(7, 1).A)
}

func newLoader(src Source) *Loader {
	return &Loader{Source: src, Device: softdev.Device{}, Width: 32, Height: 32}
}

func TestLoaderEmbedded(t *testing.T) {
	fsys := fstest.MapFS{"color.png": {Data: encodePNG(t, checker(8, 8))}}
	l := newLoader(Sources{Embedded: fsys})
	slot := flow.NewSlot("color")

	l.Start(context.Background(), "embed:color.png", slot)
	l.Wait()

	require.Equal(t, flow.Ready, slot.State(), "%v", slot.Err())
	tex, ok := slot.Texture()
	require.True(t, ok)
	w, h := tex.Size()
	assert.Equal(t, 32, w)
	assert.Equal(t, 32, h)
}

func TestLoaderFailureLeavesSlotNotReady(t *testing.T) {
	l := newLoader(Sources{Embedded: fstest.MapFS{
		"notes.txt": {Data: []byte("hello")},
	}})
	for _, name := range []string{"embed:missing.png", "embed:notes.txt", "/does/not/exist.png"} {
		slot := flow.NewSlot(name)
		l.Start(context.Background(), name, slot)
		l.Wait()
		assert.Equal(t, flow.Failed, slot.State(), name)
		assert.Error(t, slot.Err(), name)
		_, ok := slot.Texture()
		assert.False(t, ok)
	}
}

func TestLoaderCancelled(t *testing.T) {
	fsys := fstest.MapFS{"color.png": {Data: encodePNG(t, checker(8, 8))}}
	l := newLoader(Sources{Embedded: fsys})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slot := flow.NewSlot("color")
	l.Start(ctx, "embed:color.png", slot)
	l.Wait()
	assert.Equal(t, flow.Failed, slot.State())
	assert.ErrorIs(t, slot.Err(), context.Canceled)
}

func TestLoaderStartTwice(t *testing.T) {
	fsys := fstest.MapFS{"color.png": {Data: encodePNG(t, checker(8, 8))}}
	l := newLoader(Sources{Embedded: fsys})
	slot := flow.NewSlot("color")
	l.Start(context.Background(), "embed:color.png", slot)
	l.Start(context.Background(), "embed:missing.png", slot)
	l.Wait()
	assert.Equal(t, flow.Ready, slot.State())
}

func TestLoaderHTTP(t *testing.T) {
	body := encodePNG(t, checker(8, 8))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mask.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	l := newLoader(Sources{HTTP: srv.Client()})
	ok := flow.NewSlot("mask")
	missing := flow.NewSlot("missing")
	l.Start(context.Background(), srv.URL+"/mask.png", ok)
	l.Start(context.Background(), srv.URL+"/nope.png", missing)
	l.Wait()

	assert.Equal(t, flow.Ready, ok.State(), "%v", ok.Err())
	assert.Equal(t, flow.Failed, missing.State())
	assert.ErrorContains(t, missing.Err(), "404")
}

// gatedSource blocks every Open until release is closed, then fails.
type gatedSource struct {
	release chan struct{}
}

func (s gatedSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	<-s.release
	return nil, errors.New("unreachable host")
}

func TestLoaderLogsRejectedFailure(t *testing.T) {
	src := gatedSource{release: make(chan struct{})}
	var logs bytes.Buffer
	l := newLoader(src)
	l.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	slot := flow.NewSlot("color")

	l.Start(context.Background(), "embed:color.png", slot)
	// the slot leaves Loading before the load finishes, so the loader's own Fail is rejected
	abandoned := errors.New("abandoned")
	require.NoError(t, slot.Fail(abandoned))
	close(src.release)
	l.Wait()

	assert.Equal(t, flow.Failed, slot.State())
	assert.ErrorIs(t, slot.Err(), abandoned)
	assert.Contains(t, logs.String(), "texture load failed")
	assert.Contains(t, logs.String(), "fail texture")
	assert.Contains(t, logs.String(), flow.ErrSlotState.Error())
}
