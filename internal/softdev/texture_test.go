package softdev

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hherman1/flowmask/internal/flow"
)

func twoByTwo(t *testing.T, s flow.Sampler) *Texture {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{0})
	img.SetGray(1, 0, color.Gray{0xff})
	img.SetGray(0, 1, color.Gray{0xff})
	img.SetGray(1, 1, color.Gray{0})
	tex, err := Device{}.NewTexture(img, s)
	require.NoError(t, err)
	return tex.(*Texture)
}

func TestSampleTexelCenters(t *testing.T) {
	tex := twoByTwo(t, flow.FlowSampler)
	// v runs down, so v=0.25 is the first row
	assert.Equal(t, float32(0), tex.Sample(flow.Vec2{X: 0.25, Y: 0.25}).R)
	assert.Equal(t, float32(1), tex.Sample(flow.Vec2{X: 0.75, Y: 0.25}).R)
	assert.Equal(t, float32(1), tex.Sample(flow.Vec2{X: 0.25, Y: 0.75}).R)
	assert.Equal(t, float32(0), tex.Sample(flow.Vec2{X: 0.75, Y: 0.75}).R)
}

func TestSampleBilinear(t *testing.T) {
	tex := twoByTwo(t, flow.FlowSampler)
	assert.InDelta(t, 0.5, tex.Sample(flow.Vec2{X: 0.5, Y: 0.75}).R, 1e-6)
	assert.InDelta(t, 0.5, tex.Sample(flow.Vec2{X: 0.5, Y: 0.5}).R, 1e-6)
}

func TestSampleRepeat(t *testing.T) {
	tex := twoByTwo(t, flow.FlowSampler)
	for _, d := range []float32{-2, -1, 1, 3} {
		uv := flow.Vec2{X: 0.25 + d, Y: 0.25 - d}
		assert.InDelta(t, 0, tex.Sample(uv).R, 1e-5, "offset %v", d)
	}
	// halfway across the seam blends the last and first columns
	assert.InDelta(t, 0.5, tex.Sample(flow.Vec2{X: 1, Y: 0.25}).R, 1e-6)
}

func TestSampleClampNearest(t *testing.T) {
	tex := twoByTwo(t, flow.Sampler{Filter: flow.FilterNearest, Wrap: flow.WrapClamp})
	assert.Equal(t, float32(1), tex.Sample(flow.Vec2{X: 5, Y: 0.1}).R)
	assert.Equal(t, float32(0), tex.Sample(flow.Vec2{X: -5, Y: 0.1}).R)
	assert.Equal(t, float32(1), tex.At(7, -3).R)
}
