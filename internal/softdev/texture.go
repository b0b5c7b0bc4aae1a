package softdev

import (
	"github.com/chewxy/math32"

	"github.com/hherman1/flowmask/internal/flow"
)

// Texture is a straight alpha float texture. Row zero is the top of the image, at v=0.
type Texture struct {
	w, h    int
	sampler flow.Sampler
	texels  []flow.RGBA
}

func (t *Texture) Size() (int, int) { return t.w, t.h }

// At returns the texel at x, y applying the texture's wrap mode.
func (t *Texture) At(x, y int) flow.RGBA {
	if t.sampler.Wrap == flow.WrapRepeat {
		x = wrap(x, t.w)
		y = wrap(y, t.h)
	} else {
		x = min(max(x, 0), t.w-1)
		y = min(max(y, 0), t.h-1)
	}
	return t.texels[y*t.w+x]
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Sample reads the texture at uv with the texture's filter.
func (t *Texture) Sample(uv flow.Vec2) flow.RGBA {
	// texel space with texel centers on integers
	x := uv.X*float32(t.w) - 0.5
	y := uv.Y*float32(t.h) - 0.5
	if t.sampler.Filter == flow.FilterNearest {
		return t.At(int(math32.Floor(x+0.5)), int(math32.Floor(y+0.5)))
	}
	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	fx := x - x0
	fy := y - y0
	ix, iy := int(x0), int(y0)
	top := flow.Mix(t.At(ix, iy), t.At(ix+1, iy), fx)
	bottom := flow.Mix(t.At(ix, iy+1), t.At(ix+1, iy+1), fx)
	return flow.Mix(top, bottom, fy)
}
