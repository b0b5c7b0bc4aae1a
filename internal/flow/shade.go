package flow

// The fragment stage evaluated on the CPU. Devices without a shader compiler
// run it per pixel, and it is the reference the GPU programs are checked against.

// Vec2 is a two component float vector.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// RGBA is a straight alpha color with components in [0,1].
type RGBA struct {
	R, G, B, A float32
}

// Mix linearly interpolates between a and b.
func Mix(a, b RGBA, t float32) RGBA {
	return RGBA{
		R: a.R*(1-t) + b.R*t,
		G: a.G*(1-t) + b.G*t,
		B: a.B*(1-t) + b.B*t,
		A: a.A*(1-t) + b.A*t,
	}
}

// Sampler2D samples a texture at a texture coordinate, v=0 being the first image row.
type Sampler2D interface {
	Sample(uv Vec2) RGBA
}

// FlowScale converts a mask value into a texture space displacement.
var FlowScale = Vec2{0.02, 0.01}

// FlowVector returns the displacement for a mask intensity.
func FlowVector(mask float32) Vec2 {
	return FlowScale.Scale(mask)
}

// SampleOffsets returns the two displacements sampled for one pixel. They are half a
// cycle apart so one sample is always fading in while the other wraps.
func SampleOffsets(flow Vec2, weight float32) (a, b Vec2) {
	return flow.Scale(weight), flow.Scale(Fract(weight + 0.5))
}

// Shade computes the output color at uv. The weight*flow sample a gains weight as the
// cycle advances, the half cycle sample b fades out.
func Shade(color, mask Sampler2D, uv Vec2, weight float32) RGBA {
	flow := FlowVector(mask.Sample(uv).R)
	oa, ob := SampleOffsets(flow, weight)
	a := color.Sample(uv.Add(oa))
	b := color.Sample(uv.Add(ob))
	return Mix(b, a, weight)
}
