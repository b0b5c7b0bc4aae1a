//go:build ignore

//kage:unit pixels

package main

// Cross-fade factor in [0,1). Source image 0 is the color texture, image 1 the mask.
var Weight float

// colorAt samples the color image at uv with bilinear filtering and wraparound.
func colorAt(uv vec2) vec4 {
	size := imageSrc0Size()
	origin := imageSrc0Origin()
	p := uv*size - vec2(0.5)
	i := floor(p)
	f := p - i
	c00 := imageSrc0UnsafeAt(origin + mod(i, size) + vec2(0.5))
	c10 := imageSrc0UnsafeAt(origin + mod(i+vec2(1, 0), size) + vec2(0.5))
	c01 := imageSrc0UnsafeAt(origin + mod(i+vec2(0, 1), size) + vec2(0.5))
	c11 := imageSrc0UnsafeAt(origin + mod(i+vec2(1, 1), size) + vec2(0.5))
	return mix(mix(c00, c10, f.x), mix(c01, c11, f.x), f.y)
}

// maskAt is colorAt for the mask image.
func maskAt(uv vec2) vec4 {
	size := imageSrc1Size()
	origin := imageSrc1Origin()
	p := uv*size - vec2(0.5)
	i := floor(p)
	f := p - i
	c00 := imageSrc1UnsafeAt(origin + mod(i, size) + vec2(0.5))
	c10 := imageSrc1UnsafeAt(origin + mod(i+vec2(1, 0), size) + vec2(0.5))
	c01 := imageSrc1UnsafeAt(origin + mod(i+vec2(0, 1), size) + vec2(0.5))
	c11 := imageSrc1UnsafeAt(origin + mod(i+vec2(1, 1), size) + vec2(0.5))
	return mix(mix(c00, c10, f.x), mix(c01, c11, f.x), f.y)
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	uv := (srcPos - imageSrc0Origin()) / imageSrc0Size()

	mask := maskAt(uv).r
	flow := mask * vec2(0.02, 0.01)
	a := colorAt(uv + Weight*flow)
	b := colorAt(uv + fract(Weight+0.5)*flow)
	return mix(b, a, Weight)
}
