package flow

import (
	"math"
	"time"

	"github.com/chewxy/math32"
)

// DefaultRate is the number of full cross-fade cycles per second.
const DefaultRate = 0.25

// Clock produces the animation weight. The weight always lies in [0,1) and wraps
// instead of growing, so long sessions never lose float precision.
type Clock struct {
	// Cycles per second. Zero freezes the animation.
	Rate float32

	weight float32
}

// NewClock returns a clock starting at weight zero.
func NewClock(rate float32) *Clock {
	return &Clock{Rate: rate}
}

// Weight returns the current weight without advancing it.
func (c *Clock) Weight() float32 {
	return c.weight
}

// Advance moves the weight forward by elapsed and returns the new weight.
// Non-positive durations leave the weight untouched.
func (c *Clock) Advance(elapsed time.Duration) float32 {
	if elapsed <= 0 {
		return c.weight
	}
	// reduce in float64 first, a long stall times the rate can exceed float32 precision
	step := math.Mod(elapsed.Seconds()*float64(c.Rate), 1)
	c.weight = Fract(c.weight + float32(step))
	return c.weight
}

// Fract returns x - floor(x), clamped into [0,1). NaN and infinities yield zero.
func Fract(x float32) float32 {
	f := x - math32.Floor(x)
	if !(f >= 0 && f < 1) {
		// x just below an integer can round up to exactly 1
		return 0
	}
	return f
}
