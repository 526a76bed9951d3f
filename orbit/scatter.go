package orbit

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// ScatterBounds limits where and how large a scattered body may be.
type ScatterBounds struct {
	DistanceMin float32 // minimum absolute offset per axis
	DistanceMax float32 // maximum absolute offset per axis
	ScaleMin    float32
	ScaleMax    float32
}

// DefaultScatterBounds returns the bounds used for decorative planets.
func DefaultScatterBounds() ScatterBounds {
	return ScatterBounds{
		DistanceMin: 2,
		DistanceMax: 12,
		ScaleMin:    0.03,
		ScaleMax:    0.2,
	}
}

// Placement is a fixed translation and uniform scale.
type Placement struct {
	Translation mgl32.Vec3
	Scale       float32
}

// Scatter draws a random placement once. Every axis lands in
// [-max,-min) or [min,max) with equal odds, the scale in [min,max).
func Scatter(rng *rand.Rand, b ScatterBounds) Placement {
	return Placement{
		Translation: mgl32.Vec3{
			signedUniform(rng, b.DistanceMin, b.DistanceMax),
			signedUniform(rng, b.DistanceMin, b.DistanceMax),
			signedUniform(rng, b.DistanceMin, b.DistanceMax),
		},
		Scale: uniform(rng, b.ScaleMin, b.ScaleMax),
	}
}

// Pick returns a random index in [0,n), or -1 when n is not positive.
func Pick(rng *rand.Rand, n int) int {
	if n <= 0 {
		return -1
	}
	return rng.Intn(n)
}

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	if hi < lo {
		hi = lo
	}
	return lo + rng.Float32()*(hi-lo)
}

func signedUniform(rng *rand.Rand, lo, hi float32) float32 {
	if hi < lo {
		hi = lo
	}
	r := rng.Float32()
	if r < 0.5 {
		return -hi + r*2*(hi-lo)
	}
	return lo + (r-0.5)*2*(hi-lo)
}
