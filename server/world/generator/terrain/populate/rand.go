package populate

import "github.com/go-gl/mathgl/mgl64"

// Rand is the random source used for vegetation decisions and placement
// jitter. *rand.Rand from math/rand/v2 implements it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Jitter returns a horizontal offset with both components drawn uniformly from
// [-radius, radius).
func Jitter(r Rand, radius float64) mgl64.Vec2 {
	if radius == 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		(r.Float64()*2 - 1) * radius,
		(r.Float64()*2 - 1) * radius,
	}
}

// Variant picks one of n vegetation variants uniformly.
func Variant(r Rand, n int) int {
	if n <= 1 {
		return 0
	}
	return r.IntN(n)
}
