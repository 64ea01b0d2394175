// Package noise provides the coherent noise fields sampled by the terrain
// generator. Every Field returns values in [0, 1) and is a pure function of
// its coordinates, so a Field may be shared between goroutines and between
// channels.
package noise

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownBackend is returned by New if the backend name is not recognised.
var ErrUnknownBackend = errors.New("noise: unknown backend")

// Field is a continuous, smooth two-dimensional noise function. At must return
// the same value for the same coordinates for the lifetime of the Field.
type Field interface {
	At(x, y float64) float64
}

// FieldFunc is a function that implements Field.
type FieldFunc func(x, y float64) float64

// At ...
func (f FieldFunc) At(x, y float64) float64 {
	return f(x, y)
}

// Constant is a Field that returns the same value for every coordinate. It is
// mostly useful to pin the generator to a single band in tests.
type Constant float64

// At ...
func (c Constant) At(float64, float64) float64 {
	return float64(c)
}

// Channel samples a Field on the integer generation grid. BaseX and BaseY move
// the sampled window through noise space and Grain scales grid indices before
// sampling. Two channels derived from the same Field are only uncorrelated if
// their bases lie far enough apart or their grains differ.
type Channel struct {
	BaseX, BaseY float64
	Grain        float64
	Field        Field
}

// Sample returns the value of the channel at grid index (i, j).
func (c Channel) Sample(i, j int) float64 {
	return Sample(c.Field, c.BaseX, c.BaseY, c.Grain, i, j)
}

// Sample samples f at (baseX + grain*i, baseY + grain*j).
func Sample(f Field, baseX, baseY, grain float64, i, j int) float64 {
	return f.At(baseX+grain*float64(i), baseY+grain*float64(j))
}

// New returns the Field implemented by the backend with the name passed,
// seeded with seed. Supported backends are "perlin" and "simplex". An empty
// name selects perlin.
func New(backend string, seed int64) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "perlin":
		return NewPerlin(seed), nil
	case "simplex", "opensimplex":
		return NewSimplex(seed), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownBackend, backend)
}

// belowOne is the largest float64 smaller than 1.
var belowOne = math.Nextafter(1, 0)

// unit clamps v to [0, 1).
func unit(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return belowOne
	}
	return v
}
