package noise

import "github.com/aquilax/go-perlin"

const (
	perlinAlpha  = 2
	perlinBeta   = 2
	perlinOctave = 3
)

// Perlin is a Field backed by classic gradient noise.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin returns a Perlin field for the seed passed.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, seed)}
}

// At maps the [-1, 1] output of the underlying noise onto [0, 1).
func (p *Perlin) At(x, y float64) float64 {
	return unit((p.p.Noise2D(x, y) + 1) / 2)
}
