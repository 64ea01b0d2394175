package noise

import "github.com/ojrac/opensimplex-go"

// Simplex is a Field backed by OpenSimplex noise.
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex returns a Simplex field for the seed passed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

// At ...
func (s *Simplex) At(x, y float64) float64 {
	return unit(s.n.Eval2(x, y))
}
