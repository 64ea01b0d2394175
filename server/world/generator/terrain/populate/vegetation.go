package populate

import (
	"errors"
	"fmt"
)

// ErrVegetationRange is returned by NewVegetation if the elevation falloff
// cannot be computed or the density is not a probability.
var ErrVegetationRange = errors.New("populate: invalid vegetation range")

// Vegetation decides whether a cell is wooded. A cell is never wooded above
// MaxElevation or when its vegetation noise exceeds Frequency. Other cells are
// wooded with probability p*Density, where p falls off linearly from the
// frequency threshold towards MaxElevation so that lowlands are denser.
type Vegetation struct {
	MaxElevation float64
	Frequency    float64
	Density      float64
}

// NewVegetation validates the parameters passed and returns a Vegetation.
func NewVegetation(maxElevation, frequency, density float64) (Vegetation, error) {
	if maxElevation <= frequency {
		return Vegetation{}, fmt.Errorf("%w: max elevation %v must exceed frequency %v", ErrVegetationRange, maxElevation, frequency)
	}
	if density < 0 || density > 1 {
		return Vegetation{}, fmt.Errorf("%w: density %v outside [0, 1]", ErrVegetationRange, density)
	}
	return Vegetation{MaxElevation: maxElevation, Frequency: frequency, Density: density}, nil
}

// Eligible reports if a cell at elevation with the vegetation noise sample
// passed may be wooded at all. It involves no randomness.
func (v Vegetation) Eligible(elevation, sample float64) bool {
	return elevation <= v.MaxElevation && sample <= v.Frequency
}

// Weight returns the elevation falloff p of an eligible cell.
func (v Vegetation) Weight(elevation float64) float64 {
	return 1 - (elevation-v.Frequency)/(v.MaxElevation-v.Frequency)
}

// Probability returns the chance that Wooded reports true for the cell.
func (v Vegetation) Probability(elevation, sample float64) float64 {
	if !v.Eligible(elevation, sample) {
		return 0
	}
	return min(max(v.Weight(elevation)*v.Density, 0), 1)
}

// Wooded draws from r to decide if the cell is wooded. Ineligible cells are
// rejected without drawing.
func (v Vegetation) Wooded(elevation, sample float64, r Rand) bool {
	if !v.Eligible(elevation, sample) {
		return false
	}
	return r.Float64() < v.Weight(elevation)*v.Density
}
