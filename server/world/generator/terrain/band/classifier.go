// Package band maps terrain noise onto elevation bands, block kinds and
// stepped elevations.
package band

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroWidthBand is returned by NewClassifier if a stepped band has equal
// bottom and top terrain numbers.
var ErrZeroWidthBand = errors.New("band: zero-width band")

// ErrNegativeElevation is returned by NewClassifier if a band can produce an
// elevation below zero.
var ErrNegativeElevation = errors.New("band: negative elevation")

// Thresholds are the terrain numbers at which each band starts. Bands are
// selected from the highest cutoff down: Mountains from MountainStart, Hills
// from HillsStart, Plains from ValleyStart and Valley above WaterLevel. Only
// the valley/river split is exclusive, so a terrain number equal to WaterLevel
// is river.
type Thresholds struct {
	MountainStart int
	HillsStart    int
	ValleyStart   int
	WaterLevel    int
}

// Step quantises the terrain numbers of a band into a staircase of plateaus:
// Min + Size*floor(Count*(n-Bottom)/(Top-Bottom)).
type Step struct {
	Bottom, Top int
	Size        float64
	Count       float64
	Min         float64
}

// Elevation returns the plateau the terrain number n falls on.
func (s Step) Elevation(n int) float64 {
	return s.Min + s.Size*math.Floor(s.Count*float64(n-s.Bottom)/float64(s.Top-s.Bottom))
}

// Config holds the parameters of a Classifier.
type Config struct {
	// Amplitude scales raw noise before it is turned into a terrain number.
	// A zero Amplitude is treated as 1.
	Amplitude float64
	// Offset is added to the scaled noise.
	Offset float64
	// Thresholds select the band of a terrain number.
	Thresholds Thresholds
	// Mountains, Hills and Plains step the elevation within their band.
	Mountains, Hills, Plains Step
	// ValleyElevation and WaterElevation are the fixed elevations of the
	// valley and river bands.
	ValleyElevation, WaterElevation float64
	// HighMountainElevation splits mountains into low and high blocks: a
	// mountain elevation strictly above it is a high mountain.
	HighMountainElevation float64
}

// Classifier turns raw terrain noise into a block kind and an elevation.
type Classifier struct {
	conf Config
}

// NewClassifier validates conf and returns a Classifier using it. Inverted
// thresholds are accepted, but a stepped band of zero width is not, and
// neither is any band that can produce a negative elevation.
func NewClassifier(conf Config) (*Classifier, error) {
	t := conf.Thresholds
	for _, b := range []struct {
		name string
		step Step
		// from and to bound the terrain numbers that select the band: [from, to).
		from, to int
	}{
		{"mountains", conf.Mountains, t.MountainStart, math.MaxInt},
		{"hills", conf.Hills, t.HillsStart, t.MountainStart},
		{"plains", conf.Plains, t.ValleyStart, min(t.HillsStart, t.MountainStart)},
	} {
		if b.step.Top == b.step.Bottom {
			return nil, fmt.Errorf("%w: %s spans %d..%d", ErrZeroWidthBand, b.name, b.step.Bottom, b.step.Top)
		}
		if b.from >= b.to {
			// Never selected.
			continue
		}
		if b.step.Top < b.step.Bottom || b.step.Size < 0 || b.step.Count < 0 {
			return nil, fmt.Errorf("%w: %s steps downwards", ErrNegativeElevation, b.name)
		}
		if e := b.step.Elevation(b.from); e < 0 {
			return nil, fmt.Errorf("%w: %s starts at %v for terrain number %d", ErrNegativeElevation, b.name, e, b.from)
		}
	}
	if conf.ValleyElevation < 0 || conf.WaterElevation < 0 {
		return nil, fmt.Errorf("%w: valley %v, water %v", ErrNegativeElevation, conf.ValleyElevation, conf.WaterElevation)
	}
	if conf.Amplitude == 0 {
		conf.Amplitude = 1
	}
	return &Classifier{conf: conf}, nil
}

// Config returns the configuration of the classifier with defaults applied.
func (c *Classifier) Config() Config {
	return c.conf
}

// TerrainNumber scales and offsets a noise sample and discretises it to
// hundredths. The result is clamped to the int32 range; a NaN sample maps to
// the lowest terrain number.
func (c *Classifier) TerrainNumber(sample float64) int {
	v := math.Floor((sample*c.conf.Amplitude + c.conf.Offset) * 100)
	if math.IsNaN(v) {
		return math.MinInt32
	}
	return int(min(max(v, math.MinInt32), math.MaxInt32))
}

// Band returns the band of terrain number n.
func (c *Classifier) Band(n int) Band {
	t := c.conf.Thresholds
	switch {
	case n >= t.MountainStart:
		return Mountains
	case n >= t.HillsStart:
		return Hills
	case n >= t.ValleyStart:
		return Plains
	case n > t.WaterLevel:
		return Valley
	}
	return River
}

// Classify returns the block kind and elevation of a raw noise sample.
func (c *Classifier) Classify(sample float64) (Kind, float64) {
	return c.ClassifyNumber(c.TerrainNumber(sample))
}

// ClassifyNumber returns the block kind and elevation of terrain number n.
func (c *Classifier) ClassifyNumber(n int) (Kind, float64) {
	switch c.Band(n) {
	case Mountains:
		elev := c.conf.Mountains.Elevation(n)
		if elev > c.conf.HighMountainElevation {
			return KindMountainHigh, elev
		}
		return KindMountainLow, elev
	case Hills:
		return KindHills, c.conf.Hills.Elevation(n)
	case Plains:
		return KindPlains, c.conf.Plains.Elevation(n)
	case Valley:
		return KindValley, c.conf.ValleyElevation
	}
	return KindWater, c.conf.WaterElevation
}
