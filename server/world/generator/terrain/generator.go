// Package terrain generates a bounded grid of terrain cells from coherent
// noise. Every cell is classified into an elevation band and block kind,
// decided wooded or not, recorded in a store.Store and handed to a Sink as a
// set of placements.
package terrain

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/band"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/populate"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/store"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ErrInvalidRange is returned if a generation range is smaller than 1.
var ErrInvalidRange = errors.New("terrain: range must be at least 1")

// Report summarises one generation pass.
type Report struct {
	// Pass uniquely identifies the pass in logs.
	Pass uuid.UUID
	// Range is the half width of the generated grid.
	Range int
	// Cells is the number of cells generated.
	Cells int
	// Kinds is the number of cells generated per block kind.
	Kinds map[band.Kind]int
	// Wooded is the number of wooded cells.
	Wooded int
	// Placements is the number of placements per class.
	Placements map[Class]int
	// Duration is the wall time of the pass.
	Duration time.Duration
}

// TotalPlacements returns the number of placements of all classes.
func (r Report) TotalPlacements() int {
	n := 0
	for _, c := range r.Placements {
		n += c
	}
	return n
}

// Generator generates terrain into a store.Store. Passes are serialised, but
// the store may be queried while a pass is running.
type Generator struct {
	conf       Config
	log        *slog.Logger
	classifier *band.Classifier
	vegetation populate.Vegetation

	// mu serialises passes. The random source is only used while it is held.
	mu sync.Mutex
}

// Store returns the store the generator inserts records into.
func (g *Generator) Store() *store.Store {
	return g.conf.Store
}

// Metrics returns the counters accumulated over all passes.
func (g *Generator) Metrics() *Metrics {
	return g.conf.Metrics
}

// Classifier returns the elevation classifier used by the generator.
func (g *Generator) Classifier() *band.Classifier {
	return g.classifier
}

// Generate runs a pass over the configured range.
func (g *Generator) Generate() (Report, error) {
	return g.GenerateRange(g.conf.Range)
}

// GenerateRange runs a pass over [-rng, rng) on both axes. For every cell the
// terrain channel is classified, vegetation is decided, the record is
// inserted into the store and the cell's objects are placed. The first error
// aborts the pass; records inserted before it stay in the store. Running a
// second pass over coordinates already in the store fails with
// store.ErrDuplicate unless the store is cleared first.
func (g *Generator) GenerateRange(rng int) (Report, error) {
	if rng < 1 {
		return Report{}, fmt.Errorf("%w: %d", ErrInvalidRange, rng)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	p := &pass{g: g, rng: rng, half: rng / 2, m: NewMetrics()}
	rep := Report{Pass: uuid.New(), Range: rng}
	log := g.log.With("pass", rep.Pass)
	log.Info("Generating terrain.", "range", rng, "cells", 4*rng*rng)

	start := time.Now()
	err := p.run()
	rep.Duration = time.Since(start)
	g.conf.Metrics.EndPass(err)
	p.fill(&rep)

	if err != nil {
		log.Error("Terrain generation aborted.", "cells", rep.Cells, "err", err)
		return rep, err
	}
	for _, k := range band.Kinds() {
		log.Debug("Generated band.", "kind", k, "cells", rep.Kinds[k])
	}
	log.Info("Terrain generated.", "cells", rep.Cells, "wooded", rep.Wooded, "placements", rep.TotalPlacements(), "duration", rep.Duration)
	return rep, nil
}

// pass holds the state of a single generation pass.
type pass struct {
	g    *Generator
	rng  int
	half int
	m    *Metrics
}

func (p *pass) run() error {
	for x := -p.rng; x < p.rng; x++ {
		for y := -p.rng; y < p.rng; y++ {
			if err := p.cell(store.Coord{X: x, Y: y}); err != nil {
				return fmt.Errorf("generate cell %v: %w", store.Coord{X: x, Y: y}, err)
			}
		}
	}
	return nil
}

func (p *pass) cell(c store.Coord) error {
	conf := p.g.conf
	kind, elev := p.g.classifier.Classify(conf.Terrain.Sample(c.X, c.Y))
	wooded := p.g.vegetation.Wooded(elev, conf.Vegetation.Sample(c.X, c.Y), conf.Rand)

	if err := conf.Store.Insert(c, store.Record{Kind: kind, Elevation: elev, Wooded: wooded}); err != nil {
		return err
	}
	p.m.AddCell(kind, wooded)
	conf.Metrics.AddCell(kind, wooded)

	if err := p.place(ClassBlock, kind.String(), c, p.g.position(c, elev)); err != nil {
		return err
	}
	if b := kind.Band(); b == band.River || b == band.Mountains {
		return nil
	}
	top := elev + conf.Lift
	if p.inner(c) {
		if err := p.place(ClassOverlay, conf.OverlayObject, c, p.g.position(c, top)); err != nil {
			return err
		}
	}
	if wooded {
		name := conf.VegetationObjects[populate.Variant(conf.Rand, len(conf.VegetationObjects))]
		j := populate.Jitter(conf.Rand, conf.Jitter)
		pos := p.g.position(c, top).Add(mgl64.Vec3{j[0], 0, j[1]})
		if err := p.place(ClassVegetation, name, c, pos); err != nil {
			return err
		}
	}
	return nil
}

// inner reports if c lies within half of the range around the origin.
func (p *pass) inner(c store.Coord) bool {
	return c.X > -p.half && c.X < p.half && c.Y > -p.half && c.Y < p.half
}

func (p *pass) place(class Class, name string, c store.Coord, pos mgl64.Vec3) error {
	if err := p.g.conf.Sink.Place(Placement{Class: class, Name: name, Coord: c, Pos: pos}); err != nil {
		return fmt.Errorf("place %v %q: %w", class, name, err)
	}
	p.m.AddPlacement(class)
	p.g.conf.Metrics.AddPlacement(class)
	return nil
}

// fill copies the counters of the pass into rep.
func (p *pass) fill(rep *Report) {
	rep.Kinds = make(map[band.Kind]int)
	for k, n := range p.m.Cells() {
		rep.Kinds[k] = int(n)
		rep.Cells += int(n)
	}
	rep.Wooded = int(p.m.Wooded())
	rep.Placements = make(map[Class]int)
	for c, n := range p.m.Placements() {
		rep.Placements[c] = int(n)
	}
}

// position returns the world position of cell c at the elevation passed.
func (g *Generator) position(c store.Coord, elevation float64) mgl64.Vec3 {
	s := g.conf.BlockSize
	return mgl64.Vec3{float64(c.X) * s, elevation*s + g.conf.BaseHeight, float64(c.Y) * s}
}
