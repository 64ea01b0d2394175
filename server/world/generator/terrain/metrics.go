package terrain

import (
	"maps"
	"sync"

	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/band"
)

// Metrics counts the cells and placements produced by generation passes. A
// nil *Metrics discards all updates.
type Metrics struct {
	mu sync.Mutex

	cells      map[band.Kind]uint64
	wooded     uint64
	placements map[Class]uint64
	passes     uint64
	aborted    uint64
}

// NewMetrics creates an empty metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{
		cells:      make(map[band.Kind]uint64),
		placements: make(map[Class]uint64),
	}
}

// AddCell counts a generated cell of the kind passed.
func (m *Metrics) AddCell(kind band.Kind, wooded bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.cells[kind]++
	if wooded {
		m.wooded++
	}
	m.mu.Unlock()
}

// AddPlacement counts a placement of the class passed.
func (m *Metrics) AddPlacement(c Class) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.placements[c]++
	m.mu.Unlock()
}

// EndPass counts a finished pass.
func (m *Metrics) EndPass(err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.passes++
	if err != nil {
		m.aborted++
	}
	m.mu.Unlock()
}

// Cells returns the number of generated cells per block kind.
func (m *Metrics) Cells() map[band.Kind]uint64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.cells)
}

// Wooded returns the number of wooded cells.
func (m *Metrics) Wooded() uint64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wooded
}

// Placements returns the number of placements per class.
func (m *Metrics) Placements() map[Class]uint64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.placements)
}

// Passes returns the number of finished passes and how many of them were
// aborted.
func (m *Metrics) Passes() (total, aborted uint64) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.passes, m.aborted
}
