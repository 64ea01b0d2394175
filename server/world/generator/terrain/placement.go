package terrain

import (
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/store"
	"github.com/go-gl/mathgl/mgl64"
)

// Class is the role of a placed object.
type Class uint8

const (
	// ClassBlock is the terrain block of a cell.
	ClassBlock Class = iota
	// ClassOverlay is the walkable plane placed on top of land cells close to
	// the origin.
	ClassOverlay
	// ClassVegetation is a vegetation object placed on a wooded cell.
	ClassVegetation
)

func (c Class) String() string {
	switch c {
	case ClassBlock:
		return "block"
	case ClassOverlay:
		return "overlay"
	case ClassVegetation:
		return "vegetation"
	}
	return "unknown"
}

// Placement is a request to put an object into the host scene.
type Placement struct {
	// Class is the role of the object.
	Class Class
	// Name identifies the object to instantiate: the block kind for blocks
	// and the configured object name for overlays and vegetation.
	Name string
	// Coord is the grid cell the object belongs to.
	Coord store.Coord
	// Pos is the world position of the object. X and Z follow the grid while
	// Y is the height.
	Pos mgl64.Vec3
}

// Sink receives placements from a Generator. It is responsible for actually
// instantiating the objects. An error returned by Place aborts the pass.
type Sink interface {
	Place(p Placement) error
}

// SinkFunc is a function that implements Sink.
type SinkFunc func(p Placement) error

// Place ...
func (f SinkFunc) Place(p Placement) error {
	return f(p)
}

// NopSink is a Sink that discards all placements.
type NopSink struct{}

// Place ...
func (NopSink) Place(Placement) error { return nil }
