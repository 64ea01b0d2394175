// Package store holds the result of terrain generation indexed by grid
// coordinate. Records are write-once: a coordinate is generated exactly once
// per pass and may only be generated again after the store is cleared.
package store

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"sync"

	"github.com/brentp/intintmap"
	"github.com/cespare/xxhash/v2"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/band"
)

// UnknownAltitude is returned by AltitudeOf for coordinates that were never
// generated. Generated elevations are never negative: band.NewClassifier
// rejects configurations that could produce one.
const UnknownAltitude = -1.0

var (
	// ErrDuplicate is returned by Insert if the coordinate already holds a
	// record.
	ErrDuplicate = errors.New("store: coordinate already generated")
	// ErrOutOfRange is returned by Insert for coordinates that do not fit in
	// 32 bits.
	ErrOutOfRange = errors.New("store: coordinate out of range")
)

const fillFactor = 0.6

// Coord is the grid address of a cell.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

func (c Coord) valid() bool {
	return c.X >= math.MinInt32 && c.X <= math.MaxInt32 && c.Y >= math.MinInt32 && c.Y <= math.MaxInt32
}

// key packs c into a single int64. c must be valid.
func (c Coord) key() int64 {
	return int64(c.X)<<32 | int64(uint32(c.Y))
}

// Record is the generation result of one cell.
type Record struct {
	Kind      band.Kind
	Elevation float64
	Wooded    bool
}

// String renders the record as name,elevation,wooded with wooded as 0 or 1.
func (r Record) String() string {
	wooded := 0
	if r.Wooded {
		wooded = 1
	}
	return fmt.Sprintf("%s,%s,%d", r.Kind, strconv.FormatFloat(r.Elevation, 'g', -1, 64), wooded)
}

// Store maps coordinates to records. It is safe for concurrent use: lookups
// may run alongside an Insert from a generation pass.
type Store struct {
	mu      sync.RWMutex
	hint    int
	index   *intintmap.Map
	coords  []Coord
	records []Record
}

// New returns an empty Store sized for roughly sizeHint records.
func New(sizeHint int) *Store {
	s := &Store{hint: max(sizeHint, 16)}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.index = intintmap.New(s.hint, fillFactor)
	s.coords = make([]Coord, 0, s.hint)
	s.records = make([]Record, 0, s.hint)
}

// Insert stores r at c. If c already holds a record, ErrDuplicate is returned
// and the existing record is left untouched.
func (s *Store) Insert(c Coord, r Record) error {
	if !c.valid() {
		return fmt.Errorf("insert %v: %w", c, ErrOutOfRange)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k := c.key()
	if _, ok := s.index.Get(k); ok {
		return fmt.Errorf("insert %v: %w", c, ErrDuplicate)
	}
	s.index.Put(k, int64(len(s.records)))
	s.coords = append(s.coords, c)
	s.records = append(s.records, r)
	return nil
}

// Lookup returns the record at c and true, or false if c was never generated.
func (s *Store) Lookup(c Coord) (Record, bool) {
	if !c.valid() {
		return Record{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index.Get(c.key())
	if !ok {
		return Record{}, false
	}
	return s.records[i], true
}

// AltitudeOf returns the elevation at (x, y), or UnknownAltitude if the cell
// was never generated.
func (s *Store) AltitudeOf(x, y int) float64 {
	r, ok := s.Lookup(Coord{X: x, Y: y})
	if !ok {
		return UnknownAltitude
	}
	return r.Elevation
}

// IsWooded reports if the cell at (x, y) holds vegetation. Cells that were
// never generated are not wooded.
func (s *Store) IsWooded(x, y int) bool {
	r, _ := s.Lookup(Coord{X: x, Y: y})
	return r.Wooded
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear removes all records so that the same coordinates may be generated
// again.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Each calls fn for every record in insertion order until fn returns false.
// The store is read-locked while Each runs, so fn must not call Insert or
// Clear.
func (s *Store) Each(fn func(c Coord, r Record) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, c := range s.coords {
		if !fn(c, s.records[i]) {
			return
		}
	}
}

// Checksum returns a fingerprint of the contents of the store that does not
// depend on insertion order. Two stores holding the same records have the
// same checksum.
func (s *Store) Checksum() uint64 {
	s.mu.RLock()
	order := make([]int, len(s.coords))
	for i := range order {
		order[i] = i
	}
	coords, records := s.coords, s.records
	s.mu.RUnlock()

	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(coords[a].X, coords[b].X); c != 0 {
			return c
		}
		return cmp.Compare(coords[a].Y, coords[b].Y)
	})

	d := xxhash.New()
	var buf [25]byte
	for _, i := range order {
		c, r := coords[i], records[i]
		binary.LittleEndian.PutUint64(buf[0:], uint64(c.key()))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(r.Elevation))
		binary.LittleEndian.PutUint64(buf[16:], uint64(r.Kind))
		buf[24] = 0
		if r.Wooded {
			buf[24] = 1
		}
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
