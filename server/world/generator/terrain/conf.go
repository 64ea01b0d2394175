package terrain

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/band"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/noise"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/populate"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/store"
)

// Config contains options for creating a terrain Generator.
type Config struct {
	// Log is the Logger to use for logging generation passes. If nil, Log is
	// set to slog.Default().
	Log *slog.Logger
	// Sink receives a placement for every object the generator wants in the
	// host scene. If nil, placements are discarded and only the Store is
	// populated.
	Sink Sink
	// Store is the store generated records are inserted into. If nil, a new
	// store sized for Range is created. Passing the same store to several
	// generators makes their results share one coordinate space, so their
	// ranges must not overlap.
	Store *store.Store
	// Metrics accumulates counters across all passes of the generator. If
	// nil, a new registry is created.
	Metrics *Metrics
	// Rand is the random source for vegetation decisions, vegetation variants
	// and placement jitter. If nil, a source seeded from Seed is used, which
	// makes passes reproducible.
	Rand populate.Rand
	// Seed seeds the default noise fields and the default random source.
	Seed int64
	// Range is the half width of the generated grid: Generate covers
	// [-Range, Range) on both axes. Overlays are only placed within half of
	// Range around the origin.
	Range int
	// Terrain is the noise channel classified into bands. If Terrain.Field is
	// nil, Perlin noise seeded from Seed is used.
	Terrain noise.Channel
	// Vegetation is the noise channel gating vegetation. It should sample a
	// part of noise space far from Terrain. If Vegetation.Field is nil, Perlin
	// noise seeded from Seed is used.
	Vegetation noise.Channel
	// Band configures the elevation classifier.
	Band band.Config
	// VegetationMaxElevation is the elevation above which no vegetation
	// grows. It must exceed VegetationFrequency.
	VegetationMaxElevation float64
	// VegetationFrequency is the vegetation noise threshold: cells sampling
	// above it are never wooded.
	VegetationFrequency float64
	// VegetationDensity scales the chance of eligible cells being wooded. It
	// must lie within [0, 1].
	VegetationDensity float64
	// VegetationObjects are the names of the vegetation objects placed on
	// wooded cells. Each wooded cell picks one uniformly. Defaults to "tree".
	VegetationObjects []string
	// OverlayObject is the name of the overlay object. Defaults to "plane".
	OverlayObject string
	// BlockSize is the world size of one grid cell and of one elevation unit.
	// Defaults to 0.1.
	BlockSize float64
	// BaseHeight is added to the world height of every placement.
	BaseHeight float64
	// Jitter is the maximum horizontal offset applied to vegetation
	// placements in world units.
	Jitter float64
	// Lift is the number of elevation units overlays and vegetation are
	// placed above their cell.
	Lift float64
}

// New creates a Generator using the fields of conf. An error is returned if
// the band or vegetation parameters are invalid.
func (conf Config) New() (*Generator, error) {
	if conf.Range < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRange, conf.Range)
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Sink == nil {
		conf.Sink = NopSink{}
	}
	if conf.Store == nil {
		conf.Store = store.New(4 * conf.Range * conf.Range)
	}
	if conf.Metrics == nil {
		conf.Metrics = NewMetrics()
	}
	if conf.Rand == nil {
		conf.Rand = rand.New(rand.NewPCG(uint64(conf.Seed), uint64(noise.Seed("placement", conf.Seed))))
	}
	if conf.Terrain.Field == nil {
		conf.Terrain.Field = noise.NewPerlin(noise.Seed("terrain", conf.Seed))
	}
	if conf.Vegetation.Field == nil {
		conf.Vegetation.Field = noise.NewPerlin(noise.Seed("vegetation", conf.Seed))
	}
	if len(conf.VegetationObjects) == 0 {
		conf.VegetationObjects = []string{"tree"}
	}
	if conf.OverlayObject == "" {
		conf.OverlayObject = "plane"
	}
	if conf.BlockSize == 0 {
		conf.BlockSize = 0.1
	}

	classifier, err := band.NewClassifier(conf.Band)
	if err != nil {
		return nil, fmt.Errorf("create classifier: %w", err)
	}
	vegetation, err := populate.NewVegetation(conf.VegetationMaxElevation, conf.VegetationFrequency, conf.VegetationDensity)
	if err != nil {
		return nil, fmt.Errorf("create vegetation model: %w", err)
	}
	return &Generator{
		conf:       conf,
		log:        conf.Log,
		classifier: classifier,
		vegetation: vegetation,
	}, nil
}

// StepConfig is the serialisable form of band.Step.
type StepConfig struct {
	// Bottom and Top are the terrain numbers the steps are spread over.
	Bottom, Top int
	// Size is the elevation difference between two plateaus.
	Size float64
	// Count is the number of plateaus between Bottom and Top.
	Count float64
	// Min is the elevation of the lowest plateau.
	Min float64
}

func (s StepConfig) step() band.Step {
	return band.Step{Bottom: s.Bottom, Top: s.Top, Size: s.Size, Count: s.Count, Min: s.Min}
}

// UserConfig is the user configuration of a terrain generator. UserConfig may
// be serialised and can be converted to a Config by calling
// UserConfig.Config().
type UserConfig struct {
	Generation struct {
		// Range is the half width of the generated grid.
		Range int
		// Seed seeds the noise fields and the random source.
		Seed int64
		// Noise is the noise backend: "perlin" or "simplex".
		Noise string
	}
	Terrain struct {
		// BaseX, BaseY and Grain place the terrain channel in noise space.
		BaseX, BaseY, Grain float64
		// Amplitude and Offset shape noise before it is turned into a
		// terrain number. An Amplitude of 0 is treated as 1.
		Amplitude, Offset float64
		// MountainStart, HillsStart, ValleyStart and WaterLevel are the band
		// thresholds in terrain numbers.
		MountainStart, HillsStart, ValleyStart, WaterLevel int
		// HighMountainElevation is the elevation above which mountains use the
		// high mountain block.
		HighMountainElevation float64
		// ValleyElevation and WaterElevation are the flat elevations of the
		// valley and river bands.
		ValleyElevation, WaterElevation float64
		// Mountains, Hills and Plains step the elevation of their band.
		Mountains, Hills, Plains StepConfig
	}
	Vegetation struct {
		// BaseX, BaseY and Grain place the vegetation channel in noise space.
		BaseX, BaseY, Grain float64
		// Frequency is the vegetation noise threshold.
		Frequency float64
		// Density scales the overall amount of vegetation.
		Density float64
		// MaxElevation is the elevation above which no vegetation grows.
		MaxElevation float64
		// Objects are the vegetation object names picked from at random.
		Objects []string
	}
	Placement struct {
		// BlockSize is the world size of one cell.
		BlockSize float64
		// BaseHeight is added to the height of every placement.
		BaseHeight float64
		// Jitter is the maximum horizontal offset of vegetation.
		Jitter float64
		// Lift is how many elevation units overlays and vegetation float
		// above their cell.
		Lift float64
		// Overlay is the name of the overlay object.
		Overlay string
	}
}

// Config converts a UserConfig to a Config, so that it may be used for
// creating a Generator. An error is returned if the noise backend is unknown.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	seed := uc.Generation.Seed
	terrainField, err := noise.New(uc.Generation.Noise, noise.Seed("terrain", seed))
	if err != nil {
		return Config{}, fmt.Errorf("create terrain noise: %w", err)
	}
	vegetationField, err := noise.New(uc.Generation.Noise, noise.Seed("vegetation", seed))
	if err != nil {
		return Config{}, fmt.Errorf("create vegetation noise: %w", err)
	}
	t, v, p := uc.Terrain, uc.Vegetation, uc.Placement
	return Config{
		Log:   log,
		Seed:  seed,
		Range: uc.Generation.Range,
		Terrain: noise.Channel{
			BaseX: t.BaseX, BaseY: t.BaseY, Grain: t.Grain, Field: terrainField,
		},
		Vegetation: noise.Channel{
			BaseX: v.BaseX, BaseY: v.BaseY, Grain: v.Grain, Field: vegetationField,
		},
		Band: band.Config{
			Amplitude: t.Amplitude,
			Offset:    t.Offset,
			Thresholds: band.Thresholds{
				MountainStart: t.MountainStart,
				HillsStart:    t.HillsStart,
				ValleyStart:   t.ValleyStart,
				WaterLevel:    t.WaterLevel,
			},
			Mountains:             t.Mountains.step(),
			Hills:                 t.Hills.step(),
			Plains:                t.Plains.step(),
			ValleyElevation:       t.ValleyElevation,
			WaterElevation:        t.WaterElevation,
			HighMountainElevation: t.HighMountainElevation,
		},
		VegetationMaxElevation: v.MaxElevation,
		VegetationFrequency:    v.Frequency,
		VegetationDensity:      v.Density,
		VegetationObjects:      v.Objects,
		OverlayObject:          p.Overlay,
		BlockSize:              p.BlockSize,
		BaseHeight:             p.BaseHeight,
		Jitter:                 p.Jitter,
		Lift:                   p.Lift,
	}, nil
}

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.Generation.Range = 64
	c.Generation.Seed = 0
	c.Generation.Noise = "perlin"
	c.Terrain.BaseX = 1024.37
	c.Terrain.BaseY = 512.81
	c.Terrain.Grain = 0.045
	c.Terrain.Amplitude = 1.25
	c.Terrain.Offset = -0.1
	c.Terrain.MountainStart = 90
	c.Terrain.HillsStart = 60
	c.Terrain.ValleyStart = 20
	c.Terrain.WaterLevel = 5
	c.Terrain.HighMountainElevation = 12
	c.Terrain.ValleyElevation = 1
	c.Terrain.WaterElevation = 0.5
	c.Terrain.Mountains = StepConfig{Bottom: 60, Top: 90, Size: 1, Count: 10, Min: -0.5}
	c.Terrain.Hills = StepConfig{Bottom: 60, Top: 90, Size: 0.5, Count: 10, Min: 4}
	c.Terrain.Plains = StepConfig{Bottom: 20, Top: 60, Size: 0.5, Count: 5, Min: 1.5}
	c.Vegetation.BaseX = 8192.53
	c.Vegetation.BaseY = 4096.29
	c.Vegetation.Grain = 0.2
	c.Vegetation.Frequency = 0.45
	c.Vegetation.Density = 0.6
	c.Vegetation.MaxElevation = 7
	c.Vegetation.Objects = []string{"oak", "birch", "spruce"}
	c.Placement.BlockSize = 0.1
	c.Placement.BaseHeight = 0
	c.Placement.Jitter = 0.03
	c.Placement.Lift = 1
	c.Placement.Overlay = "plane"
	return c
}
