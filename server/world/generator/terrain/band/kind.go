package band

// Kind is the block kind chosen for a cell.
type Kind uint8

const (
	KindWater Kind = iota
	KindValley
	KindPlains
	KindHills
	KindMountainLow
	KindMountainHigh
)

var kindNames = [...]string{
	KindWater:        "water",
	KindValley:       "valley",
	KindPlains:       "plains",
	KindHills:        "hills",
	KindMountainLow:  "mountain-low",
	KindMountainHigh: "mountain-high",
}

// Kinds returns all block kinds from lowest to highest.
func Kinds() []Kind {
	return []Kind{KindWater, KindValley, KindPlains, KindHills, KindMountainLow, KindMountainHigh}
}

// String returns the block name of the kind, such as "mountain-high".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Band returns the elevation band the kind belongs to.
func (k Kind) Band() Band {
	switch k {
	case KindValley:
		return Valley
	case KindPlains:
		return Plains
	case KindHills:
		return Hills
	case KindMountainLow, KindMountainHigh:
		return Mountains
	}
	return River
}

// Band is one of the five elevation classes a terrain number falls into.
type Band uint8

const (
	River Band = iota
	Valley
	Plains
	Hills
	Mountains
)

// String returns the name of the band, such as "mountains".
func (b Band) String() string {
	switch b {
	case River:
		return "river"
	case Valley:
		return "valley"
	case Plains:
		return "plains"
	case Hills:
		return "hills"
	case Mountains:
		return "mountains"
	}
	return "unknown"
}
