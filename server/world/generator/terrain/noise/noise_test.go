package noise

import (
	"errors"
	"math"
	"testing"
)

func backends(seed int64) map[string]Field {
	return map[string]Field{
		"perlin":  NewPerlin(seed),
		"simplex": NewSimplex(seed),
	}
}

func TestFieldDeterministic(t *testing.T) {
	for name, f := range backends(12345) {
		g := backends(12345)[name]
		for i := 0; i < 100; i++ {
			x, y := float64(i)*0.13+0.5, float64(i)*0.27-3.1
			if f.At(x, y) != g.At(x, y) {
				t.Fatalf("%s: At(%f, %f) not deterministic", name, x, y)
			}
		}
	}
}

func TestFieldRange(t *testing.T) {
	for name, f := range backends(42) {
		for i := 0; i < 10000; i++ {
			x := float64(i)*0.37 - 500
			y := float64(i)*0.53 - 500
			v := f.At(x, y)
			if v < 0 || v >= 1 {
				t.Fatalf("%s: At(%f, %f) = %f, out of [0,1)", name, x, y, v)
			}
		}
	}
}

func TestFieldSmooth(t *testing.T) {
	for name, f := range backends(456) {
		prev := f.At(0.5, 0.5)
		for i := 1; i < 1000; i++ {
			curr := f.At(0.5+float64(i)*0.001, 0.5)
			if diff := math.Abs(curr - prev); diff > 0.05 {
				t.Fatalf("%s: noise changed too rapidly at step %d: diff=%f", name, i, diff)
			}
			prev = curr
		}
	}
}

func TestDifferentSeedsDifferentNoise(t *testing.T) {
	for name, f := range backends(1) {
		g := backends(2)[name]
		different := false
		for i := 0; i < 100; i++ {
			x, y := float64(i)*0.1+0.05, float64(i)*0.2+0.05
			if f.At(x, y) != g.At(x, y) {
				different = true
				break
			}
		}
		if !different {
			t.Errorf("%s: different seeds should produce different noise", name)
		}
	}
}

func TestChannelSample(t *testing.T) {
	var gotX, gotY float64
	c := Channel{BaseX: 10, BaseY: -4, Grain: 0.5, Field: FieldFunc(func(x, y float64) float64 {
		gotX, gotY = x, y
		return 0.25
	})}
	if v := c.Sample(3, -2); v != 0.25 {
		t.Fatalf("Sample returned %f, want 0.25", v)
	}
	if gotX != 11.5 || gotY != -5 {
		t.Fatalf("Sample evaluated field at (%f, %f), want (11.5, -5)", gotX, gotY)
	}
}

func TestConstant(t *testing.T) {
	c := Channel{Grain: 1, Field: Constant(0.95)}
	for i := -3; i < 3; i++ {
		if v := c.Sample(i, i*7); v != 0.95 {
			t.Fatalf("Constant sample = %f, want 0.95", v)
		}
	}
}

func TestNewBackend(t *testing.T) {
	if f, err := New("", 1); err != nil {
		t.Fatalf("New(\"\"): %v", err)
	} else if _, ok := f.(*Perlin); !ok {
		t.Fatalf("New(\"\") returned %T, want *Perlin", f)
	}
	if f, err := New("Simplex", 1); err != nil {
		t.Fatalf("New(Simplex): %v", err)
	} else if _, ok := f.(*Simplex); !ok {
		t.Fatalf("New(Simplex) returned %T, want *Simplex", f)
	}
	if _, err := New("value", 1); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestSeedPerChannel(t *testing.T) {
	if Seed("terrain", 7) == Seed("vegetation", 7) {
		t.Fatal("channels of the same world must not share a seed")
	}
	if Seed("terrain", 7) != Seed("terrain", 7) {
		t.Fatal("Seed must be deterministic")
	}
	if Seed("terrain", 7) == Seed("terrain", 8) {
		t.Fatal("different world seeds should produce different channel seeds")
	}
}

func TestUnit(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{-0.2, 0},
		{0, 0},
		{0.5, 0.5},
		{1, belowOne},
		{1.7, belowOne},
		{math.NaN(), 0},
	} {
		if got := unit(tc.in); got != tc.want {
			t.Errorf("unit(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
