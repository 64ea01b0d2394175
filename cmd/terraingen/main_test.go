package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dm-vev/terrabuilder/server/world/generator/terrain"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/band"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/store"
	"github.com/go-gl/mathgl/mgl64"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.toml")
	c, err := readConfig(context.Background(), discard(), path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if c.Generation.Range != terrain.DefaultConfig().Generation.Range {
		t.Fatalf("expected default range, got %d", c.Generation.Range)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	again, err := readConfig(context.Background(), discard(), path)
	if err != nil {
		t.Fatalf("read written config: %v", err)
	}
	if again.Terrain.Mountains != c.Terrain.Mountains || again.Vegetation.Density != c.Vegetation.Density {
		t.Fatal("written default config does not read back the same")
	}
}

func TestReadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.toml")
	data := "[Generation]\nRange = 9\nSeed = 42\nNoise = \"simplex\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := readConfig(context.Background(), discard(), path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if c.Generation.Range != 9 || c.Generation.Seed != 42 || c.Generation.Noise != "simplex" {
		t.Fatalf("overrides not applied: %+v", c.Generation)
	}
	if c.Vegetation.MaxElevation != 7 {
		t.Fatalf("missing keys should keep their defaults, got max elevation %v", c.Vegetation.MaxElevation)
	}
}

func TestReadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.toml")
	if err := os.WriteFile(path, []byte("[Generation\nRange = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := readConfig(context.Background(), discard(), path); err == nil {
		t.Fatal("expected an error for malformed toml")
	}
}

func TestRemote(t *testing.T) {
	for path, want := range map[string]bool{
		"terrain.toml":                         false,
		"/etc/terrain.toml":                    false,
		"https://example.com/terrain.toml":     true,
		"git::https://example.com/repo.git//x": true,
	} {
		if got := remote(path); got != want {
			t.Errorf("remote(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLineSink(t *testing.T) {
	var buf bytes.Buffer
	s := newLineSink(&buf)
	err := s.Place(terrain.Placement{
		Class: terrain.ClassVegetation,
		Name:  "oak",
		Coord: store.Coord{X: -3, Y: 4},
		Pos:   mgl64.Vec3{-0.3, 0.5, 0.4},
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if want := "vegetation,oak,-3,4,-0.3,0.5,0.4\n"; buf.String() != want {
		t.Fatalf("line %q, want %q", buf.String(), want)
	}
}

func TestSummarise(t *testing.T) {
	var buf bytes.Buffer
	summarise(&buf, terrain.Report{
		Cells:      12000,
		Kinds:      map[band.Kind]int{band.KindPlains: 9000, band.KindWater: 3000},
		Wooded:     1500,
		Placements: map[terrain.Class]int{terrain.ClassBlock: 12000},
	})
	out := buf.String()
	for _, want := range []string{"12,000 cells", "1,500 wooded", "plains", "75.0%", "water", "25.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q does not contain %q", out, want)
		}
	}
	if strings.Contains(out, "hills") {
		t.Errorf("summary lists kinds without cells: %q", out)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "terrain.toml")
	out := filepath.Join(dir, "placements.csv")
	seed := int64(11)
	if err := run(context.Background(), discard(), options{confPath: conf, rng: 4, seed: &seed, out: out}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	blocks := 0
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if strings.HasPrefix(line, "block,") {
			blocks++
		}
	}
	if blocks != 64 {
		t.Fatalf("%d block lines, want 64", blocks)
	}
}

func TestRunReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	conf := filepath.Join(t.TempDir(), "terrain.toml")
	err := run(context.Background(), discard(), options{confPath: conf, rng: 1, out: "/dev/full"})
	if err == nil || !strings.Contains(err.Error(), "write placements") {
		t.Fatalf("expected a write placements error, got %v", err)
	}
}

func TestRunZeroSeedOverride(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "terrain.toml")
	data := "[Generation]\nRange = 8\nSeed = 42\n"
	if err := os.WriteFile(conf, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	placements := func(seed *int64) string {
		out := filepath.Join(dir, "placements.csv")
		if err := run(context.Background(), discard(), options{confPath: conf, seed: seed, out: out}); err != nil {
			t.Fatalf("run: %v", err)
		}
		b, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}
	zero, fortyTwo := int64(0), int64(42)
	fromFile := placements(nil)
	if placements(&fortyTwo) != fromFile {
		t.Fatal("explicit seed equal to the configured one changed the output")
	}
	if placements(&zero) == fromFile {
		t.Fatal("explicit zero seed did not override the configured seed")
	}
}
