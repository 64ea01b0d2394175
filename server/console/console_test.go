package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/band"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(0)
	for c, r := range map[store.Coord]store.Record{
		{X: 0, Y: 0}:  {Kind: band.KindPlains, Elevation: 2.5, Wooded: true},
		{X: 1, Y: -1}: {Kind: band.KindWater, Elevation: 0.5},
	} {
		if err := s.Insert(c, r); err != nil {
			t.Fatalf("insert %v: %v", c, err)
		}
	}
	return s
}

func TestExec(t *testing.T) {
	c := New(testStore(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	for line, want := range map[string]string{
		"alt 0 0":    "2.5",
		"alt 5 5":    "-1",
		"ALT 1 -1":   "0.5",
		"tree 0 0":   "true",
		"tree 1 -1":  "false",
		"tree 9 9":   "false",
		"block 0 0":  "plains,2.5,1",
		"block 1 -1": "water,0.5,0",
		"block 2 2":  "2,2 not generated",
		"stats":      "cells=2 wooded=1 water=1 valley=0 plains=1 hills=0 mountain-low=0 mountain-high=0",
	} {
		got, err := c.Exec(line)
		if err != nil {
			t.Errorf("Exec(%q): %v", line, err)
			continue
		}
		if got != want {
			t.Errorf("Exec(%q) = %q, want %q", line, got, want)
		}
	}
}

func TestExecErrors(t *testing.T) {
	c := New(testStore(t), nil)
	for line, want := range map[string]error{
		"dig 0 0":   ErrUnknownCommand,
		"alt 0":     ErrUsage,
		"tree a 0":  ErrUsage,
		"block 0 b": ErrUsage,
		"   ":       ErrUsage,
	} {
		if _, err := c.Exec(line); !errors.Is(err, want) {
			t.Errorf("Exec(%q): expected %v, got %v", line, want, err)
		}
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("alt 0 0\n\n/tree 0 0\nbogus\nblock 1 -1\n")
	New(testStore(t), slog.New(slog.NewTextHandler(io.Discard, nil))).
		WithReader(in).
		WithWriter(&out).
		Run(context.Background())

	want := "2.5\ntrue\nwater,0.5,0\n"
	if out.String() != want {
		t.Fatalf("console output %q, want %q", out.String(), want)
	}
}

func TestRunCancelled(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	New(testStore(t), nil).WithReader(strings.NewReader("alt 0 0\n")).WithWriter(&out).Run(ctx)
	if out.Len() != 0 {
		t.Fatalf("cancelled console wrote %q", out.String())
	}
}
