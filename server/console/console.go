package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/band"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/store"
)

var (
	// ErrUnknownCommand is returned by Exec for a command name it does not
	// know.
	ErrUnknownCommand = errors.New("console: unknown command")
	// ErrUsage is returned by Exec if a command was passed the wrong
	// arguments.
	ErrUsage = errors.New("console: invalid arguments")
)

// Console provides a simple line based query interface on top of a terrain
// store. It reads commands from an io.Reader (defaulting to os.Stdin) and
// writes answers to an io.Writer (defaulting to os.Stdout).
type Console struct {
	s      *store.Store
	log    *slog.Logger
	reader io.Reader
	writer io.Writer
}

// New returns a Console bound to the store passed. Command errors are written
// to the supplied logger.
func New(s *store.Store, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{
		s:      s,
		log:    log,
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// WithReader sets a custom reader for the console input. It enables testing the
// console without relying on os.Stdin.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// WithWriter sets a custom writer for command output.
func (c *Console) WithWriter(w io.Writer) *Console {
	if w != nil {
		c.writer = w
	}
	return c
}

// Run starts consuming commands from the console. It blocks until the context
// is cancelled or the underlying reader reaches EOF.
func (c *Console) Run(ctx context.Context) {
	scanner := bufio.NewScanner(c.reader)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("Console input error.", "err", err)
			}
			return
		}
		line := strings.TrimPrefix(strings.TrimSpace(scanner.Text()), "/")
		if line == "" {
			continue
		}
		out, err := c.Exec(line)
		if err != nil {
			c.log.Error("Command failed.", "line", line, "err", err)
			continue
		}
		_, _ = fmt.Fprintln(c.writer, out)
	}
}

// Exec executes a single command line and returns its output. Supported
// commands:
//
//	alt <x> <y>    altitude of a cell, -1 if not generated
//	tree <x> <y>   whether a cell is wooded
//	block <x> <y>  the full record of a cell
//	stats          number of cells per block kind
//	help           list of commands
func (c *Console) Exec(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", fmt.Errorf("%w: empty line", ErrUsage)
	}
	switch name := strings.ToLower(args[0]); name {
	case "alt", "altitude":
		x, y, err := coords(name, args[1:])
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(c.s.AltitudeOf(x, y), 'g', -1, 64), nil
	case "tree", "wooded":
		x, y, err := coords(name, args[1:])
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(c.s.IsWooded(x, y)), nil
	case "block":
		x, y, err := coords(name, args[1:])
		if err != nil {
			return "", err
		}
		r, ok := c.s.Lookup(store.Coord{X: x, Y: y})
		if !ok {
			return fmt.Sprintf("%d,%d not generated", x, y), nil
		}
		return r.String(), nil
	case "stats":
		return c.stats(), nil
	case "help", "?":
		return "alt <x> <y> | tree <x> <y> | block <x> <y> | stats | help", nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownCommand, args[0])
	}
}

// stats summarises the records of the store per block kind.
func (c *Console) stats() string {
	counts := make(map[band.Kind]int)
	wooded := 0
	c.s.Each(func(_ store.Coord, r store.Record) bool {
		counts[r.Kind]++
		if r.Wooded {
			wooded++
		}
		return true
	})
	var b strings.Builder
	fmt.Fprintf(&b, "cells=%d wooded=%d", c.s.Len(), wooded)
	for _, k := range band.Kinds() {
		fmt.Fprintf(&b, " %v=%d", k, counts[k])
	}
	return b.String()
}

func coords(name string, args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%w: usage: %s <x> <y>", ErrUsage, name)
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: parse x: %v", ErrUsage, err)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: parse y: %v", ErrUsage, err)
	}
	return x, y, nil
}
