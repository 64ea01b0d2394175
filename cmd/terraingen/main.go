// Command terraingen generates a terrain grid, optionally writes every
// placement to a file and optionally serves a query console on the result.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dm-vev/terrabuilder/server/console"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain"
	"github.com/dm-vev/terrabuilder/server/world/generator/terrain/band"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// options are the command line options of terraingen.
type options struct {
	confPath string
	// rng overrides the configured range if positive.
	rng int
	// seed overrides the configured seed if non-nil.
	seed    *int64
	out     string
	console bool
}

func main() {
	var (
		confPath = flag.String("config", "terrain.toml", "path or URL of the terrain config")
		rng      = flag.Int("range", 0, "override the half width of the grid")
		seed     = flag.Int64("seed", 0, "override the generation seed")
		out      = flag.String("out", "", "write placements to this file, - for stdout")
		query    = flag.Bool("console", false, "read queries from stdin after generating")
		debug    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	opts := options{confPath: *confPath, rng: *rng, out: *out, console: *query}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seed = seed
		}
	})

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, log, opts); err != nil {
		log.Error("Terrain generation failed.", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, opts options) (err error) {
	uc, err := readConfig(ctx, log, opts.confPath)
	if err != nil {
		return err
	}
	if opts.rng > 0 {
		uc.Generation.Range = opts.rng
	}
	if opts.seed != nil {
		uc.Generation.Seed = *opts.seed
	}
	conf, err := uc.Config(log)
	if err != nil {
		return err
	}

	var bw *bufio.Writer
	if opts.out != "" {
		var w io.Writer = os.Stdout
		if opts.out != "-" {
			f, cerr := os.Create(opts.out)
			if cerr != nil {
				return fmt.Errorf("create placement file: %w", cerr)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("close placement file: %w", cerr)
				}
			}()
			w = f
		}
		bw = bufio.NewWriter(w)
		conf.Sink = newLineSink(bw)
	}

	g, err := conf.New()
	if err != nil {
		return err
	}
	rep, err := g.Generate()
	if err != nil {
		return err
	}
	if bw != nil {
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("write placements: %w", err)
		}
	}
	summarise(os.Stderr, rep)

	if opts.console {
		console.New(g.Store(), log).Run(ctx)
	}
	return nil
}

// summarise writes a human readable summary of rep to w.
func summarise(w io.Writer, rep terrain.Report) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Generated %d cells in %v: %d wooded, %d placements.\n", rep.Cells, rep.Duration, rep.Wooded, rep.TotalPlacements())
	for _, k := range band.Kinds() {
		if n := rep.Kinds[k]; n > 0 {
			p.Fprintf(w, "  %-14s %8d (%.1f%%)\n", k, n, 100*float64(n)/float64(rep.Cells))
		}
	}
}
