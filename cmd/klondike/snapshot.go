package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/klondike/internal/fileutil"
	"github.com/lox/klondike/internal/klondike"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/render"
)

var errScaleTooSmall = errors.New("scale below drawscale_min")

type SnapshotCmd struct {
	Seeds []int64 `arg:"" optional:"" help:"Seeds to deal (one random seed when empty)"`
	Out   string  `short:"o" default:"." type:"existingdir" help:"Output directory"`
	Scale float64 `default:"16" help:"Drawscale in pixels per inch"`
	Draws int     `default:"0" help:"Cards to turn from the deck before rendering"`
	Jobs  int     `short:"j" default:"4" help:"Tables rendered in parallel"`
}

// snapshotOpts is everything one render needs; each goroutine builds its own
// table and compositor from it.
type snapshotOpts struct {
	geom   klondike.Geometry
	rules  klondike.Rules
	scale  float64
	draws  int
	debug  bool
	logger *log.Logger
}

func (c *SnapshotCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg)
	if err != nil {
		return err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}
	if c.Scale < cfg.Display.DrawscaleMin {
		return fmt.Errorf("--scale %g < %g: %w", c.Scale, cfg.Display.DrawscaleMin, errScaleTooSmall)
	}

	opts := snapshotOpts{
		geom:   cfg.Geometry(),
		rules:  rules,
		scale:  c.Scale,
		draws:  c.Draws,
		debug:  cfg.Display.Debug,
		logger: logger,
	}

	seeds := c.Seeds
	if len(seeds) == 0 {
		_, seed := randutil.FromFlag(nil)
		seeds = []int64{seed}
	}

	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(max(c.Jobs, 1))

	for _, seed := range seeds {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(c.Out, fmt.Sprintf("klondike-%d.png", seed))
			if err := renderSnapshot(path, seed, opts); err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			logger.Info("Wrote snapshot", "seed", seed, "path", path)
			return nil
		})
	}
	return eg.Wait()
}

func renderSnapshot(path string, seed int64, s snapshotOpts) error {
	t, err := klondike.NewTable(randutil.New(seed),
		klondike.WithGeometry(s.geom),
		klondike.WithRules(s.rules),
		klondike.WithLogger(s.logger),
	)
	if err != nil {
		return err
	}
	for range s.draws {
		if err := t.Draw(); err != nil {
			return err
		}
	}

	c := render.New(t, render.NewLayout(s.geom, s.scale),
		render.WithLogger(s.logger),
		render.WithDebug(s.debug),
	)
	if _, err := c.Frame(); err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, 0o644, c.Snapshot)
}
