package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"

	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/tui"
)

type PlayCmd struct {
	Seed *int64 `help:"Deal seed (random when unset)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger, err := newLogger(logFile, cfg)
	if err != nil {
		return err
	}

	rules, err := cfg.Rules()
	if err != nil {
		return err
	}
	profile, err := cfg.Profile()
	if err != nil {
		return err
	}

	rng, seed := randutil.FromFlag(c.Seed)
	logger.Info("Starting klondike", "seed", seed, "rules", rules, "config", g.Config)

	model, err := tui.New(tui.Settings{
		Geometry:     cfg.Geometry(),
		Rules:        rules,
		DrawscaleMin: cfg.Display.DrawscaleMin,
		DrawscaleMax: cfg.Display.DrawscaleMax,
		Debug:        cfg.Display.Debug,
		Profile:      profile,
		Clock:        quartz.NewReal(),
		Logger:       logger,
		Rand:         rng,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}
	if err := model.Err(); err != nil {
		return err
	}

	logger.Info("Exiting", "seed", seed)
	return nil
}
