package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/config"
)

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"klondike.hcl" help:"Path to HCL configuration file"`
	Rules    string `short:"r" help:"Drop rules: klondike or free (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	LogFile  string `help:"Log file path for play (overrides config)"`
	Debug    bool   `help:"Draw hit overlays in the frame corner"`
}

// load reads the config file and applies flag overrides.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return nil, err
	}

	if g.Rules != "" {
		cfg.Display.Rules = g.Rules
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	if g.Debug {
		cfg.Display.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger creates the process logger writing to w
func newLogger(w io.Writer, cfg *config.Config) (*log.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "klondike",
		Level:           level,
	}), nil
}
