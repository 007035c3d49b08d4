// Package config loads klondike settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/muesli/termenv"

	"github.com/lox/klondike/internal/klondike"
)

// Config is the complete klondike configuration
type Config struct {
	Table   TableSettings
	Display DisplaySettings
	Log     LogSettings
}

// TableSettings are card dimensions and margins in base units (inches).
type TableSettings struct {
	CardWidth     float64 `hcl:"card_width,optional"`
	CardHeight    float64 `hcl:"card_height,optional"`
	CardThickness float64 `hcl:"card_thickness,optional"`
	MarginHorz    float64 `hcl:"margin_horz,optional"`
	MarginVert    float64 `hcl:"margin_vert,optional"`
	MarginTop     float64 `hcl:"margin_top,optional"`
	MarginRight   float64 `hcl:"margin_right,optional"`
	MarginBottom  float64 `hcl:"margin_bottom,optional"`
	MarginLeft    float64 `hcl:"margin_left,optional"`
}

// DisplaySettings control rendering and input
type DisplaySettings struct {
	DrawscaleMin float64 `hcl:"drawscale_min,optional"`
	DrawscaleMax float64 `hcl:"drawscale_max,optional"`
	Rules        string  `hcl:"rules,optional"`
	ColorProfile string  `hcl:"color_profile,optional"`
	Debug        bool    `hcl:"debug,optional"`
}

// LogSettings control the log file
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// file mirrors Config with optional blocks
type file struct {
	Table   *TableSettings   `hcl:"table,block"`
	Display *DisplaySettings `hcl:"display,block"`
	Log     *LogSettings     `hcl:"log,block"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	g := klondike.DefaultGeometry()
	return &Config{
		Table: TableSettings{
			CardWidth:     g.CardWidth,
			CardHeight:    g.CardHeight,
			CardThickness: g.CardThickness,
			MarginHorz:    g.ElemHorz,
			MarginVert:    g.ElemVert,
			MarginTop:     g.MarginTop,
			MarginRight:   g.MarginRight,
			MarginBottom:  g.MarginBottom,
			MarginLeft:    g.MarginLeft,
		},
		Display: DisplaySettings{
			DrawscaleMin: 2,
			DrawscaleMax: 16,
			Rules:        klondike.KlondikeRules.String(),
			ColorProfile: "auto",
		},
		Log: LogSettings{
			Level: "info",
			File:  "klondike.log",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(src, filename)
}

// ParseConfig decodes HCL source and fills unset values with defaults.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()
	if raw.Table != nil {
		config.Table.merge(*raw.Table)
	}
	if raw.Display != nil {
		d := raw.Display
		config.Display.Debug = d.Debug
		if d.DrawscaleMin != 0 {
			config.Display.DrawscaleMin = d.DrawscaleMin
		}
		if d.DrawscaleMax != 0 {
			config.Display.DrawscaleMax = d.DrawscaleMax
		}
		if d.Rules != "" {
			config.Display.Rules = d.Rules
		}
		if d.ColorProfile != "" {
			config.Display.ColorProfile = d.ColorProfile
		}
	}
	if raw.Log != nil {
		if raw.Log.Level != "" {
			config.Log.Level = raw.Log.Level
		}
		if raw.Log.File != "" {
			config.Log.File = raw.Log.File
		}
	}
	return config, nil
}

// merge copies every non-zero value of o
func (t *TableSettings) merge(o TableSettings) {
	for _, f := range []struct {
		dst *float64
		src float64
	}{
		{&t.CardWidth, o.CardWidth},
		{&t.CardHeight, o.CardHeight},
		{&t.CardThickness, o.CardThickness},
		{&t.MarginHorz, o.MarginHorz},
		{&t.MarginVert, o.MarginVert},
		{&t.MarginTop, o.MarginTop},
		{&t.MarginRight, o.MarginRight},
		{&t.MarginBottom, o.MarginBottom},
		{&t.MarginLeft, o.MarginLeft},
	} {
		if f.src != 0 {
			*f.dst = f.src
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.CardWidth <= 0 || c.Table.CardHeight <= 0 {
		return fmt.Errorf("card dimensions must be positive")
	}
	if c.Table.CardThickness < 0 {
		return fmt.Errorf("card thickness cannot be negative")
	}
	for name, m := range map[string]float64{
		"margin_horz":   c.Table.MarginHorz,
		"margin_vert":   c.Table.MarginVert,
		"margin_top":    c.Table.MarginTop,
		"margin_right":  c.Table.MarginRight,
		"margin_bottom": c.Table.MarginBottom,
		"margin_left":   c.Table.MarginLeft,
	} {
		if m < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	if c.Display.DrawscaleMin <= 0 {
		return fmt.Errorf("drawscale_min must be positive")
	}
	if c.Display.DrawscaleMax < c.Display.DrawscaleMin {
		return fmt.Errorf("drawscale_max must be at least drawscale_min")
	}
	if _, err := c.Rules(); err != nil {
		return err
	}
	if _, err := c.Profile(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Geometry returns the table geometry
func (c *Config) Geometry() klondike.Geometry {
	return klondike.Geometry{
		CardWidth:     c.Table.CardWidth,
		CardHeight:    c.Table.CardHeight,
		CardThickness: c.Table.CardThickness,
		ElemHorz:      c.Table.MarginHorz,
		ElemVert:      c.Table.MarginVert,
		MarginTop:     c.Table.MarginTop,
		MarginRight:   c.Table.MarginRight,
		MarginBottom:  c.Table.MarginBottom,
		MarginLeft:    c.Table.MarginLeft,
	}
}

// Rules returns the drop rules
func (c *Config) Rules() (klondike.Rules, error) {
	return klondike.ParseRules(c.Display.Rules)
}

// Level returns the log level
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return level, nil
}

// Profile returns the terminal colour profile. "auto" asks the terminal.
func (c *Config) Profile() (termenv.Profile, error) {
	switch c.Display.ColorProfile {
	case "auto", "":
		return termenv.ColorProfile(), nil
	case "truecolor":
		return termenv.TrueColor, nil
	case "ansi256":
		return termenv.ANSI256, nil
	case "ansi":
		return termenv.ANSI, nil
	case "ascii":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("invalid color profile: %s", c.Display.ColorProfile)
	}
}
