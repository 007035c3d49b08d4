package main

import (
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/klondike"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/render"
)

func TestFormatDeal(t *testing.T) {
	tbl, err := klondike.NewTable(randutil.New(42))
	require.NoError(t, err)

	t.Run("hidden", func(t *testing.T) {
		out := formatDeal(tbl, 42, false)
		assert.Contains(t, out, "Seed 42 (klondike rules)")
		assert.Contains(t, out, "[24]")
		assert.Contains(t, out, "T7")
		assert.Equal(t, 21, strings.Count(out, "??"), "face-down tableau cards")

		lines := strings.Split(out, "\n")
		assert.Len(t, lines, 4+1+7, "seed, blank, top row, blank, header, seven rows")
	})

	t.Run("revealed", func(t *testing.T) {
		out := formatDeal(tbl, 42, true)
		assert.Zero(t, strings.Count(out, "??"))
	})
}

func TestLoadGlobals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "klondike.hcl")
	require.NoError(t, os.WriteFile(path, []byte("display {\n  rules = \"free\"\n}\n"), 0o644))

	g := Globals{Config: path, LogLevel: "debug"}
	cfg, err := g.load()
	require.NoError(t, err)
	assert.Equal(t, "free", cfg.Display.Rules)
	assert.Equal(t, "debug", cfg.Log.Level)

	g.Rules = "klondike"
	cfg, err = g.load()
	require.NoError(t, err)
	assert.Equal(t, "klondike", cfg.Display.Rules, "flag overrides file")

	g.Rules = "spider"
	_, err = g.load()
	assert.Error(t, err)
}

func TestSnapshotCmd(t *testing.T) {
	dir := t.TempDir()
	g := &Globals{Config: filepath.Join(dir, "missing.hcl"), LogLevel: "error"}
	cmd := &SnapshotCmd{Seeds: []int64{1, 2, 3}, Out: dir, Scale: 8, Draws: 3, Jobs: 2}
	require.NoError(t, cmd.Run(g))

	want := render.NewLayout(klondike.DefaultGeometry(), 8).TableSize()
	for _, seed := range []string{"1", "2", "3"} {
		f, err := os.Open(filepath.Join(dir, "klondike-"+seed+".png"))
		require.NoError(t, err)
		img, err := png.Decode(f)
		_ = f.Close()
		require.NoError(t, err)
		assert.Equal(t, want, img.Bounds().Size())
	}
}

func TestRenderSnapshotDeterministic(t *testing.T) {
	dir := t.TempDir()
	opts := snapshotOpts{
		geom:   klondike.DefaultGeometry(),
		rules:  klondike.KlondikeRules,
		scale:  4,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}

	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	require.NoError(t, renderSnapshot(a, 9, opts))
	require.NoError(t, renderSnapshot(b, 9, opts))

	da, err := os.ReadFile(a)
	require.NoError(t, err)
	db, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, da, db, "same seed renders the same image")
}

func TestSnapshotCmdRejectsScale(t *testing.T) {
	dir := t.TempDir()
	g := &Globals{Config: filepath.Join(dir, "missing.hcl"), LogLevel: "error"}

	for _, scale := range []float64{-4, 0, 1.5} {
		cmd := &SnapshotCmd{Seeds: []int64{1}, Out: dir, Scale: scale, Jobs: 1}
		err := cmd.Run(g)
		assert.ErrorIs(t, err, errScaleTooSmall, "scale %g", scale)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing written")
}
