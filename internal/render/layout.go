package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/lox/klondike/internal/klondike"
)

// ErrTooSmall means the viewport cannot hold the table at the minimum
// drawscale.
var ErrTooSmall = errors.New("viewport too small for table")

// Layout converts table base units to pixels.
type Layout struct {
	Scale float64 // pixels per base unit
	geom  klondike.Geometry
}

// NewLayout returns a layout for g at the given drawscale
func NewLayout(g klondike.Geometry, scale float64) Layout {
	return Layout{Scale: scale, geom: g}
}

// Geometry returns the table geometry the layout was built for
func (l Layout) Geometry() klondike.Geometry { return l.geom }

// Px converts a length in base units to whole pixels.
func (l Layout) Px(v float64) int {
	return int(math.Round(v * l.Scale))
}

// Point converts a table position to a pixel position
func (l Layout) Point(p klondike.Point) image.Point {
	return image.Pt(l.Px(p.X), l.Px(p.Y))
}

// CardSize is the pixel size of one card
func (l Layout) CardSize() image.Point {
	return image.Pt(l.Px(l.geom.CardWidth), l.Px(l.geom.CardHeight))
}

// CardRect is the pixel rectangle of a card whose corner is at p.
func (l Layout) CardRect(p klondike.Point) image.Rectangle {
	corner := l.Point(p)
	return image.Rectangle{Min: corner, Max: corner.Add(l.CardSize())}
}

// TableSize is the pixel size of the whole table
func (l Layout) TableSize() image.Point {
	return image.Pt(l.Px(l.geom.Width()), l.Px(l.geom.Height()))
}

// ToTable converts a pixel to the table position of its centre.
func (l Layout) ToTable(px image.Point) klondike.Point {
	return klondike.Point{
		X: (float64(px.X) + 0.5) / l.Scale,
		Y: (float64(px.Y) + 0.5) / l.Scale,
	}
}

// fitWidth returns the widest multiple of eight that keeps an aspect of
// cw:ch inside dw x dh.
func fitWidth(cw, ch float64, dw, dh int) int {
	w := dw
	if cw/ch <= float64(dw)/float64(dh) {
		w = int(math.Floor(float64(dh) * cw / ch))
	}
	return w - w%8
}

// Fit picks the largest drawscale, capped at maxScale, at which the table
// fits a viewport of w x h pixels.
func Fit(g klondike.Geometry, w, h int, minScale, maxScale float64) (Layout, error) {
	if w <= 0 || h <= 0 {
		return Layout{}, fmt.Errorf("%dx%d: %w", w, h, ErrTooSmall)
	}

	scale := float64(fitWidth(g.Width(), g.Height(), w, h)) / g.Width()
	if maxScale > 0 {
		scale = min(scale, maxScale)
	}
	if scale < minScale || scale <= 0 {
		return Layout{}, fmt.Errorf("%dx%d at drawscale %.2f (min %.2f): %w", w, h, scale, minScale, ErrTooSmall)
	}
	return NewLayout(g, scale), nil
}
