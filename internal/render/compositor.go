// Package render composites a klondike table into an RGBA frame.
//
// Each pile is painted into its own bitmap, and only when the table marked
// it stale. The pile bitmaps are blitted into a table cache, which is
// rebuilt only when the table reports a structural change. The hand is
// blitted over the cache every frame it moves. A pair of hit overlays maps
// pixels back to render-list indices for picking and placing.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"

	"github.com/lox/klondike/internal/klondike"
)

// ErrNothingStale means the table cache was flagged stale while no pile was.
// The table and the renderer disagree about what changed.
var ErrNothingStale = errors.New("table cache stale but no pile is")

// Option configures a Compositor
type Option func(*Compositor)

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(c *Compositor) { c.logger = l.WithPrefix("render") }
}

// WithDebug draws shrunken copies of the hit overlays in the frame corner.
func WithDebug(on bool) Option {
	return func(c *Compositor) { c.debug = on }
}

// Compositor owns every bitmap derived from one table.
type Compositor struct {
	logger *log.Logger
	debug  bool

	table  *klondike.Table
	layout Layout

	sprites *sprites
	piles   [klondike.NumPiles]*image.RGBA
	hand    *image.RGBA
	cache   *image.RGBA
	frame   *image.RGBA
	hits    *Hits

	invalid bool // bitmaps must be rebuilt regardless of table flags
}

// New creates a compositor for t at layout l.
func New(t *klondike.Table, l Layout, opts ...Option) *Compositor {
	c := &Compositor{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		table:  t,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Resize(l)
	return c
}

// Resize reallocates all bitmaps for a new drawscale and forces a full
// repaint on the next frame.
func (c *Compositor) Resize(l Layout) {
	c.layout = l
	size := image.Rectangle{Max: l.TableSize()}
	c.cache = image.NewRGBA(size)
	c.frame = image.NewRGBA(size)
	c.hits = NewHits(c.table, l)
	c.sprites = newSprites(l.CardSize())
	c.piles = [klondike.NumPiles]*image.RGBA{}
	c.hand = nil

	for _, p := range c.table.Piles() {
		p.MarkStale()
	}
	c.table.Hand().MarkStale()
	c.invalid = true

	c.logger.Debug("Resized", "drawscale", l.Scale, "width", size.Dx(), "height", size.Dy())
}

// Layout returns the current layout
func (c *Compositor) Layout() Layout { return c.layout }

// Hits returns the hit channel, usable as klondike.PickHitter and PutHitter
func (c *Compositor) Hits() *Hits { return c.hits }

// Image returns the last composited frame
func (c *Compositor) Image() *image.RGBA { return c.frame }

// Frame brings the frame up to date and reports whether it changed.
func (c *Compositor) Frame() (bool, error) {
	t := c.table
	rebuilt := false

	if t.TableStale() || c.invalid {
		if err := c.rebuildTableCache(); err != nil {
			return false, err
		}
		t.ClearTableStale()
		c.invalid = false
		rebuilt = true
	}

	hand := t.Hand()
	if !rebuilt && !t.HandMoved() && !hand.Stale() {
		return false, nil
	}

	draw.Draw(c.frame, c.frame.Bounds(), c.cache, image.Point{}, draw.Src)

	if hand.Stale() {
		c.hand = c.paintPile(c.hand, hand.Pile)
		hand.ClearStale()
	}
	if hand.Holding() {
		at := c.layout.Point(hand.DrawPos())
		draw.Draw(c.frame, c.hand.Bounds().Add(at), c.hand, image.Point{}, draw.Over)
	}
	hand.ClearMoved()

	if c.debug {
		c.drawDebug()
	}
	return true, nil
}

// rebuildTableCache repaints every stale pile and recomposes the cache.
func (c *Compositor) rebuildTableCache() error {
	repainted := 0
	for _, p := range c.table.Piles() {
		if !p.Stale() {
			continue
		}
		c.piles[p.ID()] = c.paintPile(c.piles[p.ID()], p)
		p.ClearStale()
		repainted++
	}
	if repainted == 0 {
		return fmt.Errorf("generation %d: %w", c.table.Generation(), ErrNothingStale)
	}

	fill(c.cache, c.cache.Bounds(), FeltColor)
	for _, p := range c.table.Piles() {
		img := c.piles[p.ID()]
		at := c.layout.Point(p.Pos())
		draw.Draw(c.cache, img.Bounds().Add(at), img, image.Point{}, draw.Over)
	}

	c.logger.Debug("Rebuilt table cache", "repainted", repainted, "generation", c.table.Generation())
	return nil
}

// paintPile repaints p into img, reallocating when the pile grew or shrank.
func (c *Compositor) paintPile(img *image.RGBA, p *klondike.Pile) *image.RGBA {
	w, h := p.Size(c.layout.Geometry())
	size := image.Pt(c.layout.Px(w), c.layout.Px(h))

	if img == nil || img.Bounds().Size() != size {
		img = image.NewRGBA(image.Rectangle{Max: size})
	} else {
		draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	}

	origin := p.Pos()
	for _, e := range p.Visible() {
		r := c.layout.CardRect(e.Pos().Sub(origin))
		sprite := c.sprites.get(e.Value)
		draw.Draw(img, r, sprite, image.Point{}, draw.Over)
	}
	return img
}

// drawDebug shrinks both hit overlays into the bottom corners of the frame.
func (c *Compositor) drawDebug() {
	c.hits.Sync()
	b := c.frame.Bounds()
	w, h := b.Dx()/4, b.Dy()/4
	left := image.Rect(0, b.Max.Y-h, w, b.Max.Y)
	right := image.Rect(b.Max.X-w, b.Max.Y-h, b.Max.X, b.Max.Y)

	for _, d := range []struct {
		dst image.Rectangle
		src *image.RGBA
	}{
		{left, c.hits.Pickable().Image()},
		{right, c.hits.Putable().Image()},
	} {
		fill(c.frame, d.dst, OutlineColor)
		draw.NearestNeighbor.Scale(c.frame, d.dst, d.src, d.src.Bounds(), draw.Over, nil)
	}
}

// Snapshot encodes the current frame as PNG.
func (c *Compositor) Snapshot(w io.Writer) error {
	if err := png.Encode(w, c.frame); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}
