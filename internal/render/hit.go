package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/lox/klondike/internal/klondike"
)

// maxIndex is the largest render-list index a 24-bit colour can carry.
const maxIndex = 1<<24 - 2

// IndexColor encodes a render-list index as an opaque colour. Index i is
// stored as i+1 so that the cleared overlay reads as "no target".
func IndexColor(i int) color.RGBA {
	n := uint32(i + 1)
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}
}

// ColorIndex decodes a colour painted by IndexColor.
func ColorIndex(c color.RGBA) (int, bool) {
	if c.A == 0 {
		return 0, false
	}
	n := int(c.R)<<16 | int(c.G)<<8 | int(c.B)
	if n == 0 {
		return 0, false
	}
	return n - 1, true
}

// Overlay is an offscreen bitmap the size of the table where each entry of
// a render list is painted in its index colour.
type Overlay struct {
	img    *image.RGBA
	layout Layout
}

func newOverlay(l Layout) *Overlay {
	return &Overlay{img: image.NewRGBA(image.Rectangle{Max: l.TableSize()}), layout: l}
}

// Image returns the overlay bitmap
func (o *Overlay) Image() *image.RGBA { return o.img }

// Paint clears the overlay and paints list. Later entries cover earlier ones,
// so the topmost card of a cascade owns the overlapping pixels.
func (o *Overlay) Paint(list []klondike.Entry) {
	draw.Draw(o.img, o.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	for i, e := range list[:min(len(list), maxIndex+1)] {
		fill(o.img, o.layout.CardRect(e.Pos()), IndexColor(i))
	}
}

// At returns the index painted under table position p.
func (o *Overlay) At(p klondike.Point) (int, bool) {
	px := image.Pt(int(math.Floor(p.X*o.layout.Scale)), int(math.Floor(p.Y*o.layout.Scale)))
	if !px.In(o.img.Bounds()) {
		return 0, false
	}
	return ColorIndex(o.img.RGBAAt(px.X, px.Y))
}

// Hits answers pick and place queries against a table. Both overlays are
// repainted lazily whenever the table's generation has moved on.
type Hits struct {
	table      *klondike.Table
	pickable   *Overlay
	putable    *Overlay
	generation uint64
	painted    bool
}

// NewHits creates the hit channel for t at layout l
func NewHits(t *klondike.Table, l Layout) *Hits {
	return &Hits{table: t, pickable: newOverlay(l), putable: newOverlay(l)}
}

// Sync repaints the overlays if the table changed since the last paint.
func (h *Hits) Sync() {
	if h.painted && h.generation == h.table.Generation() {
		return
	}
	lists := h.table.Lists()
	h.pickable.Paint(lists.Pickable)
	h.putable.Paint(lists.Putable)
	h.generation = h.table.Generation()
	h.painted = true
}

// PickableAt implements klondike.PickHitter
func (h *Hits) PickableAt(p klondike.Point) (int, bool) {
	h.Sync()
	return h.pickable.At(p)
}

// PutableAt implements klondike.PutHitter
func (h *Hits) PutableAt(p klondike.Point) (int, bool) {
	h.Sync()
	return h.putable.At(p)
}

// Pickable returns the pickable overlay
func (h *Hits) Pickable() *Overlay { return h.pickable }

// Putable returns the putable overlay
func (h *Hits) Putable() *Overlay { return h.putable }
