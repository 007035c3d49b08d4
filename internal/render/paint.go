package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lox/klondike/internal/cards"
)

// Palette
var (
	FeltColor    = color.RGBA{0x1b, 0x5e, 0x20, 0xff}
	OutlineColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
	FaceColor    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	BackColor    = color.RGBA{0x1e, 0x40, 0xaf, 0xff}
	BackTrim     = color.RGBA{0x93, 0xc5, 0xfd, 0xff}
	EmptyColor   = color.RGBA{0x80, 0x80, 0x80, 0xff}
	RedInk       = color.RGBA{0xd3, 0x2f, 0x2f, 0xff}
	BlackInk     = color.RGBA{0x10, 0x10, 0x10, 0xff}
)

var labelFace font.Face = basicfont.Face7x13

// labelMinWidth is the narrowest card that still gets a rank label.
const labelMinWidth = 24

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// InkFor returns the suit colour of a face-up card
func InkFor(v cards.Value) color.RGBA {
	if v.IsRed() {
		return RedInk
	}
	return BlackInk
}

// sprites caches one bitmap per distinct card image at the current card
// size. All face-down cards share the back sprite.
type sprites struct {
	size  image.Point
	cache map[cards.Value]*image.RGBA
}

func newSprites(size image.Point) *sprites {
	return &sprites{size: size, cache: make(map[cards.Value]*image.RGBA)}
}

// get returns the sprite for v, painting it on first use.
func (s *sprites) get(v cards.Value) *image.RGBA {
	k := v.Shown()
	if img, ok := s.cache[k]; ok {
		return img
	}
	img := paintSprite(s.size, k)
	s.cache[k] = img
	return img
}

// paintSprite draws a card face, back or empty slot at the given size.
func paintSprite(size image.Point, v cards.Value) *image.RGBA {
	w, h := float64(size.X), float64(size.Y)
	radius := min(w, h) * 0.08

	dc := gg.NewContext(size.X, size.Y)
	defer func() { _ = dc.Close() }()

	dc.SetColor(OutlineColor)
	dc.DrawRoundedRectangle(0, 0, w, h, radius)
	_ = dc.Fill()

	inner := max(radius-1, 0)
	switch v {
	case cards.Null:
		dc.SetColor(EmptyColor)
		dc.DrawRoundedRectangle(1, 1, w-2, h-2, inner)
		_ = dc.Fill()
	case cards.Unknown:
		dc.SetColor(BackColor)
		dc.DrawRoundedRectangle(1, 1, w-2, h-2, inner)
		_ = dc.Fill()
		if w > 10 && h > 10 {
			dc.SetColor(BackTrim)
			dc.SetLineWidth(1)
			dc.DrawRoundedRectangle(3.5, 3.5, w-7, h-7, inner)
			_ = dc.Stroke()
		}
	default:
		dc.SetColor(FaceColor)
		dc.DrawRoundedRectangle(1, 1, w-2, h-2, inner)
		_ = dc.Fill()

		r := min(w, h) / 3
		if size.X >= labelMinWidth {
			r = min(w, h) / 4
		}
		dc.SetColor(InkFor(v))
		drawPip(dc, w/2, h/2, r, v.Suit())
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		img = image.NewRGBA(image.Rectangle{Max: size})
		draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)
	}

	if v != cards.Null && v != cards.Unknown && size.X >= labelMinWidth {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(InkFor(v)),
			Face: labelFace,
			Dot:  fixed.P(3, labelFace.Metrics().Ascent.Ceil()+2),
		}
		d.DrawString(v.Rank().String())
	}
	return img
}

// drawPip fills a suit symbol of radius r centred on (cx, cy). Each part is
// filled on its own so overlapping parts never cancel out.
func drawPip(dc *gg.Context, cx, cy, r float64, s cards.Suit) {
	circle := func(x, y, cr float64) {
		dc.DrawCircle(cx+x*r, cy+y*r, cr*r)
		_ = dc.Fill()
	}
	poly := func(pts ...[2]float64) {
		dc.MoveTo(cx+pts[0][0]*r, cy+pts[0][1]*r)
		for _, p := range pts[1:] {
			dc.LineTo(cx+p[0]*r, cy+p[1]*r)
		}
		dc.ClosePath()
		_ = dc.Fill()
	}
	stem := func() {
		poly([2]float64{0, 0.2}, [2]float64{0.35, 1}, [2]float64{-0.35, 1})
	}

	switch s {
	case cards.Hearts:
		circle(-0.45, -0.35, 0.5)
		circle(0.45, -0.35, 0.5)
		poly([2]float64{-0.95, -0.2}, [2]float64{0.95, -0.2}, [2]float64{0, 1})
	case cards.Diamonds:
		poly([2]float64{0, -1}, [2]float64{0.75, 0}, [2]float64{0, 1}, [2]float64{-0.75, 0})
	case cards.Spades:
		circle(-0.45, 0.2, 0.5)
		circle(0.45, 0.2, 0.5)
		poly([2]float64{0, -1}, [2]float64{0.95, 0.1}, [2]float64{-0.95, 0.1})
		stem()
	case cards.Clubs:
		circle(0, -0.5, 0.38)
		circle(-0.45, 0.05, 0.38)
		circle(0.45, 0.05, 0.38)
		circle(0, 0, 0.25)
		stem()
	default:
		circle(0, 0, 0.5)
	}
}
