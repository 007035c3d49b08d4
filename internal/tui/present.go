package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/muesli/termenv"
)

// upperHalf shows the top pixel in the foreground colour and the bottom
// pixel in the background colour, so one cell carries two pixels.
const upperHalf = "▀"

// PixelSize is the pixel area available in a cols x rows cell region.
func PixelSize(cols, rows int) image.Point {
	return image.Pt(cols, 2*rows)
}

// CellToPixel maps a terminal cell to the top pixel it shows.
func CellToPixel(col, row int) image.Point {
	return image.Pt(col, 2*row)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// present converts img into rows of half-block cells. Pixels outside img
// are drawn in pad.
func present(img *image.RGBA, profile termenv.Profile, pad color.RGBA) string {
	b := img.Bounds()
	at := func(x, y int) color.RGBA {
		if !image.Pt(x, y).In(b) {
			return pad
		}
		return img.RGBAAt(x, y)
	}

	// Styles are cached per colour pair; a frame uses only a handful.
	type pair struct{ top, bottom color.RGBA }
	styles := make(map[pair]string)

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			p := pair{at(x, y), at(x, y+1)}
			cell, ok := styles[p]
			if !ok {
				cell = profile.String(upperHalf).
					Foreground(profile.Color(hex(p.top))).
					Background(profile.Color(hex(p.bottom))).
					String()
				styles[p] = cell
			}
			sb.WriteString(cell)
		}
	}
	return sb.String()
}
