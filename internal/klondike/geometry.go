package klondike

// Point is a position in table base units. One base unit is one inch of a
// physical card table; the renderer multiplies by its drawscale.
type Point struct {
	X, Y float64
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Geometry holds card dimensions and margins in base units.
type Geometry struct {
	CardWidth     float64
	CardHeight    float64
	CardThickness float64

	ElemHorz float64 // minimum horizontal distance between cards
	ElemVert float64 // minimum vertical distance between cards

	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
}

// DefaultGeometry returns poker-size cards with half-inch margins
func DefaultGeometry() Geometry {
	return Geometry{
		CardWidth:     2.5,
		CardHeight:    3.5,
		CardThickness: 0.012,
		ElemHorz:      0.5,
		ElemVert:      0.5,
		MarginTop:     0.5,
		MarginRight:   0.5,
		MarginBottom:  0.5,
		MarginLeft:    0.5,
	}
}

// Width of the whole table: seven tableau columns plus margins.
func (g Geometry) Width() float64 {
	return g.MarginLeft + 7*g.CardWidth + 6*g.ElemHorz + g.MarginRight
}

// Height of the whole table: the top row plus a tableau column tall enough
// for 25 fanned cards.
func (g Geometry) Height() float64 {
	return g.MarginTop + 2*g.CardHeight + 25*g.ElemVert + g.MarginBottom
}

func (g Geometry) column(i int) float64 {
	return g.MarginLeft + float64(i)*(g.CardWidth+g.ElemHorz)
}

// origin returns the table position of a pile.
func (g Geometry) origin(id PileID) Point {
	switch {
	case id == DeckPile:
		return Point{X: g.column(0), Y: g.MarginTop}
	case id == WastePile:
		return Point{X: g.column(1), Y: g.MarginTop}
	case id.IsFoundation():
		return Point{X: g.column(3 + int(id-Foundation1)), Y: g.MarginTop}
	case id.IsTableau():
		return Point{X: g.column(int(id - Tableau1)), Y: g.MarginTop + g.CardHeight + g.ElemVert}
	default:
		return Point{}
	}
}

// clamp keeps p inside the table margins.
func (g Geometry) clamp(p Point) Point {
	return Point{
		X: max(g.MarginLeft, min(p.X, g.Width()-g.MarginRight)),
		Y: max(g.MarginTop, min(p.Y, g.Height()-g.MarginBottom)),
	}
}

// Contains reports whether p lies on a card whose top-left corner is at c.
func (g Geometry) Contains(c, p Point) bool {
	return p.X >= c.X && p.X < c.X+g.CardWidth && p.Y >= c.Y && p.Y < c.Y+g.CardHeight
}
