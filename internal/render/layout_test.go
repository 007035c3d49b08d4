package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/cards"
	"github.com/lox/klondike/internal/klondike"
)

func TestFit(t *testing.T) {
	g := klondike.DefaultGeometry()

	tests := []struct {
		name   string
		w, h   int
		scale  float64
		tooBig bool
	}{
		{"height bound", 200, 100, 104 / 21.5, false},
		{"width bound", 100, 400, 96 / 21.5, false},
		{"capped at max", 4000, 4000, 16, false},
		{"too small", 20, 20, 0, true},
		{"zero area", 0, 50, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Fit(g, tt.w, tt.h, 2, 16)
			if tt.tooBig {
				assert.ErrorIs(t, err, ErrTooSmall)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.scale, l.Scale, 1e-9)

			size := l.TableSize()
			assert.LessOrEqual(t, size.X, tt.w)
			assert.LessOrEqual(t, size.Y, tt.h)
		})
	}
}

func TestLayoutConversions(t *testing.T) {
	l := NewLayout(klondike.DefaultGeometry(), 8)

	assert.Equal(t, image.Pt(20, 28), l.CardSize())
	assert.Equal(t, image.Pt(172, 164), l.TableSize())
	assert.Equal(t, image.Rect(4, 4, 24, 32), l.CardRect(klondike.Point{X: 0.5, Y: 0.5}))
	assert.Equal(t, klondike.Point{X: 0.0625, Y: 0.1875}, l.ToTable(image.Pt(0, 1)))
}

func TestIndexColor(t *testing.T) {
	for _, i := range []int{0, 1, 12, 255, 256, 65535, 1 << 20, maxIndex} {
		got, ok := ColorIndex(IndexColor(i))
		assert.True(t, ok, "index %d", i)
		assert.Equal(t, i, got)
	}

	_, ok := ColorIndex(color.RGBA{})
	assert.False(t, ok, "cleared pixel is no target")

	_, ok = ColorIndex(color.RGBA{A: 0xff})
	assert.False(t, ok, "opaque black is no target")
}

func TestOverlayTopmostWins(t *testing.T) {
	g := klondike.DefaultGeometry()
	o := newOverlay(NewLayout(g, 8))

	o.Paint([]klondike.Entry{
		{X: 0.5, Y: 4.5},
		{X: 0.5, Y: 5.0},
	})

	idx, ok := o.At(klondike.Point{X: 1, Y: 4.7})
	require.True(t, ok)
	assert.Equal(t, 0, idx, "uncovered strip of the lower card")

	idx, ok = o.At(klondike.Point{X: 1, Y: 6})
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = o.At(klondike.Point{X: 20, Y: 19})
	assert.False(t, ok)

	_, ok = o.At(klondike.Point{X: -1, Y: 3})
	assert.False(t, ok, "outside the bitmap")
}

// assertColor allows for the rounding of anti-aliased sprite edges.
func assertColor(t *testing.T, want, got color.RGBA, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 2, msgAndArgs...)
	assert.InDelta(t, want.G, got.G, 2, msgAndArgs...)
	assert.InDelta(t, want.B, got.B, 2, msgAndArgs...)
	assert.InDelta(t, want.A, got.A, 2, msgAndArgs...)
}

func TestPaintSprite(t *testing.T) {
	size := image.Pt(40, 56)

	t.Run("face", func(t *testing.T) {
		img := paintSprite(size, cards.MustParseValue("Qh"))
		require.Equal(t, size, img.Bounds().Size())
		assertColor(t, OutlineColor, img.RGBAAt(20, 0), "outline")
		assertColor(t, FaceColor, img.RGBAAt(35, 50), "face")
		assertColor(t, RedInk, img.RGBAAt(20, 28), "pip in the middle")
		assert.Less(t, img.RGBAAt(0, 0).A, uint8(0xff), "rounded corner")
	})

	t.Run("pips", func(t *testing.T) {
		for _, s := range []string{"As", "Ad", "Ac", "Ah"} {
			v := cards.MustParseValue(s)
			img := paintSprite(size, v)
			assertColor(t, InkFor(v), img.RGBAAt(20, 28), s)
			assertColor(t, FaceColor, img.RGBAAt(34, 40), s)
		}
	})

	t.Run("back", func(t *testing.T) {
		img := paintSprite(size, cards.Unknown)
		assertColor(t, BackColor, img.RGBAAt(20, 28))
	})

	t.Run("empty slot", func(t *testing.T) {
		img := paintSprite(size, cards.Null)
		assertColor(t, EmptyColor, img.RGBAAt(20, 28))
	})
}

func TestSpritesShared(t *testing.T) {
	s := newSprites(image.Pt(20, 28))
	qh := cards.MustParseValue("Qh")

	assert.Same(t, s.get(qh), s.get(qh))
	assert.Same(t, s.get(qh.Turned(false)), s.get(cards.MustParseValue("2c").Turned(false)), "one back for every face-down card")
	assert.NotSame(t, s.get(qh), s.get(cards.MustParseValue("Qd")))
	assert.Len(t, s.cache, 3)
}
