package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/klondike/internal/cards"
	"github.com/lox/klondike/internal/klondike"
	"github.com/lox/klondike/internal/randutil"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#96CEB4"))
	cellStyle   = lipgloss.NewStyle().Width(5)
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	hiddenStyle = lipgloss.NewStyle().Faint(true)
)

type DealCmd struct {
	Seed   *int64 `help:"Deal seed (random when unset)"`
	Reveal bool   `help:"Show face-down cards"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}

	rng, seed := randutil.FromFlag(c.Seed)
	t, err := klondike.NewTable(rng, klondike.WithGeometry(cfg.Geometry()), klondike.WithRules(rules))
	if err != nil {
		return err
	}

	fmt.Println(formatDeal(t, seed, c.Reveal))
	return nil
}

func cardCell(v cards.Value, reveal bool) string {
	switch {
	case v == cards.Null:
		return cellStyle.Render("--")
	case !v.FaceUp() && reveal:
		return cellStyle.Render(hiddenStyle.Render(v.Turned(true).String()))
	case v.FaceUp() && v.IsRed():
		return cellStyle.Render(redStyle.Render(v.String()))
	default:
		return cellStyle.Render(v.Shown().String())
	}
}

func topOf(t *klondike.Table, id klondike.PileID) cards.Value {
	pile := t.Cards(id)
	if len(pile) == 0 {
		return cards.Null
	}
	return pile[len(pile)-1]
}

// formatDeal lays the table out as text: the top row, then the tableau
// columns side by side.
func formatDeal(t *klondike.Table, seed int64, reveal bool) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("Seed %d (%s rules)", seed, t.Rules())))
	sb.WriteString("\n\n")

	top := []string{
		cellStyle.Render(fmt.Sprintf("[%d]", t.Pile(klondike.DeckPile).Len())),
		cardCell(topOf(t, klondike.WastePile), reveal),
		cellStyle.Render(""),
	}
	for id := klondike.Foundation1; id <= klondike.Foundation4; id++ {
		top = append(top, cardCell(topOf(t, id), reveal))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, top...))
	sb.WriteString("\n\n")

	var header []string
	cols := make([][]cards.Value, 0, 7)
	depth := 0
	for id := klondike.Tableau1; id <= klondike.Tableau7; id++ {
		header = append(header, cellStyle.Render(headerStyle.Render(fmt.Sprintf("T%d", int(id-klondike.Tableau1)+1))))
		col := t.Cards(id)
		cols = append(cols, col)
		depth = max(depth, len(col))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for row := range depth {
		line := make([]string, 0, len(cols))
		for _, col := range cols {
			if row < len(col) {
				line = append(line, cardCell(col[row], reveal))
			} else {
				line = append(line, cellStyle.Render(""))
			}
		}
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, line...), " "))
	}
	return sb.String()
}
