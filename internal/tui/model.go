// Package tui plays klondike in a terminal. The composited table is shown
// with half-block cells, two pixels per cell, and driven by the mouse.
package tui

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/klondike/internal/cards"
	"github.com/lox/klondike/internal/klondike"
	"github.com/lox/klondike/internal/render"
)

const (
	frameInterval     = 16 * time.Millisecond
	headerRows        = 1
	messagePaneHeight = 5
	maxMessages       = 200
)

// frameMsg asks for the next frame while the hand is moving.
type frameMsg struct{}

// Settings configure a Model
type Settings struct {
	Geometry     klondike.Geometry
	Rules        klondike.Rules
	DrawscaleMin float64
	DrawscaleMax float64
	Debug        bool
	Profile      termenv.Profile
	Clock        quartz.Clock
	Logger       *log.Logger
	Rand         *rand.Rand
	Seed         int64
}

// Model is the Bubble Tea model for one game session
type Model struct {
	settings Settings
	logger   *log.Logger

	table   *klondike.Table
	comp    *render.Compositor
	picture string

	messages []string
	pane     viewport.Model
	help     help.Model

	width, height int
	tooSmall      bool
	framePending  bool
	quitting      bool
	err           error
}

// New creates a model and deals the first game.
func New(s Settings) (*Model, error) {
	if s.Rand == nil {
		return nil, errors.New("tui: no random source")
	}
	if s.Clock == nil {
		s.Clock = quartz.NewReal()
	}
	if s.Logger == nil {
		s.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	m := &Model{
		settings: s,
		logger:   s.Logger.WithPrefix("tui"),
		pane:     viewport.New(10, messagePaneHeight),
		help:     help.New(),
	}
	if err := m.deal(); err != nil {
		return nil, err
	}
	m.addMessage(fmt.Sprintf("Seed %d, %s rules. Drag cards with the mouse, click the deck to draw.", s.Seed, s.Rules))
	return m, nil
}

// Err returns the error that ended the session, if any
func (m *Model) Err() error { return m.err }

// Table returns the table being played
func (m *Model) Table() *klondike.Table { return m.table }

// Messages returns the message pane lines
func (m *Model) Messages() []string { return m.messages }

func (m *Model) compositorOptions() []render.Option {
	return []render.Option{render.WithLogger(m.settings.Logger), render.WithDebug(m.settings.Debug)}
}

// deal replaces the table with a fresh game, keeping the current layout.
func (m *Model) deal() error {
	t, err := klondike.NewTable(m.settings.Rand,
		klondike.WithGeometry(m.settings.Geometry),
		klondike.WithRules(m.settings.Rules),
		klondike.WithLogger(m.settings.Logger),
	)
	if err != nil {
		return err
	}
	m.table = t
	if m.comp != nil {
		m.comp = render.New(t, m.comp.Layout(), m.compositorOptions()...)
		return m.redraw()
	}
	return nil
}

func (m *Model) addMessage(s string) {
	m.messages = append(m.messages, s)
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
	m.pane.SetContent(strings.Join(m.messages, "\n"))
	m.pane.GotoBottom()
}

func (m *Model) helpRows() int {
	if m.help.ShowAll {
		return 3
	}
	return 1
}

// boardRows is the number of terminal rows left for the table.
func (m *Model) boardRows() int {
	return m.height - headerRows - (messagePaneHeight + 2) - m.helpRows()
}

// resize fits the table to the terminal. A terminal too small for the
// minimum drawscale disables input until the next resize.
func (m *Model) resize() error {
	m.pane.Width = max(m.width-2, 1)
	m.pane.Height = messagePaneHeight

	px := PixelSize(m.width, max(m.boardRows(), 0))
	layout, err := render.Fit(m.table.Geometry(), px.X, px.Y, m.settings.DrawscaleMin, m.settings.DrawscaleMax)
	if errors.Is(err, render.ErrTooSmall) {
		if !m.tooSmall {
			m.addMessage(ErrorStyle.Render("Window too small for the table, make it bigger"))
		}
		m.tooSmall = true
		m.logger.Debug("Viewport too small", "width", px.X, "height", px.Y)
		return nil
	}
	if err != nil {
		return err
	}

	m.tooSmall = false
	if m.comp == nil {
		m.comp = render.New(m.table, layout, m.compositorOptions()...)
	} else {
		m.comp.Resize(layout)
	}
	return m.redraw()
}

// redraw composites a frame and re-encodes it if anything changed.
func (m *Model) redraw() error {
	if m.comp == nil || m.tooSmall {
		return nil
	}
	changed, err := m.comp.Frame()
	if err != nil {
		return err
	}
	if changed {
		m.picture = present(m.comp.Image(), m.settings.Profile, render.FeltColor)
	}
	return nil
}

// scheduleFrame arms the frame timer unless it is already armed.
func (m *Model) scheduleFrame() tea.Cmd {
	if m.framePending {
		return nil
	}
	m.framePending = true
	clock := m.settings.Clock
	return func() tea.Msg {
		fired := make(chan struct{})
		clock.AfterFunc(frameInterval, func() { close(fired) }, "tui", "frame")
		<-fired
		return frameMsg{}
	}
}

// fail ends the session on an error the table or renderer cannot recover
// from.
func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.quitting = true
	m.logger.Error("Fatal error", "error", err)
	return m, tea.Quit
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		if err := m.resize(); err != nil {
			return m.fail(err)
		}

	case tea.KeyMsg:
		return m.key(msg)

	case tea.MouseMsg:
		return m.mouse(msg)

	case frameMsg:
		m.framePending = false
		if err := m.redraw(); err != nil {
			return m.fail(err)
		}
		if m.table.Hand().Holding() {
			return m, m.scheduleFrame()
		}
	}
	return m, nil
}

func (m *Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Draw):
		if err := m.draw(); err != nil {
			return m.fail(err)
		}
	case key.Matches(msg, keys.NewGame):
		if m.table.Hand().Holding() {
			return m, nil
		}
		if err := m.deal(); err != nil {
			return m.fail(err)
		}
		m.addMessage(InfoStyle.Render("New deal"))
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		if err := m.resize(); err != nil {
			return m.fail(err)
		}
	case key.Matches(msg, keys.ScrollUp):
		m.pane.ScrollUp(1)
	case key.Matches(msg, keys.ScrollDn):
		m.pane.ScrollDown(1)
	}
	return m, nil
}

func (m *Model) draw() error {
	if m.tooSmall || m.table.Hand().Holding() {
		return nil
	}
	recycle := m.table.Pile(klondike.DeckPile).Len() == 0
	if err := m.table.Draw(); err != nil {
		return err
	}
	if recycle && m.table.Pile(klondike.DeckPile).Len() > 0 {
		m.addMessage(InfoStyle.Render("Waste turned over"))
	}
	return m.redraw()
}

func (m *Model) mouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.tooSmall || m.comp == nil {
		return m, nil
	}
	p := m.comp.Layout().ToTable(CellToPixel(msg.X, msg.Y-headerRows))

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.onBoard(msg.Y) {
			return m, nil
		}
		if m.table.OverDeck(p) {
			if err := m.draw(); err != nil {
				return m.fail(err)
			}
			return m, nil
		}
		picked, err := m.table.Pick(p, m.comp.Hits())
		if err != nil {
			return m.fail(err)
		}
		if !picked {
			return m, nil
		}
		if err := m.redraw(); err != nil {
			return m.fail(err)
		}
		return m, m.scheduleFrame()

	case tea.MouseActionMotion:
		if !m.table.Hand().Holding() {
			return m, nil
		}
		m.table.MoveHand(p)
		return m, m.scheduleFrame()

	case tea.MouseActionRelease:
		held := m.table.Cards(klondike.HandPile)
		origin := m.table.Hand().Origin()
		outcome, err := m.table.Place(p, m.comp.Hits())
		if err != nil {
			return m.fail(err)
		}
		switch outcome {
		case klondike.Placed:
			m.addMessage(fmt.Sprintf("Moved %s from %s", cardLabel(held[0]), origin))
			if m.solved() {
				m.addMessage(SuccessStyle.Render("All cards are home!"))
			}
		case klondike.Returned:
			m.logger.Debug("Returned run", "card", held[0], "to", origin)
		}
		if err := m.redraw(); err != nil {
			return m.fail(err)
		}
	}
	return m, nil
}

// onBoard reports whether terminal row y shows part of the table.
func (m *Model) onBoard(y int) bool {
	return y >= headerRows && y < headerRows+m.boardRows()
}

func (m *Model) solved() bool {
	n := 0
	for id := klondike.Foundation1; id <= klondike.Foundation4; id++ {
		n += m.table.Pile(id).Len()
	}
	return n == cards.DeckSize
}

func cardLabel(v cards.Value) string {
	if v.IsRed() {
		return RedCardStyle.Render(v.String())
	}
	return BlackCardStyle.Render(v.String())
}

func (m *Model) status() string {
	t := m.table
	parts := []string{
		fmt.Sprintf("deck %d", t.Pile(klondike.DeckPile).Len()),
		fmt.Sprintf("waste %d", t.Pile(klondike.WastePile).Len()),
	}
	home := 0
	for id := klondike.Foundation1; id <= klondike.Foundation4; id++ {
		home += t.Pile(id).Len()
	}
	parts = append(parts, fmt.Sprintf("home %d/%d", home, cards.DeckSize))

	if h := t.Hand(); h.Holding() {
		held := t.Cards(klondike.HandPile)
		parts = append(parts, fmt.Sprintf("holding %s ×%d from %s", cardLabel(held[0]), len(held), h.Origin()))
	}
	return StatusStyle.Render(strings.Join(parts, " · "))
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, HeaderStyle.Render("Klondike"), " ", m.status())

	rows := max(m.boardRows(), 0)
	board := m.picture
	if m.tooSmall {
		board = lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center,
			ErrorStyle.Render("Window too small"))
	}
	board = lipgloss.NewStyle().Height(rows).MaxHeight(rows).Render(board)

	pane := PaneStyle.Width(max(m.width-2, 1)).Render(m.pane.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, board, pane, m.help.View(keys))
}
