// Package tui draws a game table in the terminal and turns key presses into
// the same gestures a pointer would produce.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/playingcards/internal/game"
	"github.com/jask/playingcards/internal/layout"
	"github.com/jask/playingcards/internal/view"
)

// App is the bubbletea model for one game.
type App struct {
	game   *game.Game
	scale  float64
	cursor int
	width  int
	height int
	status string
	keys   keyMap
}

func New(g *game.Game, scale float64) *App {
	if scale <= 0 {
		scale = 8
	}
	return &App{game: g, scale: scale, width: 100, height: 30, keys: keyMap{bindings: defaultBindings}}
}

func (a *App) Init() tea.Cmd { return nil }

// Selected returns the pile under the cursor, if any.
func (a *App) Selected() (*game.Pile, bool) {
	piles := a.game.Piles()
	if len(piles) == 0 {
		return nil, false
	}
	a.cursor = (a.cursor%len(piles) + len(piles)) % len(piles)
	return piles[a.cursor], true
}

func (a *App) Status() string { return a.status }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		act, ok := a.keys.lookup(m)
		if !ok {
			return a, nil
		}
		switch act {
		case actionQuit:
			return a, tea.Quit
		case actionNext:
			a.cursor++
			a.status = ""
		case actionPrev:
			a.cursor--
			a.status = ""
		case actionClick:
			a.click()
		case actionShuffle:
			a.shuffle()
		case actionFan:
			a.cycleFan()
		}
	}
	return a, nil
}

func (a *App) click() {
	p, ok := a.Selected()
	if !ok {
		if err := view.Dispatch(a.game.View(), view.Click, view.Gesture{}); err != nil {
			a.status = "error: " + err.Error()
		}
		return
	}
	if err := view.Dispatch(p.View(), view.Click, view.Gesture{}); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.status = fmt.Sprintf("clicked %s", p.Name())
}

func (a *App) shuffle() {
	p, ok := a.Selected()
	if !ok {
		return
	}
	if err := p.Model().Shuffle(); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.status = fmt.Sprintf("shuffled %s", p.Name())
}

func (a *App) cycleFan() {
	p, ok := a.Selected()
	if !ok {
		return
	}
	next := layout.Fans[(int(p.Fanning())+1)%len(layout.Fans)]
	if err := p.SetFanning(next); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.status = fmt.Sprintf("%s fanned %s", p.Name(), next)
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
)

func (a *App) View() string {
	width, height := max(20, a.width), max(8, a.height)
	hot := ""
	if p, ok := a.Selected(); ok {
		hot = p.View().ID()
	}
	c := newCanvas(width-4, height-4, a.scale)
	c.draw(a.game.View(), hot)

	body := pane{Title: a.game.Table().Name(), Content: c.String(), Focused: true}.Render(width, height-2)
	status := a.status
	if status == "" {
		status = a.summary()
	}
	help := a.keys.help()
	return strings.Join([]string{
		body,
		statusStyle.Render(ansi.Truncate(status, width, "…")),
		helpStyle.Render(ansi.Truncate(help, width, "…")),
	}, "\n")
}

func (a *App) summary() string {
	parts := make([]string, 0, len(a.game.Piles()))
	for _, p := range a.game.Piles() {
		parts = append(parts, fmt.Sprintf("%s:%d", p.Name(), p.Model().Count()))
	}
	return strings.Join(parts, "  ")
}
