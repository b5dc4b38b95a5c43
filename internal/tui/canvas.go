package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/playingcards/internal/scene"
	"github.com/jask/playingcards/internal/view"
)

// cardWidth is the number of columns a card token takes, "[10♠]".
const cardWidth = 5

var palette = map[string]string{
	"red":    "#f38ba8",
	"black":  "#cdd6f4",
	"maroon": "#b4637a",
	"navy":   "#89b4fa",
	"blue":   "#89b4fa",
	"green":  "#a6e3a1",
	"purple": "#cba6f7",
	"gray":   "#6c7086",
}

func color(fill string) lipgloss.Color {
	if strings.HasPrefix(fill, "#") {
		return lipgloss.Color(fill)
	}
	if c, ok := palette[strings.ToLower(fill)]; ok {
		return lipgloss.Color(c)
	}
	return lipgloss.Color("#6c7086")
}

type cell struct {
	ch   rune
	fill string
	hot  bool
}

// canvas is a character grid the table scene is rasterized onto. One
// column covers scale table units and one row covers twice that, which
// keeps cards roughly in proportion. Rotation is ignored.
type canvas struct {
	cols, rows int
	scale      float64
	cells      [][]cell
}

func newCanvas(cols, rows int, scale float64) *canvas {
	if scale <= 0 {
		scale = 8
	}
	c := &canvas{cols: max(0, cols), rows: max(0, rows), scale: scale}
	c.cells = make([][]cell, c.rows)
	for r := range c.cells {
		c.cells[r] = make([]cell, c.cols)
		for i := range c.cells[r] {
			c.cells[r][i] = cell{ch: ' '}
		}
	}
	return c
}

func (c *canvas) at(x, y float64) (col, row int) {
	return int(math.Floor(x / c.scale)), int(math.Floor(y / (2 * c.scale)))
}

func (c *canvas) put(col, row int, s, fill string, hot bool) {
	if row < 0 || row >= c.rows {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.cols {
			c.cells[row][col] = cell{ch: r, fill: fill, hot: hot}
		}
		col++
	}
}

// token is the text drawn for one sprite.
func token(s scene.Sprite) string {
	label := s.Visual.Label
	if label == "" {
		label = s.Visual.Key
	}
	runes := []rune(label)
	if len(runes) > cardWidth-2 {
		runes = runes[:cardWidth-2]
	}
	label = string(runes)
	return "[" + label + strings.Repeat(" ", cardWidth-2-len(runes)) + "]"
}

// draw rasterizes every pile of tv, bottom card first so upper cards
// overwrite lower ones. Each pile's name sits on the row above its anchor;
// the pile whose view id is hot is highlighted.
func (c *canvas) draw(tv *view.TableView, hot string) {
	root := tv.Scene()
	for _, pv := range tv.Children() {
		isHot := pv.ID() == hot
		pos := pv.Position()
		col, row := c.at(pos.X+root.X, pos.Y+root.Y)
		name := pv.Pile().Name()
		if isHot {
			name = "▶ " + name
		}
		c.put(col, row-1, name, "gray", isHot)
		if pv.Pile().IsEmpty() {
			c.put(col, row, "[   ]", "gray", isHot)
			continue
		}
		g := pv.Scene()
		if g == nil {
			continue
		}
		g.Walk(func(s scene.Sprite) {
			col, row := c.at(s.X+root.X, s.Y+root.Y)
			c.put(col, row, token(s), s.Visual.Fill, isHot)
		})
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.rows)
	for r, row := range c.cells {
		var b strings.Builder
		for i := 0; i < len(row); {
			j := i
			var run strings.Builder
			for j < len(row) && row[j].fill == row[i].fill && row[j].hot == row[i].hot {
				run.WriteRune(row[j].ch)
				j++
			}
			if row[i].fill == "" && !row[i].hot {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(color(row[i].fill)).Reverse(row[i].hot).Render(run.String()))
			}
			i = j
		}
		lines[r] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}
