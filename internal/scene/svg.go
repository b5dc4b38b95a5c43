package scene

import (
	"context"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/jask/playingcards/internal/layout"
)

// SVG renders root as a standalone <svg> element of the given size.
func SVG(root *Group, width, height float64) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"`)
		attr(&b, "width", num(width))
		attr(&b, "height", num(height))
		attr(&b, "viewBox", "0 0 "+num(width)+" "+num(height))
		b.WriteString(">")
		writeGroup(&b, root)
		b.WriteString("</svg>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Fragment renders root as a <g> element, for embedding in an existing
// document.
func Fragment(root *Group) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		writeGroup(&b, root)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeGroup(b *strings.Builder, g *Group) {
	if g == nil {
		return
	}
	b.WriteString("<g")
	if g.ID != "" {
		attr(b, "id", g.ID)
		attr(b, "data-view", g.ID)
	}
	if g.Class != "" {
		attr(b, "class", g.Class)
	}
	if g.Name != "" {
		attr(b, "data-name", g.Name)
	}
	if g.X != 0 || g.Y != 0 {
		attr(b, "transform", "translate("+num(g.X)+" "+num(g.Y)+")")
	}
	b.WriteString(">")
	for _, s := range g.Sprites {
		writeSprite(b, s)
	}
	for _, c := range g.Children {
		writeGroup(b, c)
	}
	b.WriteString("</g>")
}

func writeSprite(b *strings.Builder, s Sprite) {
	b.WriteString("<use")
	attr(b, "href", s.Visual.Href)
	attr(b, "xlink:href", s.Visual.Href)
	attr(b, "width", num(layout.CardWidth))
	attr(b, "height", num(layout.CardHeight))
	if s.Visual.Fill != "" {
		attr(b, "fill", s.Visual.Fill)
	}
	attr(b, "data-key", s.Visual.Key)
	tr := "translate(" + num(s.X) + " " + num(s.Y) + ")"
	if s.Rotation != 0 {
		tr += " rotate(" + num(s.Rotation) + ")"
	}
	attr(b, "transform", tr)
	b.WriteString("/>")
}

func attr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(templ.EscapeString(value))
	b.WriteString(`"`)
}

// num formats v with at most two decimals.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
