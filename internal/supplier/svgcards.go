package supplier

import "github.com/jask/playingcards/internal/card"

// DefaultSpriteURL is where the SVG-cards sprite sheet is served by default.
const DefaultSpriteURL = "/svg-cards.svg"

// SVGCards supplies fragments of an SVG-cards sprite sheet.
type SVGCards struct {
	URL string
}

// NewSVGCards returns a supplier for the sheet at url, or at
// DefaultSpriteURL when url is empty.
func NewSVGCards(url string) SVGCards {
	if url == "" {
		url = DefaultSpriteURL
	}
	return SVGCards{URL: url}
}

func (s SVGCards) Supply(f card.Face) Visual {
	key := Key(f)
	v := Visual{Key: key, Href: s.URL + "#" + key, Label: key}
	if !f.FaceUp {
		v.Fill = f.BackColor
	}
	return v
}
