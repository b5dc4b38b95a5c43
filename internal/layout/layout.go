package layout

import "math"

// Card dimensions in SVG user units, matching the SVG-cards sprite sheet.
const (
	CardWidth  = 169.075
	CardHeight = 244.64
)

// Point is a position on the table.
type Point struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

// Transform places a whole pile: rotate by Rotation degrees about the anchor,
// then move the anchor to (X, Y).
type Transform struct {
	X, Y     float64
	Rotation float64
}

// Placement is where one card goes and how much it is turned, in degrees.
type Placement struct {
	X, Y     float64
	Rotation float64
}

// Spacing controls how far apart fanned cards are.
type Spacing struct {
	// HStep and VStep are the offsets between neighbours for horizontal and
	// vertical fans.
	HStep, VStep float64
	// ArcStep is the angle between neighbours on an arc, capped at
	// ArcMaxSpan for the whole arc.
	ArcStep, ArcMaxSpan float64
	// The arc radius grows by ArcRadiusStep per card from ArcRadius.
	ArcRadius, ArcRadiusStep float64
}

// DefaultSpacing fits the SVG-cards sprite sheet.
var DefaultSpacing = Spacing{
	HStep:         CardWidth / 5,
	VStep:         CardHeight / 8,
	ArcStep:       8,
	ArcMaxSpan:    150,
	ArcRadius:     CardHeight,
	ArcRadiusStep: 6,
}

func (s Spacing) orDefault() Spacing {
	d := DefaultSpacing
	if s.HStep != 0 {
		d.HStep = s.HStep
	}
	if s.VStep != 0 {
		d.VStep = s.VStep
	}
	if s.ArcStep != 0 {
		d.ArcStep = s.ArcStep
	}
	if s.ArcMaxSpan != 0 {
		d.ArcMaxSpan = s.ArcMaxSpan
	}
	if s.ArcRadius != 0 {
		d.ArcRadius = s.ArcRadius
	}
	if s.ArcRadiusStep != 0 {
		d.ArcRadiusStep = s.ArcRadiusStep
	}
	return d
}

// Offsets returns the position of each of n cards relative to the pile
// anchor, bottom card first. Zero fields of s take their default.
func Offsets(f Fan, n int, s Spacing) []Placement {
	s = s.orDefault()
	out := make([]Placement, n)
	switch f {
	case Up:
		for i := range out {
			out[i].Y = -float64(i) * s.VStep
		}
	case Down:
		for i := range out {
			out[i].Y = float64(i) * s.VStep
		}
	case Left:
		for i := range out {
			out[i].X = -float64(i) * s.HStep
		}
	case Right:
		for i := range out {
			out[i].X = float64(i) * s.HStep
		}
	case Arc:
		if n < 2 {
			break
		}
		span := math.Min(s.ArcStep*float64(n-1), s.ArcMaxSpan)
		radius := s.ArcRadius + s.ArcRadiusStep*float64(n)
		step := span / float64(n-1)
		for i := range out {
			deg := -span/2 + float64(i)*step
			rad := deg * math.Pi / 180
			out[i] = Placement{
				X:        radius * math.Sin(rad),
				Y:        radius * (1 - math.Cos(rad)),
				Rotation: deg,
			}
		}
	}
	return out
}

// Apply moves placements rigidly by t.
func Apply(t Transform, ps []Placement) []Placement {
	rad := t.Rotation * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	out := make([]Placement, len(ps))
	for i, p := range ps {
		out[i] = Placement{
			X:        t.X + p.X*cos - p.Y*sin,
			Y:        t.Y + p.X*sin + p.Y*cos,
			Rotation: p.Rotation + t.Rotation,
		}
	}
	return out
}

// Fanned lays out n cards for fan f and moves them by t.
func Fanned(f Fan, n int, t Transform, s Spacing) []Placement {
	return Apply(t, Offsets(f, n, s))
}
