// Package layout computes where the cards of a pile go.
package layout

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Fan is the closed set of pile layouts.
type Fan uint8

const (
	None Fan = iota
	Up
	Down
	Left
	Right
	Arc
)

// Fans lists every fan style.
var Fans = []Fan{None, Up, Down, Left, Right, Arc}

func (f Fan) String() string {
	switch f {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Arc:
		return "arc"
	default:
		return "none"
	}
}

// ParseFan maps a fan name to its Fan. Names are case-insensitive and
// trimmed; the empty string is None. Unknown names map to None with ok false.
func ParseFan(s string) (f Fan, ok bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return None, true
	}
	for _, f := range Fans {
		if f.String() == name {
			return f, true
		}
	}
	return None, false
}

// Suggest returns the fan whose name is closest to s, when it is within two
// edits and closer than the length of s.
func Suggest(s string) (Fan, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	best, bestDist := None, 3
	for _, f := range Fans {
		if d := levenshtein.ComputeDistance(name, f.String()); d < bestDist {
			best, bestDist = f, d
		}
	}
	return best, bestDist <= 2 && bestDist < len(name)
}
