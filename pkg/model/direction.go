package model

import (
	"fmt"
	"strings"
)

// Direction of travel relative to the capital-city terminus. The string values
// are the labels stored on disk.
type Direction string

const (
	Upstream   Direction = "Subindo (Interior)"
	Downstream Direction = "Descendo (Capital)"
)

// Directions lists both directions in display order.
func Directions() []Direction {
	return []Direction{Upstream, Downstream}
}

// Short is the one-word label used in tables.
func (d Direction) Short() string {
	switch d {
	case Upstream:
		return "Subindo"
	case Downstream:
		return "Descendo"
	default:
		return string(d)
	}
}

// Heading describes where the boat is going, as the assistant context shows it.
func (d Direction) Heading() string {
	if d == Upstream {
		return "Subindo (-> Tabatinga)"
	}
	return "Descendo (-> Manaus)"
}

// Symbol is a compact arrow for terminal output.
func (d Direction) Symbol() string {
	switch d {
	case Upstream:
		return "↑"
	case Downstream:
		return "↓"
	default:
		return "?"
	}
}

func (d Direction) String() string {
	return string(d)
}

var directionAliases = map[string]Direction{
	"up":                 Upstream,
	"upstream":           Upstream,
	"subindo":            Upstream,
	"interior":           Upstream,
	"subindo (interior)": Upstream,
	"down":               Downstream,
	"downstream":         Downstream,
	"descendo":           Downstream,
	"capital":            Downstream,
	"descendo (capital)": Downstream,
}

// ParseDirection accepts a stored label or one of its aliases. An empty
// string yields Upstream, the form default.
func ParseDirection(s string) (Direction, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Upstream, nil
	}
	if d, ok := directionAliases[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown direction %q (expected up or down)", s)
}
