package rectpack

import (
	"errors"
	"fmt"
	"strings"
)

// Heuristic selects the rule used to choose a free rectangle for a new item.
type Heuristic uint8

const (
	// BestShortSideFit positions the rectangle against the short side of the free
	// rectangle into which it fits the best.
	BestShortSideFit Heuristic = iota
	// BestLongSideFit positions the rectangle against the long side of the free
	// rectangle into which it fits the best.
	BestLongSideFit
	// BestAreaFit positions the rectangle into the smallest free rectangle into
	// which it fits.
	BestAreaFit
	// BottomLeft does the Tetris placement.
	BottomLeft
	// ContactPoint chooses the placement where the rectangle touches other
	// rectangles and the bin border as much as possible.
	ContactPoint
	// BestSquareFit keeps the packed footprint, measured from the bin origin, as
	// close to a square as possible.
	BestSquareFit

	numHeuristics
)

// ErrUnknownHeuristic is returned by ParseHeuristic for unrecognised names.
var ErrUnknownHeuristic = errors.New("unknown heuristic")

var heuristicNames = [numHeuristics]string{
	BestShortSideFit: "BestShortSideFit",
	BestLongSideFit:  "BestLongSideFit",
	BestAreaFit:      "BestAreaFit",
	BottomLeft:       "BottomLeft",
	ContactPoint:     "ContactPoint",
	BestSquareFit:    "BestSquareFit",
}

var heuristicAliases = map[string]Heuristic{
	"bssf": BestShortSideFit,
	"blsf": BestLongSideFit,
	"baf":  BestAreaFit,
	"bl":   BottomLeft,
	"cp":   ContactPoint,
	"bsf":  BestSquareFit,
}

// Heuristics returns every heuristic in declaration order.
func Heuristics() []Heuristic {
	all := make([]Heuristic, 0, numHeuristics)
	for h := Heuristic(0); h < numHeuristics; h++ {
		all = append(all, h)
	}
	return all
}

// Valid reports whether h is one of the six declared heuristics.
func (h Heuristic) Valid() bool {
	return h < numHeuristics
}

func (h Heuristic) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Heuristic(%d)", uint8(h))
	}
	return heuristicNames[h]
}

// ParseHeuristic resolves a heuristic from its name ("BestAreaFit") or its short
// form ("baf"). Matching is case-insensitive.
func ParseHeuristic(name string) (Heuristic, error) {
	for h, n := range heuristicNames {
		if strings.EqualFold(n, name) {
			return Heuristic(h), nil
		}
	}
	if h, ok := heuristicAliases[strings.ToLower(name)]; ok {
		return h, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
}
