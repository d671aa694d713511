package rotlabel

import (
	"fmt"
	"strings"
)

// Direction selects the entry/exit treatment a renderer applies to created and destroyed handles. It never affects the edit script or positions.
type Direction int

const (
	DirectionAuto      Direction = iota // Derived by comparing old and new text.
	DirectionIncrement                  // Values going up.
	DirectionDecrement                  // Values going down.
)

func (d Direction) String() string {
	switch d {
	case DirectionAuto:
		return "auto"
	case DirectionIncrement:
		return "increment"
	case DirectionDecrement:
		return "decrement"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Resolve returns d unless it is DirectionAuto, in which case it returns DirectionIncrement if newText >= oldText (byte-wise) and DirectionDecrement otherwise. Depending on how
// values are formatted, the lexicographic comparison can disagree with the numeric one (ex: "$9.00" -> "$10.00" resolves to decrement); callers that know better should pass an
// explicit direction.
func (d Direction) Resolve(oldText, newText string) Direction {
	if d != DirectionAuto {
		return d
	}
	if newText >= oldText {
		return DirectionIncrement
	}
	return DirectionDecrement
}

// ParseDirection parses a direction name as produced by String. "" parses as DirectionAuto.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return DirectionAuto, nil
	case "increment", "up":
		return DirectionIncrement, nil
	case "decrement", "down":
		return DirectionDecrement, nil
	default:
		return DirectionAuto, fmt.Errorf("unknown direction %q (want auto, increment, or decrement)", name)
	}
}
