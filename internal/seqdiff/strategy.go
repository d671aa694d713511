package seqdiff

import (
	"fmt"
	"strings"
)

// Strategy selects the algorithm Diff uses. The zero value is StrategyDefault.
type Strategy int

const (
	StrategyDefault Strategy = iota // Minimal shift: paired substitutions at differing indexes.
	StrategyGrouped                 // Replace the whole tail starting at the first mismatch.
	StrategySystem                  // Generic LCS-style diff; used as a reference.
)

// Strategies lists every strategy in declaration order.
var Strategies = []Strategy{StrategyDefault, StrategyGrouped, StrategySystem}

func (s Strategy) String() string {
	switch s {
	case StrategyDefault:
		return "default"
	case StrategyGrouped:
		return "grouped"
	case StrategySystem:
		return "system"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Next returns the strategy after s, wrapping around.
func (s Strategy) Next() Strategy {
	return Strategies[(int(s)+1)%len(Strategies)]
}

// ParseStrategy parses a strategy name as produced by String. Matching is case-insensitive and ignores surrounding whitespace. "" parses as StrategyDefault.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "minimal":
		return StrategyDefault, nil
	case "grouped":
		return StrategyGrouped, nil
	case "system", "reference":
		return StrategySystem, nil
	default:
		return StrategyDefault, fmt.Errorf("unknown diff strategy %q (want default, grouped, or system)", name)
	}
}

// diffMinimalShift walks both sequences by index. Within the overlap, differing elements produce a paired removal and insertion at the same index. Past the overlap, only insertions
// (new is longer) or removals (old is longer) are produced.
func diffMinimalShift(oldSeq, newSeq []string) []Operation {
	var removals, insertions []Operation

	for i, el := range newSeq {
		if i >= len(oldSeq) {
			insertions = append(insertions, Insert(i, el))
			continue
		}
		if el != oldSeq[i] {
			removals = append(removals, Remove(i, oldSeq[i]))
			insertions = append(insertions, Insert(i, el))
		}
	}
	for i := len(newSeq); i < len(oldSeq); i++ {
		removals = append(removals, Remove(i, oldSeq[i]))
	}

	return joinReversed(removals, insertions)
}

// diffGrouped removes oldSeq[k:] and inserts newSeq[k:], where k is the first index at which the sequences differ. When one sequence is a prefix of the other, k is the length of
// the shorter one, so equal sequences yield no operations.
func diffGrouped(oldSeq, newSeq []string) []Operation {
	k := 0
	for k < len(oldSeq) && k < len(newSeq) && oldSeq[k] == newSeq[k] {
		k++
	}

	var removals, insertions []Operation
	for i := k; i < len(oldSeq); i++ {
		removals = append(removals, Remove(i, oldSeq[i]))
	}
	for i := k; i < len(newSeq); i++ {
		insertions = append(insertions, Insert(i, newSeq[i]))
	}

	return joinReversed(removals, insertions)
}

// joinReversed returns removals in reverse order followed by insertions. Returns nil if both are empty.
func joinReversed(removals, insertions []Operation) []Operation {
	if len(removals)+len(insertions) == 0 {
		return nil
	}
	out := make([]Operation, 0, len(removals)+len(insertions))
	for i := len(removals) - 1; i >= 0; i-- {
		out = append(out, removals[i])
	}
	return append(out, insertions...)
}
