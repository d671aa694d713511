package seqdiff

import (
	"fmt"
	"strconv"

	"github.com/codalotl/rotlabel/internal/q/uni"
)

// Kind is the kind of an Operation.
type Kind int

const (
	KindInsert Kind = iota
	KindRemove
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "Insert"
	case KindRemove:
		return "Remove"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Operation is one step of an edit script.
type Operation struct {
	Kind    Kind
	Offset  int    // Index into the sequence as it stands when this operation is applied.
	Element string // Inserted element, or the element expected at Offset for removals.
}

// Insert returns an operation inserting element at offset.
func Insert(offset int, element string) Operation {
	return Operation{Kind: KindInsert, Offset: offset, Element: element}
}

// Remove returns an operation removing element from offset.
func Remove(offset int, element string) Operation {
	return Operation{Kind: KindRemove, Offset: offset, Element: element}
}

// String renders op as Insert(1,"x") or Remove(1,"x").
func (op Operation) String() string {
	return op.Kind.String() + "(" + strconv.Itoa(op.Offset) + "," + strconv.Quote(op.Element) + ")"
}

// Diff returns the edit script transforming oldSeq into newSeq according to strategy. Both inputs are left untouched.
//
// Diff panics if the strategy produced a script that does not reconstruct newSeq; that can only happen through a bug in this package.
func Diff(oldSeq, newSeq []string, strategy Strategy) []Operation {
	var ops []Operation
	switch strategy {
	case StrategyDefault:
		ops = diffMinimalShift(oldSeq, newSeq)
	case StrategyGrouped:
		ops = diffGrouped(oldSeq, newSeq)
	case StrategySystem:
		ops = diffSystem(oldSeq, newSeq)
	default:
		panic(fmt.Errorf("seqdiff: unknown strategy %d", int(strategy)))
	}

	if err := validate(oldSeq, newSeq, ops); err != nil {
		panic(fmt.Errorf("seqdiff: %v strategy: validate failed with %v", strategy, err))
	}

	return ops
}

// DiffText splits oldText and newText into grapheme clusters and diffs them.
func DiffText(oldText, newText string, strategy Strategy) []Operation {
	return Diff(uni.Graphemes(oldText), uni.Graphemes(newText), strategy)
}

// Stat reports the number of insertions and removals in ops.
func Stat(ops []Operation) (inserts, removes int) {
	for _, op := range ops {
		switch op.Kind {
		case KindInsert:
			inserts++
		case KindRemove:
			removes++
		}
	}
	return inserts, removes
}

// Apply replays ops against a copy of seq and returns the result. It returns an error naming the first operation whose offset is out of range, or whose Element doesn't match the
// element it removes.
func Apply(seq []string, ops []Operation) ([]string, error) {
	out := make([]string, len(seq), len(seq)+len(ops))
	copy(out, seq)

	for i, op := range ops {
		switch op.Kind {
		case KindRemove:
			if op.Offset < 0 || op.Offset >= len(out) {
				return nil, fmt.Errorf("op[%d] %v: offset out of range [0,%d)", i, op, len(out))
			}
			if out[op.Offset] != op.Element {
				return nil, fmt.Errorf("op[%d] %v: element at offset is %q", i, op, out[op.Offset])
			}
			out = append(out[:op.Offset], out[op.Offset+1:]...)
		case KindInsert:
			if op.Offset < 0 || op.Offset > len(out) {
				return nil, fmt.Errorf("op[%d] %v: offset out of range [0,%d]", i, op, len(out))
			}
			out = append(out, "")
			copy(out[op.Offset+1:], out[op.Offset:])
			out[op.Offset] = op.Element
		default:
			return nil, fmt.Errorf("op[%d]: unknown kind %v", i, op.Kind)
		}
	}

	return out, nil
}

// validate checks that ops reconstructs newSeq from oldSeq and follows the removals-then-insertions ordering.
func validate(oldSeq, newSeq []string, ops []Operation) error {
	seenInsert := false
	for i, op := range ops {
		if op.Kind == KindInsert {
			seenInsert = true
			if i > 0 && ops[i-1].Kind == KindInsert && ops[i-1].Offset >= op.Offset {
				return fmt.Errorf("op[%d] %v: insertions must ascend", i, op)
			}
			continue
		}
		if seenInsert {
			return fmt.Errorf("op[%d] %v: removal after insertion", i, op)
		}
		if i > 0 && ops[i-1].Offset <= op.Offset {
			return fmt.Errorf("op[%d] %v: removals must descend", i, op)
		}
	}

	got, err := Apply(oldSeq, ops)
	if err != nil {
		return err
	}
	if len(got) != len(newSeq) {
		return fmt.Errorf("result has %d elements, want %d", len(got), len(newSeq))
	}
	for i := range got {
		if got[i] != newSeq[i] {
			return fmt.Errorf("result[%d] = %q, want %q", i, got[i], newSeq[i])
		}
	}
	return nil
}
