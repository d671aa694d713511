package seqdiff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffSystem diffs with diffmatchpatch. Each distinct element is interned to a rune so that multi-rune grapheme clusters compare atomically (the same trick
// diffmatchpatch.DiffLinesToRunes uses for lines). Deletions become removals at their old offsets (emitted descending); insertions keep their new offsets (ascending).
func diffSystem(oldSeq, newSeq []string) []Operation {
	table := newInternTable(len(oldSeq) + len(newSeq))
	oldRunes := table.encode(oldSeq)
	newRunes := table.encode(newSeq)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // deterministic output regardless of input size
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)

	var removals, insertions []Operation
	oldIdx, newIdx := 0, 0
	for _, d := range diffs {
		for _, r := range []rune(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldIdx++
				newIdx++
			case diffmatchpatch.DiffDelete:
				removals = append(removals, Remove(oldIdx, table.decode(r)))
				oldIdx++
			case diffmatchpatch.DiffInsert:
				insertions = append(insertions, Insert(newIdx, table.decode(r)))
				newIdx++
			}
		}
	}

	return joinReversed(removals, insertions)
}

// internTable maps elements to runes and back. Runes skip the surrogate range so every rune survives a string round trip inside diffmatchpatch.
type internTable struct {
	ids      map[string]rune
	elements map[rune]string
}

func newInternTable(capacity int) *internTable {
	return &internTable{
		ids:      make(map[string]rune, capacity),
		elements: make(map[rune]string, capacity),
	}
}

func (t *internTable) encode(seq []string) []rune {
	out := make([]rune, len(seq))
	for i, el := range seq {
		r, ok := t.ids[el]
		if !ok {
			r = runeForIndex(len(t.ids))
			t.ids[el] = r
			t.elements[r] = el
		}
		out[i] = r
	}
	return out
}

func (t *internTable) decode(r rune) string {
	return t.elements[r]
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

func runeForIndex(i int) rune {
	r := rune(i + 1)
	if r >= surrogateMin {
		r += surrogateMax - surrogateMin + 1
	}
	if r > 0x10FFFF {
		panic("seqdiff: too many distinct elements for the system strategy")
	}
	return r
}
