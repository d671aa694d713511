package reconcile

import (
	"math/rand"
	"testing"

	"github.com/codalotl/rotlabel/internal/q/uni"
	"github.com/codalotl/rotlabel/internal/seqdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// view stands in for a renderer's per-character view.
type view struct {
	text string
}

func newView(element string) *view {
	return &view{text: element}
}

func setText(t *testing.T, r *Reconciler[*view], oldText, newText string, s seqdiff.Strategy) Result {
	t.Helper()
	res := r.Apply(seqdiff.DiffText(oldText, newText, s), newView)
	requireAligned(t, r, newText)
	return res
}

func requireAligned(t *testing.T, r *Reconciler[*view], text string) {
	t.Helper()
	want := uni.Graphemes(text)
	require.Equal(t, len(want), r.Len())
	for i, id := range r.Handles() {
		require.Equal(t, want[i], r.Element(id))
		require.Equal(t, want[i], r.Token(id).text)
		require.True(t, r.Live(id))
	}
}

func TestApply_CreatesAndDestroys(t *testing.T) {
	r := New[*view]()

	res := setText(t, r, "", "20.00", seqdiff.StrategyDefault)
	assert.Len(t, res.Created, 5)
	assert.Empty(t, res.Destroyed)
	before := r.Handles()

	res = setText(t, r, "20.00", "21.00", seqdiff.StrategyDefault)
	require.Len(t, res.Created, 1)
	require.Len(t, res.Destroyed, 1)
	assert.Equal(t, before[1], res.Destroyed[0])
	assert.False(t, r.Live(res.Destroyed[0]))
	assert.Equal(t, "0", r.Token(res.Destroyed[0]).text, "detached handles keep their token until released")

	after := r.Handles()
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2:], after[2:])
	assert.Equal(t, res.Created[0], after[1])
}

func TestApply_GroupedReplacesTail(t *testing.T) {
	r := New[*view]()
	setText(t, r, "", "20.00", seqdiff.StrategyDefault)
	first := r.Handles()[0]

	res := setText(t, r, "20.00", "21.00", seqdiff.StrategyGrouped)
	assert.Len(t, res.Created, 4)
	assert.Len(t, res.Destroyed, 4)
	assert.Equal(t, first, r.Handles()[0])
}

func TestApply_Interleaved(t *testing.T) {
	r := New[*view]()
	r.Apply([]seqdiff.Operation{seqdiff.Insert(0, "b"), seqdiff.Insert(0, "a"), seqdiff.Remove(1, "b"), seqdiff.Insert(1, "c")}, newView)
	assert.Equal(t, []string{"a", "c"}, r.Elements())
}

func TestApply_AlignmentRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	chars := []string{"0", "1", "9", ".", ",", "$", "世"}
	randomText := func() string {
		n := rng.Intn(9)
		s := ""
		for i := 0; i < n; i++ {
			s += chars[rng.Intn(len(chars))]
		}
		return s
	}

	for _, s := range seqdiff.Strategies {
		r := New[*view]()
		prev := ""
		for i := 0; i < 300; i++ {
			next := randomText()
			res := setText(t, r, prev, next, s)
			for _, id := range res.Destroyed {
				r.Release(id)
			}
			prev = next
		}
	}
}

func TestApply_PanicsOnBadOffset(t *testing.T) {
	r := New[*view]()
	r.Apply([]seqdiff.Operation{seqdiff.Insert(0, "a")}, newView)

	assert.PanicsWithValue(t, `reconcile: op[0] Remove(1,"a"): offset out of range [0,1)`, func() {
		r.Apply([]seqdiff.Operation{seqdiff.Remove(1, "a")}, newView)
	})
	assert.Panics(t, func() {
		r.Apply([]seqdiff.Operation{seqdiff.Insert(2, "b")}, newView)
	})
	assert.Panics(t, func() {
		r.Apply([]seqdiff.Operation{seqdiff.Insert(-1, "b")}, newView)
	})
}

func TestRelease(t *testing.T) {
	r := New[*view]()
	r.Apply([]seqdiff.Operation{seqdiff.Insert(0, "a"), seqdiff.Insert(1, "b")}, newView)
	live := r.Handles()

	assert.Panics(t, func() { r.Release(live[0]) }, "live handles can't be released")

	res := r.Apply([]seqdiff.Operation{seqdiff.Remove(0, "a")}, newView)
	gone := res.Destroyed[0]
	assert.Equal(t, "a", r.Release(gone).text)
	assert.Panics(t, func() { r.Release(gone) }, "double release")
	assert.Panics(t, func() { r.Token(gone) })

	// Freed slots are reused:
	res = r.Apply([]seqdiff.Operation{seqdiff.Insert(1, "c")}, newView)
	assert.Equal(t, gone, res.Created[0])
	assert.Equal(t, []string{"b", "c"}, r.Elements())
}

func TestReset(t *testing.T) {
	r := New[*view]()
	r.Apply(seqdiff.DiffText("", "abc", seqdiff.StrategyDefault), newView)
	r.Apply(seqdiff.DiffText("abc", "ab", seqdiff.StrategyDefault), newView)

	tokens := r.Reset()
	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.text)
	}
	assert.Equal(t, []string{"a", "b", "c"}, texts)
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Reset())
}
