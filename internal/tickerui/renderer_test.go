package tickerui

import (
	"strings"
	"testing"

	"github.com/codalotl/rotlabel/internal/q/uni"
	"github.com/codalotl/rotlabel/internal/rotlabel"
	"github.com/codalotl/rotlabel/internal/seqdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLabel(frames int, s seqdiff.Strategy) (*Renderer, *Label) {
	r := NewRenderer(uni.NewMeasurer(nil), plainStyles(), frames)
	return r, NewLabel(r, s)
}

func rows(r *Renderer) []string {
	return strings.Split(r.Render(), "\n")
}

func TestRenderer_Settled(t *testing.T) {
	r, l := newTestLabel(4, seqdiff.StrategyDefault)
	l.SetText("20.00", false, rotlabel.DirectionAuto)

	assert.False(t, r.Animating())
	assert.Equal(t, []string{"     ", "20.00", "     "}, rows(r))
}

func TestRenderer_IncrementAnimation(t *testing.T) {
	r, l := newTestLabel(4, seqdiff.StrategyDefault)
	l.SetText("20.00", false, rotlabel.DirectionAuto)

	_, ok := l.SetText("21.00", true, rotlabel.DirectionIncrement)
	require.True(t, ok)
	require.True(t, r.Animating())

	// First half: the new digit waits below, the old one is still on the baseline.
	assert.Equal(t, []string{"     ", "20.00", " 1   "}, rows(r))
	assert.False(t, r.Step())
	assert.Equal(t, []string{"     ", "20.00", " 1   "}, rows(r))

	// Second half: the new digit is in place and the old one has moved up.
	assert.False(t, r.Step())
	assert.Equal(t, []string{" 0   ", "21.00", "     "}, rows(r))
	assert.False(t, r.Step())

	assert.True(t, r.Step())
	assert.False(t, r.Animating())
	assert.Equal(t, []string{"     ", "21.00", "     "}, rows(r))

	l.Finish()
	r.Settle(l.IntrinsicSize().Width)
	assert.Len(t, r.glyphs, 5)
	assert.False(t, r.Step())
}

func TestRenderer_DecrementAnimation(t *testing.T) {
	r, l := newTestLabel(2, seqdiff.StrategyDefault)
	l.SetText("21", false, rotlabel.DirectionAuto)
	l.SetText("20", true, rotlabel.DirectionAuto)

	assert.Equal(t, []string{" 0", "21", "  "}, rows(r))
	r.Step()
	assert.Equal(t, []string{"  ", "20", " 1"}, rows(r))
}

func TestRenderer_ShrinkingKeepsWidthUntilSettled(t *testing.T) {
	r, l := newTestLabel(2, seqdiff.StrategyDefault)
	l.SetText("100", false, rotlabel.DirectionAuto)
	l.SetText("10", true, rotlabel.DirectionDecrement)

	assert.Equal(t, []string{"   ", "100", "   "}, rows(r))
	require.True(t, r.Step() || r.Step())
	l.Finish()
	r.Settle(l.IntrinsicSize().Width)
	assert.Equal(t, []string{"  ", "10", "  "}, rows(r))
}

func TestRenderer_SurvivorsSlide(t *testing.T) {
	r, l := newTestLabel(2, seqdiff.StrategySystem)
	l.SetText("$9.99", false, rotlabel.DirectionAuto)
	l.SetText("$19.99", true, rotlabel.DirectionIncrement)

	// "9.99" slides one cell right while "1" rises into the gap.
	assert.Equal(t, []string{"      ", "$9.99 ", " 1    "}, rows(r))
	r.Step()
	assert.Equal(t, []string{"      ", "$19.99", "      "}, rows(r))
}

func TestRenderer_WideGlyphs(t *testing.T) {
	r, l := newTestLabel(0, seqdiff.StrategyDefault)
	l.SetText("¥世1", false, rotlabel.DirectionAuto)

	got := rows(r)
	assert.Equal(t, "¥世1", got[baseline])
	for _, row := range got {
		assert.Equal(t, 4, uni.TextWidth(row, nil))
	}
}

func TestRenderer_ZeroFramesDoesNotAnimate(t *testing.T) {
	r, l := newTestLabel(0, seqdiff.StrategyDefault)
	l.SetText("1", false, rotlabel.DirectionAuto)
	l.SetText("2", true, rotlabel.DirectionAuto)

	assert.False(t, r.Animating())
	assert.Equal(t, []string{" ", "2", " "}, rows(r))
}

func TestRenderer_ReleaseHandle(t *testing.T) {
	r, l := newTestLabel(2, seqdiff.StrategyDefault)
	l.SetText("12", false, rotlabel.DirectionAuto)
	l.SetText("1", true, rotlabel.DirectionAuto)
	assert.Len(t, r.glyphs, 2)

	l.Finish()
	assert.Len(t, r.glyphs, 1)

	l.Close()
	assert.Empty(t, r.glyphs)
}

func glyphByText(t *testing.T, r *Renderer, text string) *glyph {
	t.Helper()
	for _, g := range r.glyphs {
		if g.text == text {
			return g
		}
	}
	require.FailNow(t, "no glyph", "text %q", text)
	return nil
}

func TestRenderer_Cancel(t *testing.T) {
	r, l := newTestLabel(4, seqdiff.StrategyDefault)
	l.SetText("20", false, rotlabel.DirectionAuto)
	l.SetText("21", true, rotlabel.DirectionIncrement)
	r.Step()

	r.Cancel()
	assert.False(t, r.Animating())
	assert.Equal(t, []string{"  ", "21", "  "}, rows(r))

	one := glyphByText(t, r, "1")
	assert.Equal(t, glyphSteady, one.state)
	assert.Equal(t, rotlabel.DirectionAuto, one.flash)
}

func TestRenderer_SupersedeStartsFromTargets(t *testing.T) {
	r, l := newTestLabel(4, seqdiff.StrategyDefault)
	l.SetText("20", false, rotlabel.DirectionAuto)
	l.SetText("21", true, rotlabel.DirectionIncrement)
	r.Step()
	r.Step()

	l.SetText("22", true, rotlabel.DirectionIncrement)
	assert.Len(t, r.glyphs, 3, "the first transition's exiting glyph is released")
	assert.Equal(t, []string{"  ", "21", " 2"}, rows(r))
}

func TestRenderer_SurvivorLosesFlash(t *testing.T) {
	r, l := newTestLabel(4, seqdiff.StrategyDefault)
	l.SetText("1", false, rotlabel.DirectionAuto)
	l.SetText("12", true, rotlabel.DirectionIncrement)
	two := glyphByText(t, r, "2")
	require.Equal(t, rotlabel.DirectionIncrement, two.flash)

	// Nothing was destroyed, so this transition starts while "2" is still entering.
	require.Zero(t, l.Pending())
	l.SetText("02", true, rotlabel.DirectionDecrement)
	assert.Equal(t, glyphSteady, two.state)
	assert.Equal(t, rotlabel.DirectionAuto, two.flash)
	assert.Equal(t, rotlabel.DirectionDecrement, glyphByText(t, r, "0").flash)
}

func TestRenderer_LaterGlyphReplacesWideGlyph(t *testing.T) {
	r := NewRenderer(uni.NewMeasurer(nil), plainStyles(), 4)
	wide := r.NewHandle("世")
	wide.state = glyphExiting
	wide.fromRow, wide.toRow = baseline, baseline-1
	one := r.NewHandle("1")
	one.fromX, one.toX = 1, 1
	r.width, r.total, r.frame = 3, 4, 1

	got := rows(r)
	assert.Equal(t, " 1 ", got[baseline], "the steady glyph on the wide glyph's tail wins")
	for _, row := range got {
		assert.Equal(t, 3, uni.TextWidth(row, nil))
	}

	// Narrow glyph drawn first, wide glyph drawn over it.
	r = NewRenderer(uni.NewMeasurer(nil), plainStyles(), 4)
	gone := r.NewHandle("x")
	gone.state = glyphExiting
	gone.fromX, gone.toX = 1, 1
	r.NewHandle("世")
	r.width, r.total, r.frame = 3, 4, 1

	assert.Equal(t, "世 ", rows(r)[baseline])
}
