package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation in TextWidth and Measurer.
//
// Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// TextWidth returns the text width of str for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

// Graphemes splits str into user-perceived characters (extended grapheme clusters). A base character and its combining marks, or an emoji ZWJ sequence, form a single element.
// The result is nil for "".
func Graphemes(str string) []string {
	if str == "" {
		return nil
	}

	var out []string
	iter := graphemes.FromString(str)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// Measurer measures grapheme clusters with a fixed set of Options. Construct one per render pass instead of calling TextWidth repeatedly, which rebuilds the width table condition
// each time.
type Measurer struct {
	cond *runewidth.Condition
}

// NewMeasurer returns a Measurer for opts. If opts is nil, locale is assumed to be non-East Asian.
func NewMeasurer(opts *Options) *Measurer {
	return &Measurer{cond: conditionFromOptions(opts)}
}

// Width returns the number of terminal cells str occupies.
func (m *Measurer) Width(str string) int {
	return m.cond.StringWidth(str)
}

// Widths returns the width of each element of clusters, index-aligned.
func (m *Measurer) Widths(clusters []string) []int {
	out := make([]int, len(clusters))
	for i, c := range clusters {
		out[i] = m.cond.StringWidth(c)
	}
	return out
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
