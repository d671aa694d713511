package tickerui

import (
	"math"
	"math/rand/v2"

	"github.com/codalotl/rotlabel/internal/rotlabel"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice formats v with two decimals and English digit grouping, prefixed by currency (ex: "$1,300.00").
func FormatPrice(currency string, v float64) string {
	if v < 0 {
		return "-" + currency + pricePrinter.Sprintf("%.2f", -v)
	}
	return currency + pricePrinter.Sprintf("%.2f", v)
}

// PriceFeed is a random walk over non-negative prices. Moves are biased upward: each step is uniform in [-0.4, 1.0] * maxDelta.
type PriceFeed struct {
	value    float64
	maxDelta float64
	currency string
	rng      *rand.Rand
}

// NewPriceFeed returns a feed starting at start. The same seed yields the same walk.
func NewPriceFeed(start, maxDelta float64, currency string, seed uint64) *PriceFeed {
	return &PriceFeed{
		value:    start,
		maxDelta: maxDelta,
		currency: currency,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Text returns the current price, formatted.
func (f *PriceFeed) Text() string {
	return FormatPrice(f.currency, f.value)
}

// Value returns the current price.
func (f *PriceFeed) Value() float64 {
	return f.value
}

// Next takes one random step and returns the new formatted price and the direction of the move.
func (f *PriceFeed) Next() (string, rotlabel.Direction) {
	return f.Nudge((f.rng.Float64()*1.4 - 0.4) * f.maxDelta)
}

// Nudge moves the price by delta, clamping at zero, and returns the new formatted price and the direction of the move. Prices are rounded to cents.
func (f *PriceFeed) Nudge(delta float64) (string, rotlabel.Direction) {
	prev := f.value
	f.value = math.Max(0, math.Round((f.value+delta)*100)/100)

	dir := rotlabel.DirectionIncrement
	if f.value < prev {
		dir = rotlabel.DirectionDecrement
	}
	return f.Text(), dir
}
