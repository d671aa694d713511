// Package tickerui renders a rotating label in the terminal with bubbletea.
//
// Renderer implements rotlabel.Renderer for terminal cells: handles are glyphs whose extent is their cell width. The label occupies three rows; the middle row is the baseline,
// and entering/exiting glyphs pass through the row above or below depending on the direction.
package tickerui

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/codalotl/rotlabel/internal/q/uni"
	"github.com/codalotl/rotlabel/internal/reconcile"
	"github.com/codalotl/rotlabel/internal/rotlabel"
)

// Rows is the height of a rendered label.
const Rows = 3

const baseline = 1

type glyphState int

const (
	glyphSteady glyphState = iota
	glyphEntering
	glyphExiting
)

// glyph is the renderer's token for one displayed grapheme cluster.
type glyph struct {
	text  string
	width int

	state          glyphState
	fromX, toX     int
	fromRow, toRow int
	flash          rotlabel.Direction // DirectionAuto means no flash
}

// Styles colors glyphs.
type Styles struct {
	Text      lipgloss.Style
	Increment lipgloss.Style
	Decrement lipgloss.Style
	Exiting   lipgloss.Style
}

// NewStyles builds Styles from lipgloss color strings.
func NewStyles(text, increment, decrement string) Styles {
	return Styles{
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
		Increment: lipgloss.NewStyle().Foreground(lipgloss.Color(increment)).Bold(true),
		Decrement: lipgloss.NewStyle().Foreground(lipgloss.Color(decrement)).Bold(true),
		Exiting:   lipgloss.NewStyle().Foreground(lipgloss.Color(text)).Faint(true),
	}
}

func plainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Text: plain, Increment: plain, Decrement: plain, Exiting: plain}
}

// Renderer draws glyphs into a three-row cell grid and steps transitions frame by frame.
type Renderer struct {
	measurer *uni.Measurer
	styles   Styles
	frames   int

	glyphs []*glyph // live and exiting
	frame  int      // current frame of the transition; == total when settled
	total  int
	width  int // max of the before and after widths while animating
}

// NewRenderer returns a Renderer that animates transitions over frames steps. frames <= 0 disables animation.
func NewRenderer(measurer *uni.Measurer, styles Styles, frames int) *Renderer {
	return &Renderer{measurer: measurer, styles: styles, frames: max(frames, 0)}
}

// NewHandle implements rotlabel.Renderer.
func (r *Renderer) NewHandle(element string) *glyph {
	g := &glyph{text: element, width: r.measurer.Width(element), toRow: baseline, fromRow: baseline}
	r.glyphs = append(r.glyphs, g)
	return g
}

// ReleaseHandle implements rotlabel.Renderer.
func (r *Renderer) ReleaseHandle(g *glyph) {
	if i := slices.Index(r.glyphs, g); i >= 0 {
		r.glyphs = slices.Delete(r.glyphs, i, i+1)
	}
}

// Extent implements rotlabel.Renderer. Glyphs are one row tall.
func (r *Renderer) Extent(g *glyph) reconcile.Extent {
	return reconcile.Extent{Width: g.width, Height: 1}
}

// ApplyPositions implements rotlabel.Renderer. It restarts the frame counter, so a transition applied mid-animation supersedes the previous one.
func (r *Renderer) ApplyPositions(t rotlabel.Transition[*glyph]) {
	animated := t.Animated && r.frames > 0

	// Entering glyphs come from below when incrementing; exiting glyphs leave the other way.
	enterRow, exitRow := baseline+1, baseline-1
	if t.Direction == rotlabel.DirectionDecrement {
		enterRow, exitRow = baseline-1, baseline+1
	}

	for id, g := range t.Tokens {
		before, hadBefore := t.Before.Position(id)
		after, hasAfter := t.After.Position(id)

		switch {
		case hasAfter && !hadBefore:
			g.fromX, g.toX = after.Offset, after.Offset
			g.fromRow, g.toRow = enterRow, baseline
			g.state = glyphEntering
			g.flash = t.Direction
		case hadBefore && !hasAfter:
			g.fromX, g.toX = before.Offset, before.Offset
			g.fromRow, g.toRow = baseline, exitRow
			g.state = glyphExiting
		default:
			g.fromX, g.toX = before.Offset, after.Offset
			g.fromRow, g.toRow = baseline, baseline
			g.state = glyphSteady
			g.flash = rotlabel.DirectionAuto
		}
		if !animated {
			g.fromX, g.fromRow = g.toX, g.toRow
			g.flash = rotlabel.DirectionAuto
		}
	}

	r.width = max(t.Before.Size.Width, t.After.Size.Width)
	r.frame = 0
	r.total = 0
	if animated {
		r.total = r.frames
	} else {
		r.width = t.After.Size.Width
	}
}

// Animating reports whether a transition is in progress.
func (r *Renderer) Animating() bool {
	return r.frame < r.total
}

// Step advances the transition by one frame. It returns true when the transition has just completed, at which point the caller should call Label.Finish and then Settle.
func (r *Renderer) Step() bool {
	if !r.Animating() {
		return false
	}
	r.frame++
	return r.frame == r.total
}

// Cancel implements rotlabel.Renderer. Glyphs snap to the targets of the last ApplyPositions and lose their flash; exiting glyphs stay hidden until released.
func (r *Renderer) Cancel() {
	for _, g := range r.glyphs {
		g.fromX, g.fromRow = g.toX, g.toRow
		g.flash = rotlabel.DirectionAuto
		if g.state == glyphEntering {
			g.state = glyphSteady
		}
	}
	r.frame, r.total = 0, 0
}

// Settle ends any transition like Cancel and sets the label's settled width.
func (r *Renderer) Settle(width int) {
	r.Cancel()
	r.width = width
}

// progress returns how far the transition is, in [0, 1].
func (r *Renderer) progress() float64 {
	if r.total == 0 {
		return 1
	}
	return float64(r.frame) / float64(r.total)
}

// Render returns the label as Rows lines, each exactly as wide as the label in cells.
func (r *Renderer) Render() string {
	p := r.progress()
	grid := make([][]*glyph, Rows) // every cell a glyph covers points at it; nil for empty cells
	for i := range grid {
		grid[i] = make([]*glyph, r.width)
	}
	heads := make(map[*glyph]int, len(r.glyphs))

	// Steady glyphs last so they win collisions with passing ones.
	ordered := slices.Clone(r.glyphs)
	slices.SortStableFunc(ordered, func(a, b *glyph) int {
		return rank(a) - rank(b)
	})

	for _, g := range ordered {
		if g.width == 0 || (g.state == glyphExiting && p >= 1) {
			continue
		}
		row := g.fromRow
		if p >= 0.5 {
			row = g.toRow
		}
		x := int(math.Round(float64(g.fromX) + float64(g.toX-g.fromX)*p))
		if row < 0 || row >= Rows || x < 0 || x+g.width > r.width {
			continue
		}
		// A glyph drawn later replaces every glyph it overlaps, wide or not.
		for i := x; i < x+g.width; i++ {
			if o := grid[row][i]; o != nil {
				for j := heads[o]; j < heads[o]+o.width; j++ {
					grid[row][j] = nil
				}
			}
		}
		for i := x; i < x+g.width; i++ {
			grid[row][i] = g
		}
		heads[g] = x
	}

	lines := make([]string, Rows)
	for i, row := range grid {
		var b strings.Builder
		for x := 0; x < len(row); x++ {
			g := row[x]
			if g == nil {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(r.style(g).Render(g.text))
			x += g.width - 1
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func rank(g *glyph) int {
	switch g.state {
	case glyphExiting:
		return 0
	case glyphEntering:
		return 1
	default:
		return 2
	}
}

func (r *Renderer) style(g *glyph) lipgloss.Style {
	switch {
	case g.state == glyphExiting:
		return r.styles.Exiting
	case g.flash == rotlabel.DirectionIncrement:
		return r.styles.Increment
	case g.flash == rotlabel.DirectionDecrement:
		return r.styles.Decrement
	default:
		return r.styles.Text
	}
}
