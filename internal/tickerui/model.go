package tickerui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/codalotl/rotlabel/internal/config"
	"github.com/codalotl/rotlabel/internal/q/uni"
	"github.com/codalotl/rotlabel/internal/rotlabel"
	"github.com/codalotl/rotlabel/internal/seqdiff"
)

// Label is a rotating label drawn by a Renderer.
type Label = rotlabel.Label[*glyph]

// NewLabel returns a Label drawn by r.
func NewLabel(r *Renderer, strategy seqdiff.Strategy) *Label {
	return rotlabel.New[*glyph](r, strategy)
}

func newMeasurer(cfg *config.Resolved) *uni.Measurer {
	return uni.NewMeasurer(&uni.Options{EastAsianWidth: cfg.EastAsianWidth, TreatEmojiAsWide: cfg.EmojiWide})
}

type priceMsg struct{}

type frameMsg struct{}

// Model is the bubbletea model of the ticker demo.
type Model struct {
	cfg      *config.Resolved
	renderer *Renderer
	label    *Label
	feed     *PriceFeed
	keys     keyMap
	help     help.Model

	paused  bool
	ticking bool // a frameMsg is scheduled
	stat    string
}

var titleStyle = lipgloss.NewStyle().Bold(true)

// NewModel returns a Model showing a price feed seeded with seed.
func NewModel(cfg *config.Resolved, seed uint64) *Model {
	r := NewRenderer(newMeasurer(cfg), NewStyles(cfg.TextColor, cfg.IncrementColor, cfg.DecrementColor), cfg.Frames)
	m := &Model{
		cfg:      cfg,
		renderer: r,
		label:    NewLabel(r, cfg.Strategy),
		feed:     NewPriceFeed(cfg.Start, cfg.MaxDelta, cfg.Currency, seed),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.label.SetText(m.feed.Text(), false, rotlabel.DirectionAuto)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.priceTick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.label.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Strategy):
			m.label.SetStrategy(m.label.Strategy().Next())
		case key.Matches(msg, m.keys.Copy):
			return m, copyCmd(m.label.Text())
		case key.Matches(msg, m.keys.Up):
			return m, m.show(m.feed.Nudge(m.nudgeSize()))
		case key.Matches(msg, m.keys.Down):
			return m, m.show(m.feed.Nudge(-m.nudgeSize()))
		}
	case copiedMsg:
		if msg.err != nil {
			m.stat = "copy failed: " + msg.err.Error()
		} else {
			m.stat = "copied " + msg.text
		}
	case priceMsg:
		if m.paused {
			return m, m.priceTick()
		}
		return m, tea.Batch(m.priceTick(), m.show(m.feed.Next()))
	case frameMsg:
		m.ticking = false
		if m.renderer.Step() {
			m.settle()
			return m, nil
		}
		if m.renderer.Animating() {
			m.ticking = true
			return m, m.frameTick()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	status := "strategy: " + m.label.Strategy().String()
	if m.paused {
		status += "  (paused)"
	}
	if m.stat != "" {
		status += "  " + m.stat
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("rotlabel")+"  "+status,
		"",
		lipgloss.NewStyle().PaddingLeft(2).Render(m.renderer.Render()),
		"",
		m.help.View(m.keys),
	)
}

// show transitions the label to text. dir is the direction of the price move; a direction set in config takes precedence.
func (m *Model) show(text string, dir rotlabel.Direction) tea.Cmd {
	if m.cfg.Direction != rotlabel.DirectionAuto {
		dir = m.cfg.Direction
	}
	t, ok := m.label.SetText(text, true, dir)
	if !ok {
		return nil
	}
	m.stat = fmt.Sprintf("+%d -%d", len(t.Created), len(t.Destroyed))

	if !m.renderer.Animating() {
		m.settle()
		return nil
	}
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.frameTick()
}

func (m *Model) settle() {
	m.label.Finish()
	m.renderer.Settle(m.label.IntrinsicSize().Width)
}

func (m *Model) nudgeSize() float64 {
	return max(m.cfg.MaxDelta/10, 0.01)
}

func (m *Model) priceTick() tea.Cmd {
	return tea.Tick(m.cfg.Interval, func(time.Time) tea.Msg { return priceMsg{} })
}

func (m *Model) frameTick() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// Run runs the interactive ticker until the user quits.
func Run(cfg *config.Resolved, seed uint64) error {
	_, err := tea.NewProgram(NewModel(cfg, seed)).Run()
	return err
}

// RunLines is the non-interactive ticker: it writes the initial price and then count updates, one line each with the number of created and destroyed glyphs, waiting
// cfg.Interval between updates. It stops early if ctx is done.
func RunLines(ctx context.Context, w io.Writer, cfg *config.Resolved, seed uint64, count int) error {
	r := NewRenderer(newMeasurer(cfg), NewStyles(cfg.TextColor, cfg.IncrementColor, cfg.DecrementColor), 0)
	label := NewLabel(r, cfg.Strategy)
	defer label.Close()
	feed := NewPriceFeed(cfg.Start, cfg.MaxDelta, cfg.Currency, seed)

	label.SetText(feed.Text(), false, rotlabel.DirectionAuto)
	if _, err := fmt.Fprintln(w, baselineText(r)); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		text, dir := feed.Next()
		if cfg.Direction != rotlabel.DirectionAuto {
			dir = cfg.Direction
		}
		t, ok := label.SetText(text, false, dir)
		line := baselineText(r)
		if ok {
			line += fmt.Sprintf("  %v +%d -%d", t.Direction, len(t.Created), len(t.Destroyed))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// baselineText returns the settled label's middle row without styling.
func baselineText(r *Renderer) string {
	saved := r.styles
	r.styles = plainStyles()
	defer func() { r.styles = saved }()

	rows := strings.Split(r.Render(), "\n")
	return strings.TrimRight(rows[baseline], " ")
}
