package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/codalotl/rotlabel/internal/config"
	"github.com/codalotl/rotlabel/internal/q/uni"
	"github.com/codalotl/rotlabel/internal/reconcile"
	"github.com/codalotl/rotlabel/internal/rotlabel"
	"github.com/codalotl/rotlabel/internal/seqdiff"
	"github.com/codalotl/rotlabel/internal/simplelogger"
	"github.com/codalotl/rotlabel/internal/tickerui"
	"golang.org/x/term"
)

func runDiff(e *env, args []string) error {
	fs := newFlagSet(e, "diff")
	strategyName := fs.String("strategy", "default", "diff strategy: default, grouped, or system")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usageErrorf("diff: expected OLD and NEW, got %d argument(s)", fs.NArg())
	}
	strategy, err := seqdiff.ParseStrategy(*strategyName)
	if err != nil {
		return UsageError{Message: "diff: " + err.Error()}
	}

	ops := seqdiff.DiffText(fs.Arg(0), fs.Arg(1), strategy)
	for _, op := range ops {
		if _, err := fmt.Fprintln(e.out, op); err != nil {
			return err
		}
	}
	inserts, removes := seqdiff.Stat(ops)
	_, err = fmt.Fprintf(e.out, "+%d -%d\n", inserts, removes)
	return err
}

func runLayout(e *env, args []string) error {
	fs := newFlagSet(e, "layout")
	eastAsian := fs.Bool("east-asian", false, "treat ambiguous-width characters as wide")
	emojiWide := fs.Bool("emoji-wide", false, "treat emoji as two cells wide")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("layout: expected TEXT, got %d argument(s)", fs.NArg())
	}

	m := uni.NewMeasurer(&uni.Options{EastAsianWidth: *eastAsian, TreatEmojiAsWide: *emojiWide})
	r := reconcile.New[string]()
	r.Apply(seqdiff.DiffText("", fs.Arg(0), seqdiff.StrategyDefault), func(el string) string { return el })
	frame := r.Layout(func(el string) reconcile.Extent {
		return reconcile.Extent{Width: m.Width(el), Height: 1}
	})

	for i, id := range r.Handles() {
		pos, _ := frame.Position(id)
		if _, err := fmt.Fprintf(e.out, "%d %q offset=%d width=%d\n", i, r.Element(id), pos.Offset, pos.Extent.Width); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(e.out, "size %dx%d\n", frame.Size.Width, frame.Size.Height)
	return err
}

func runTicker(e *env, args []string) error {
	fs := newFlagSet(e, "ticker")
	configPath := fs.String("config", "", "config file (default ./"+config.FileName+" if present)")
	strategyName := fs.String("strategy", "", "diff strategy: default, grouped, or system (overrides config)")
	directionName := fs.String("direction", "", "direction: auto, increment, or decrement (overrides config)")
	count := fs.Int("count", 10, "number of updates to print when stdout is not a terminal")
	seed := fs.Uint64("seed", 0, "price feed seed (0 picks one from the clock)")
	interval := fs.Duration("interval", 0, "time between price updates (overrides config)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageErrorf("ticker: unexpected arguments")
	}
	if *count < 0 {
		return usageErrorf("ticker: -count must be non-negative")
	}

	cfg, err := config.Resolve(".", *configPath)
	if err != nil {
		return err
	}
	if *strategyName != "" {
		s, err := seqdiff.ParseStrategy(*strategyName)
		if err != nil {
			return UsageError{Message: "ticker: " + err.Error()}
		}
		cfg.Strategy = s
	}
	if *directionName != "" {
		d, err := rotlabel.ParseDirection(*directionName)
		if err != nil {
			return UsageError{Message: "ticker: " + err.Error()}
		}
		cfg.Direction = d
	}
	if *interval > 0 {
		cfg.Interval = *interval
	}
	if cfg.LogFile != "" {
		simplelogger.SetPath(cfg.LogFile)
	}
	simplelogger.Log("ticker: config=%q strategy=%v direction=%v frames=%d", cfg.Source, cfg.Strategy, cfg.Direction, cfg.Frames)

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}

	if isTerminal(e.out) {
		return tickerui.Run(cfg, s)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return tickerui.RunLines(ctx, e.out, cfg, s, *count)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
