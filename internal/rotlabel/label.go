// Package rotlabel is the controller behind a rotating label: it remembers the last committed value, diffs each new value against it, reconciles the per-character handles, and
// tells a Renderer what to create, destroy, and where everything goes.
//
// A Label is single-threaded. The owner must serialize SetText, Finish, Relayout, and Close.
package rotlabel

import (
	"slices"

	"github.com/codalotl/rotlabel/internal/q/uni"
	"github.com/codalotl/rotlabel/internal/reconcile"
	"github.com/codalotl/rotlabel/internal/seqdiff"
	"github.com/codalotl/rotlabel/internal/simplelogger"
)

// Renderer displays a label's handles. T is the renderer's per-character token (ex: a view or a glyph).
type Renderer[T any] interface {
	// NewHandle creates a displayable token for element. Called once per insertion.
	NewHandle(element string) T

	// ReleaseHandle disposes of token. Called once per removal, after the exit animation (see Label.Finish), and for every token on Label.Close.
	ReleaseHandle(token T)

	// Extent returns token's intrinsic size.
	Extent(token T) reconcile.Extent

	// ApplyPositions moves every handle to its new position, giving created and destroyed handles entry/exit treatment when t.Animated.
	ApplyPositions(t Transition[T])

	// Cancel stops an in-flight animation, leaving every handle at the target of the last ApplyPositions. Called when SetText supersedes an animated transition, before the
	// superseded transition's destroyed handles are released.
	Cancel()
}

// Transition is everything a renderer needs to move from the previous frame to the next one.
type Transition[T any] struct {
	Before    reconcile.Frame // Positions of every handle displayed before the change, including destroyed ones.
	After     reconcile.Frame // Positions of every surviving and created handle.
	Created   []reconcile.HandleID
	Destroyed []reconcile.HandleID
	Tokens    map[reconcile.HandleID]T // Token of every ID in Before and After.
	Direction Direction                // Never DirectionAuto.
	Animated  bool
}

// IsCreated reports whether id was created by this transition.
func (t Transition[T]) IsCreated(id reconcile.HandleID) bool {
	return slices.Contains(t.Created, id)
}

// IsDestroyed reports whether id was destroyed by this transition.
func (t Transition[T]) IsDestroyed(id reconcile.HandleID) bool {
	return slices.Contains(t.Destroyed, id)
}

// Label drives a Renderer from successive text values.
type Label[T any] struct {
	renderer Renderer[T]
	handles  *reconcile.Reconciler[T]
	strategy seqdiff.Strategy
	text     string

	pending []reconcile.HandleID // destroyed by an animated transition, awaiting Finish
}

// New returns an empty Label that diffs with strategy.
func New[T any](renderer Renderer[T], strategy seqdiff.Strategy) *Label[T] {
	return &Label[T]{
		renderer: renderer,
		handles:  reconcile.New[T](),
		strategy: strategy,
	}
}

// Text returns the last committed value. It reflects SetText immediately, even while the renderer is still animating toward it.
func (l *Label[T]) Text() string {
	return l.text
}

// Strategy returns the diff strategy.
func (l *Label[T]) Strategy() seqdiff.Strategy {
	return l.strategy
}

// SetStrategy changes the diff strategy used by subsequent SetText calls.
func (l *Label[T]) SetStrategy(s seqdiff.Strategy) {
	l.strategy = s
}

// SetText transitions the label to text and returns the transition handed to the renderer. It returns ok=false and does nothing if text equals the committed value.
//
// If a previous animated transition hasn't finished, it is superseded: the renderer is told to Cancel, its destroyed handles are released, and the diff always starts from the committed value, never from
// what is currently visible.
//
// When animated is false, destroyed handles are released right after ApplyPositions.
func (l *Label[T]) SetText(text string, animated bool, direction Direction) (t Transition[T], ok bool) {
	if text == l.text {
		return Transition[T]{}, false
	}

	if len(l.pending) > 0 {
		simplelogger.Log("rotlabel: superseding transition to %q (%d handles still exiting)", l.text, len(l.pending))
		l.renderer.Cancel()
		l.Finish()
	}

	ops := seqdiff.Diff(uni.Graphemes(l.text), uni.Graphemes(text), l.strategy)

	before := l.handles.Layout(l.renderer.Extent)
	beforeIDs := l.handles.Handles()
	res := l.handles.Apply(ops, l.renderer.NewHandle)
	after := l.handles.Layout(l.renderer.Extent)

	t = Transition[T]{
		Before:    before,
		After:     after,
		Created:   res.Created,
		Destroyed: res.Destroyed,
		Tokens:    make(map[reconcile.HandleID]T, len(beforeIDs)+len(res.Created)),
		Direction: direction.Resolve(l.text, text),
		Animated:  animated,
	}
	for _, id := range beforeIDs {
		t.Tokens[id] = l.handles.Token(id)
	}
	for _, id := range res.Created {
		t.Tokens[id] = l.handles.Token(id)
	}

	inserts, removes := seqdiff.Stat(ops)
	simplelogger.Log("rotlabel: %q -> %q strategy=%v direction=%v +%d -%d", l.text, text, l.strategy, t.Direction, inserts, removes)

	l.text = text
	l.pending = append(l.pending, res.Destroyed...)
	l.renderer.ApplyPositions(t)
	if !animated {
		l.Finish()
	}

	return t, true
}

// Finish releases handles destroyed by earlier transitions. Renderers call it when their exit animation completes; calling it with nothing pending is a no-op.
func (l *Label[T]) Finish() {
	pending := l.pending
	l.pending = nil
	for _, id := range pending {
		l.renderer.ReleaseHandle(l.handles.Release(id))
	}
}

// Pending returns the number of destroyed handles not yet released.
func (l *Label[T]) Pending() int {
	return len(l.pending)
}

// Relayout recomputes positions and applies them without entry/exit treatment. Call it whenever handle extents may have changed (font, size class) since positions are never
// cached.
func (l *Label[T]) Relayout() reconcile.Frame {
	f := l.handles.Layout(l.renderer.Extent)
	t := Transition[T]{
		Before:    f,
		After:     f,
		Tokens:    make(map[reconcile.HandleID]T, l.handles.Len()),
		Direction: DirectionIncrement,
	}
	for _, id := range l.handles.Handles() {
		t.Tokens[id] = l.handles.Token(id)
	}
	l.renderer.ApplyPositions(t)
	return f
}

// IntrinsicSize returns the size of the committed value's layout: the sum of widths and the max of heights.
func (l *Label[T]) IntrinsicSize() reconcile.Extent {
	return l.handles.Layout(l.renderer.Extent).Size
}

// Close releases every handle, live or exiting, and resets the label to "".
func (l *Label[T]) Close() {
	for _, token := range l.handles.Reset() {
		l.renderer.ReleaseHandle(token)
	}
	l.pending = nil
	l.text = ""
}
