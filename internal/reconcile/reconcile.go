// Package reconcile keeps an ordered collection of per-character handles in step with a displayed sequence.
//
// A Reconciler owns an arena of handle records. Each record holds an opaque renderer token and the element it is bound to, and is addressed by a HandleID. The live collection
// is an ordered []HandleID, index-aligned with the displayed sequence.
//
// Apply replays a seqdiff edit script against the collection: removals detach handles (they stay in the arena until Release so the renderer can run an exit animation), and
// insertions call the factory to create and attach new ones. Layout assigns left-to-right positions.
//
// A Reconciler is not safe for concurrent use.
package reconcile

import (
	"fmt"
	"slices"

	"github.com/codalotl/rotlabel/internal/seqdiff"
)

// HandleID addresses a record in a Reconciler's arena. IDs of released records are reused.
type HandleID int

type recordState int

const (
	stateFree recordState = iota
	stateLive
	stateDetached
)

type record[T any] struct {
	token   T
	element string
	state   recordState
}

// Result describes what an Apply call changed. IDs are in the order the operations were applied.
type Result struct {
	Created   []HandleID // Newly attached handles.
	Destroyed []HandleID // Detached handles. They must be passed to Release once the renderer is done with them.
}

// Reconciler owns handle records and the live ordered collection. The zero value is ready to use.
type Reconciler[T any] struct {
	records []record[T]
	free    []HandleID
	order   []HandleID
}

// New returns an empty Reconciler.
func New[T any]() *Reconciler[T] {
	return &Reconciler[T]{}
}

// Apply replays ops in list order against the live collection. For each insertion, factory is called with the inserted element to produce the token for the new handle.
//
// Apply panics if an operation's offset is out of range for the collection at the time it is applied. Scripts produced by seqdiff.Diff against the currently displayed
// sequence never trigger this.
func (r *Reconciler[T]) Apply(ops []seqdiff.Operation, factory func(element string) T) Result {
	var res Result
	for i, op := range ops {
		switch op.Kind {
		case seqdiff.KindRemove:
			if op.Offset < 0 || op.Offset >= len(r.order) {
				panic(fmt.Sprintf("reconcile: op[%d] %v: offset out of range [0,%d)", i, op, len(r.order)))
			}
			id := r.order[op.Offset]
			r.order = slices.Delete(r.order, op.Offset, op.Offset+1)
			r.records[id].state = stateDetached
			res.Destroyed = append(res.Destroyed, id)
		case seqdiff.KindInsert:
			if op.Offset < 0 || op.Offset > len(r.order) {
				panic(fmt.Sprintf("reconcile: op[%d] %v: offset out of range [0,%d]", i, op, len(r.order)))
			}
			id := r.alloc(factory(op.Element), op.Element)
			r.order = slices.Insert(r.order, op.Offset, id)
			res.Created = append(res.Created, id)
		default:
			panic(fmt.Sprintf("reconcile: op[%d]: unknown kind %v", i, op.Kind))
		}
	}
	return res
}

// Handles returns a copy of the live collection in display order.
func (r *Reconciler[T]) Handles() []HandleID {
	return slices.Clone(r.order)
}

// Len returns the number of live handles.
func (r *Reconciler[T]) Len() int {
	return len(r.order)
}

// Elements returns the displayed sequence: the element bound to each live handle, in order.
func (r *Reconciler[T]) Elements() []string {
	out := make([]string, len(r.order))
	for i, id := range r.order {
		out[i] = r.records[id].element
	}
	return out
}

// Token returns the token of a live or detached handle. It panics for released or unknown IDs.
func (r *Reconciler[T]) Token(id HandleID) T {
	return r.mustRecord(id).token
}

// Element returns the element bound to a live or detached handle. It panics for released or unknown IDs.
func (r *Reconciler[T]) Element(id HandleID) string {
	return r.mustRecord(id).element
}

// Live reports whether id is part of the live collection.
func (r *Reconciler[T]) Live(id HandleID) bool {
	return r.valid(id) && r.records[id].state == stateLive
}

// Release frees a detached handle's record and returns its token. It panics if id is live, already released, or unknown.
func (r *Reconciler[T]) Release(id HandleID) T {
	rec := r.mustRecord(id)
	if rec.state != stateDetached {
		panic(fmt.Sprintf("reconcile: Release(%d) of a live handle", id))
	}
	token := rec.token
	r.records[id] = record[T]{}
	r.free = append(r.free, id)
	return token
}

// Reset empties the collection and frees every record, returning all tokens (live ones in display order, then detached ones) so the caller can dispose of them.
func (r *Reconciler[T]) Reset() []T {
	var tokens []T
	for _, id := range r.order {
		tokens = append(tokens, r.records[id].token)
	}
	for _, rec := range r.records {
		if rec.state == stateDetached {
			tokens = append(tokens, rec.token)
		}
	}
	r.records = nil
	r.free = nil
	r.order = nil
	return tokens
}

func (r *Reconciler[T]) alloc(token T, element string) HandleID {
	rec := record[T]{token: token, element: element, state: stateLive}
	if n := len(r.free); n > 0 {
		id := r.free[n-1]
		r.free = r.free[:n-1]
		r.records[id] = rec
		return id
	}
	r.records = append(r.records, rec)
	return HandleID(len(r.records) - 1)
}

func (r *Reconciler[T]) valid(id HandleID) bool {
	return id >= 0 && int(id) < len(r.records) && r.records[id].state != stateFree
}

func (r *Reconciler[T]) mustRecord(id HandleID) *record[T] {
	if !r.valid(id) {
		panic(fmt.Sprintf("reconcile: unknown handle %d", id))
	}
	return &r.records[id]
}
