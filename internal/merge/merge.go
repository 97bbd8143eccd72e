// Package merge reduces keyed record lists into a single last-write-wins
// list ordered by timestamp.
package merge

import (
	"cmp"
	"slices"

	"github.com/dusk-indust/mergelists/internal/record"
)

// Outcome describes how a key conflict was settled.
type Outcome string

const (
	// OutcomeReplaced means the incoming record displaced the existing one.
	OutcomeReplaced Outcome = "replaced"
	// OutcomeKept means the existing record was at least as recent.
	OutcomeKept Outcome = "kept"
)

// Resolution is reported for every record whose key was already present.
type Resolution struct {
	Num      int
	Existing record.Record
	Incoming record.Record
	Outcome  Outcome
}

// Engine accumulates record lists into a per-key winner set.
// It is not safe for concurrent use.
type Engine struct {
	winners   map[int]record.Record
	order     []int // keys in first-seen order
	onResolve func(Resolution)
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{winners: make(map[int]record.Record)}
}

// OnResolve registers a callback invoked for each key conflict. fn may be nil.
func (e *Engine) OnResolve(fn func(Resolution)) {
	e.onResolve = fn
}

// Ingest folds records into the winner set. A record replaces the current
// winner for its key only if its timestamp is strictly greater, so on ties
// the record ingested first stays.
func (e *Engine) Ingest(records []record.Record) {
	for _, r := range records {
		existing, ok := e.winners[r.Num]
		if !ok {
			e.winners[r.Num] = r
			e.order = append(e.order, r.Num)
			continue
		}

		outcome := OutcomeKept
		if existing.Before(r) {
			e.winners[r.Num] = r
			outcome = OutcomeReplaced
		}
		if e.onResolve != nil {
			e.onResolve(Resolution{Num: r.Num, Existing: existing, Incoming: r, Outcome: outcome})
		}
	}
}

// Len returns the number of distinct keys seen so far.
func (e *Engine) Len() int {
	return len(e.winners)
}

// Finalize returns the winning records sorted by timestamp ascending.
// Records with equal timestamps keep the order in which their keys were
// first seen. The engine may keep ingesting afterwards.
func (e *Engine) Finalize() []record.Record {
	out := make([]record.Record, 0, len(e.order))
	for _, num := range e.order {
		out = append(out, e.winners[num])
	}
	slices.SortStableFunc(out, func(a, b record.Record) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	return out
}

// Merge ingests lists in order and returns the finalized result.
func Merge(lists ...[]record.Record) []record.Record {
	e := New()
	for _, l := range lists {
		e.Ingest(l)
	}
	return e.Finalize()
}
