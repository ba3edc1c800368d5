// Package xref records directed call-site edges between functions. It is a
// thin collaborator: pure data, appended to in the order call sites are
// observed, with no invariant beyond that ordering. Only the Flat renderer
// records edges here (spec.md §4.6) — the Structured renderer does not.
package xref

import "fmt"

// FunctionRef identifies a function by its global index, never by pointer,
// so cross-references stay plain data across disassembler/decompiler
// boundaries (spec.md §9, "Cyclic data").
type FunctionRef struct {
	Index uint32
	Name  string
}

// CrossReference is one observed call edge: Caller calls Target from the
// call instruction at Offset (the Flat renderer records its module-wide PC
// for that instruction, not an offset within Caller's body). DirectionDown is true when Target's index is
// greater than Caller's (a "forward" call in index order).
type CrossReference struct {
	Caller        FunctionRef
	Target        FunctionRef
	Offset        uint32
	DirectionDown bool
	IsDestination bool
}

// Tracker accumulates CrossReference edges in observation order.
type Tracker struct {
	edges []CrossReference
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{}
}

// Record appends e to the tracker.
func (t *Tracker) Record(e CrossReference) {
	t.edges = append(t.edges, e)
}

// Edges returns every recorded edge, in observation order.
func (t *Tracker) Edges() []CrossReference {
	return t.edges
}

// CalledBy returns every edge whose Target is the function at index idx.
func (t *Tracker) CalledBy(idx uint32) []CrossReference {
	var out []CrossReference
	for _, e := range t.edges {
		if e.Target.Index == idx {
			out = append(out, e)
		}
	}
	return out
}

// NewCrossReference builds the directed edge from caller to target at the
// given byte offset, matching spec.md §4.3's
// find_refs_from_call_fn(caller, callee_index, offset).
func NewCrossReference(caller FunctionRef, target FunctionRef, offset uint32) CrossReference {
	return CrossReference{
		Caller:        caller,
		Target:        target,
		Offset:        offset,
		DirectionDown: target.Index > caller.Index,
		IsDestination: true,
	}
}

func (e CrossReference) String() string {
	dir := "up"
	if e.DirectionDown {
		dir = "down"
	}
	return fmt.Sprintf("%s@%08x -> %s (%s)", e.Caller.Name, e.Offset, e.Target.Name, dir)
}
