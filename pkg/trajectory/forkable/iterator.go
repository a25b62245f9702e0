package forkable

import (
	"github.com/orbitalcore/trajectory/pkg/geometry"
	"github.com/orbitalcore/trajectory/pkg/trajectory/timeline"
)

// Iterator walks the effective timeline of a leaf Node: that node's own
// samples, preceded recursively by each ancestor's contribution up to
// (and including) the sample it forked from. It is bidirectional: Next
// descends back across a fork boundary it previously ascended past, and
// Prev ascends into the parent when it runs out of local samples.
//
// Boundary violations return an error rather than aborting — the Go
// rendering of the source's PastEnd/BeforeBegin death tests — so callers
// get a checkable errors.Is(err, forkable.ErrPastEnd) instead of a crash.
type Iterator[V any] struct {
	chain []*Node[V] // chain[0] is the tree root, chain[len-1] is the leaf.
	idx   int        // chain[idx].tl owns cur.
	cur   timeline.Cursor[V]
}

func chainOf[V any](leaf *Node[V]) []*Node[V] {
	depth := 1
	for n := leaf; !n.IsRoot(); n = n.parent {
		depth++
	}

	chain := make([]*Node[V], depth)

	n := leaf
	for i := depth - 1; i >= 0; i-- {
		chain[i] = n
		n = n.parent
	}

	return chain
}

// Begin returns an iterator to the earliest sample of leaf's effective
// timeline, or End(leaf) if leaf and every one of its ancestors has an
// empty timeline.
func Begin[V any](leaf *Node[V]) Iterator[V] {
	chain := chainOf(leaf)

	for i, node := range chain {
		if !node.tl.Empty() {
			return Iterator[V]{chain: chain, idx: i, cur: node.tl.Begin()}
		}
	}

	return End(leaf)
}

// End returns the one-past-the-end iterator of leaf's effective
// timeline.
func End[V any](leaf *Node[V]) Iterator[V] {
	chain := chainOf(leaf)

	return Iterator[V]{chain: chain, idx: len(chain) - 1, cur: leaf.tl.End()}
}

// Last returns an iterator to the latest sample of leaf's effective
// timeline. It panics if that timeline is empty.
func Last[V any](leaf *Node[V]) Iterator[V] {
	it, err := End(leaf).Prev()
	if err != nil {
		panic("forkable: Last called on a node with an empty effective timeline")
	}

	return it
}

// Find returns an iterator to the sample of leaf's effective timeline
// whose time equals t, or End(leaf) if none matches.
func Find[V any](leaf *Node[V], t geometry.Instant) Iterator[V] {
	it := Begin(leaf)
	for !it.IsEnd() {
		if it.Time().Equal(t) {
			return it
		}

		it, _ = it.Next()
	}

	return it
}

// LowerBound returns an iterator to the first sample of leaf's effective
// timeline with time >= t, or End(leaf) if none qualifies.
func LowerBound[V any](leaf *Node[V], t geometry.Instant) Iterator[V] {
	it := Begin(leaf)
	for !it.IsEnd() {
		if !it.Time().Before(t) {
			return it
		}

		it, _ = it.Next()
	}

	return it
}

// IsEnd reports whether it is the one-past-the-end position.
func (it Iterator[V]) IsEnd() bool {
	return it.idx == len(it.chain)-1 && it.cur.IsEnd()
}

// Time returns the current sample's Instant. Calling Time on an end
// iterator panics.
func (it Iterator[V]) Time() geometry.Instant { return it.cur.Time() }

// Value returns the current sample's payload. Calling Value on an end
// iterator panics.
func (it Iterator[V]) Value() V { return it.cur.Value() }

// Equal reports whether it and other denote the same position of the
// same leaf's effective timeline.
func (it Iterator[V]) Equal(other Iterator[V]) bool {
	leaf, otherLeaf := it.chain[len(it.chain)-1], other.chain[len(other.chain)-1]

	return leaf == otherLeaf && it.idx == other.idx && it.cur.Equal(other.cur)
}

// Next advances the iterator to the following sample, returning
// ErrPastEnd if it is already at the end.
func (it Iterator[V]) Next() (Iterator[V], error) {
	if it.cur.IsEnd() {
		return it, ErrPastEnd
	}

	if it.idx < len(it.chain)-1 && it.cur.Equal(it.chain[it.idx+1].forkPosition) {
		return it.descendFrom(it.idx + 1), nil
	}

	return Iterator[V]{chain: it.chain, idx: it.idx, cur: it.cur.Next()}, nil
}

// descendFrom returns the earliest position at or after chain index
// start: the first non-empty descendant's Begin, or the leaf's own End
// if every remaining descendant down to the leaf is empty.
func (it Iterator[V]) descendFrom(start int) Iterator[V] {
	for i := start; i < len(it.chain); i++ {
		node := it.chain[i]

		if !node.tl.Empty() {
			return Iterator[V]{chain: it.chain, idx: i, cur: node.tl.Begin()}
		}

		if i == len(it.chain)-1 {
			return Iterator[V]{chain: it.chain, idx: i, cur: node.tl.End()}
		}
	}

	panic("forkable: descendFrom failed to reach the leaf")
}

// Prev retreats the iterator to the preceding sample, ascending into the
// parent's contribution when it runs off the front of the current
// node's own timeline. It returns ErrBeforeBegin when called on Begin.
func (it Iterator[V]) Prev() (Iterator[V], error) {
	node := it.chain[it.idx]

	switch {
	case it.cur.IsEnd() && !node.tl.Empty():
		return Iterator[V]{chain: it.chain, idx: it.idx, cur: node.tl.Last()}, nil
	case !it.cur.IsEnd() && !it.cur.Equal(node.tl.Begin()):
		return Iterator[V]{chain: it.chain, idx: it.idx, cur: it.cur.Prev()}, nil
	}

	if it.idx == 0 {
		return it, ErrBeforeBegin
	}

	return Iterator[V]{chain: it.chain, idx: it.idx - 1, cur: node.forkPosition}, nil
}
