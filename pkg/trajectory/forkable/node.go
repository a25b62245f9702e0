// Package forkable implements a branching, append-mostly tree of
// timelines: a Node owns a private Timeline and any number of children
// that fork off it at a sample of some ancestor's timeline, and an
// Iterator walks the effective timeline of a leaf — its own samples
// preceded by the samples its ancestors contributed before each fork
// point — forward and backward across the resulting graph of nodes.
//
// The shape is grounded on the original source's Forkable<Tr4jectory,
// Iterator> CRTP tree (forkable.hpp / forkable_test.cpp): a fork always
// buds at a sample already present somewhere in the tree's history
// (never at an arbitrary instant), ownership is parent-to-child, and an
// iterator ascends into ancestors on decrement, then descends back into
// descendants on increment past a boundary it previously crossed.
package forkable

import (
	"fmt"

	"github.com/orbitalcore/trajectory/pkg/geometry"
	"github.com/orbitalcore/trajectory/pkg/trajectory/timeline"
)

// Node is one branch point of a forkable trajectory tree. The zero value
// is not usable; construct one with NewRoot.
type Node[V any] struct {
	tl           *timeline.Timeline[V]
	parent       *Node[V]
	forkPosition timeline.Cursor[V] // cursor into parent.tl; unused when parent == nil
	children     map[geometry.Instant][]*Node[V]

	opts recorderOptions
}

// NewRoot creates a fresh, parentless tree with an empty timeline.
func NewRoot[V any](opts ...Option[V]) *Node[V] {
	n := &Node[V]{
		tl:       timeline.New[V](),
		children: make(map[geometry.Instant][]*Node[V]),
	}

	for _, opt := range opts {
		opt(n)
	}

	n.opts.recordTreeSize(1)

	return n
}

// Timeline exposes this node's own, private timeline. Samples inherited
// from ancestors are not part of it; use Begin/End/Find/LowerBound below
// to walk the effective timeline instead.
func (n *Node[V]) Timeline() *timeline.Timeline[V] { return n.tl }

// IsRoot reports whether n has no parent.
func (n *Node[V]) IsRoot() bool { return n.parent == nil }

// Root walks up to and returns the root of n's tree.
func (n *Node[V]) Root() *Node[V] {
	r := n
	for !r.IsRoot() {
		r = r.parent
	}

	return r
}

// ForkPosition returns the cursor, local to n's parent's timeline, at
// which n branched off. It fails with ErrNotAFork if n is a root.
func (n *Node[V]) ForkPosition() (timeline.Cursor[V], error) {
	if n.IsRoot() {
		return timeline.Cursor[V]{}, ErrNotAFork
	}

	return n.forkPosition, nil
}

// PushBack appends a sample to n's own timeline. On a non-root whose own
// timeline is still empty, t must also be strictly after n's fork point
// — the same monotonicity Timeline.PushBack enforces against a node's
// last existing sample, extended across the fork boundary.
func (n *Node[V]) PushBack(t geometry.Instant, v V) (timeline.Cursor[V], error) {
	if n.tl.Empty() && !n.IsRoot() && !t.After(n.forkPosition.Time()) {
		return timeline.Cursor[V]{}, fmt.Errorf("%w: %v is not after this node's fork time %v",
			timeline.ErrOutOfOrder, t, n.forkPosition.Time())
	}

	c, err := n.tl.PushBack(t, v)
	if err == nil {
		n.opts.recordSample()
	}

	return c, err
}

// ForkAt is a convenience equivalent to NewFork(n.Find(t)): it looks up
// t in n's effective timeline and forks there.
func (n *Node[V]) ForkAt(t geometry.Instant) (*Node[V], error) {
	it := n.Find(t)
	if it.IsEnd() {
		if n.Begin().IsEnd() {
			return nil, ErrEmptyTimeline
		}

		return nil, fmt.Errorf("%w: %v is not a sample of this node's effective timeline", ErrBeforeForkTime, t)
	}

	return NewFork(it)
}

// NewFork creates a new child forking at the position at, which may
// reference the receiver's own timeline or, if at was obtained while
// ascending into an ancestor, an ancestor's sample instead. The child's
// parent becomes whichever node actually owns the referenced sample, and
// its fork position is a cursor local to that owner's timeline — this
// mirrors the original's "at may reference an ancestor's timeline
// segment reached by ascent" contract, and is why NewFork is also
// available as the package function of the same name: which Node the
// method is called on does not affect the result, only at does.
func (n *Node[V]) NewFork(at Iterator[V]) (*Node[V], error) { return NewFork(at) }

// NewFork is the free-function form of (*Node[V]).NewFork.
func NewFork[V any](at Iterator[V]) (*Node[V], error) {
	if at.IsEnd() {
		return nil, ErrEmptyFork
	}

	owner := at.chain[at.idx]

	child := &Node[V]{
		tl:           timeline.New[V](),
		parent:       owner,
		forkPosition: at.cur,
		children:     make(map[geometry.Instant][]*Node[V]),
		opts:         owner.opts,
	}

	t := at.cur.Time()
	owner.children[t] = append(owner.children[t], child)
	owner.opts.recordFork()
	owner.opts.recordTreeSize(1)

	return child, nil
}

// DeleteFork removes *child from its parent's list of children and
// severs it from the tree, setting *child to nil. *child must not be a
// root and must genuinely be registered as a child of its recorded
// parent.
func (n *Node[V]) DeleteFork(child **Node[V]) error {
	c := *child
	if c == nil {
		return ErrNotAChild
	}

	if c.IsRoot() {
		return ErrIsRoot
	}

	if c.parent != n {
		return ErrNotAChild
	}

	removed := countNodes([]*Node[V]{c})

	if err := c.parent.detachChild(c); err != nil {
		return err
	}

	n.opts.recordForksDeleted(removed)
	n.opts.recordTreeSize(-removed)

	*child = nil

	return nil
}

func (n *Node[V]) detachChild(child *Node[V]) error {
	t := child.forkPosition.Time()
	siblings := n.children[t]

	idx := -1

	for i, s := range siblings {
		if s == child {
			idx = i

			break
		}
	}

	if idx == -1 {
		return ErrNotAChild
	}

	n.children[t] = append(siblings[:idx:idx], siblings[idx+1:]...)
	if len(n.children[t]) == 0 {
		delete(n.children, t)
	}

	return nil
}

// AttachForkToCopiedBegin attaches fork, which must currently be the
// unattached root of its own subtree, onto n. fork's own timeline must
// already begin with a copy of the sample of n's own timeline it is
// attaching at — the caller duplicates it ahead of time, typically
// because fork was just returned by another node's
// DetachForkWithCopiedBegin — and the caller is expected to PopFront
// that duplicate off fork's own timeline after a successful attach.
func (n *Node[V]) AttachForkToCopiedBegin(fork *Node[V]) error {
	if !fork.IsRoot() {
		return ErrNotRoot
	}

	if fork.tl.Empty() {
		return ErrEmptyTimeline
	}

	if n.tl.Empty() {
		return fmt.Errorf("%w: this node has no samples to attach onto", ErrBeforeForkTime)
	}

	pos := n.tl.Find(fork.tl.Begin().Time())
	if pos.IsEnd() {
		return fmt.Errorf("%w: fork's copied begin (%v) is not a sample of this node's own timeline",
			ErrBeforeForkTime, fork.tl.Begin().Time())
	}

	added := countNodes([]*Node[V]{fork})

	fork.parent = n
	fork.forkPosition = pos
	fork.opts = n.opts
	t := pos.Time()
	n.children[t] = append(n.children[t], fork)
	n.opts.recordFork()
	n.opts.recordTreeSize(added)

	return nil
}

// DetachForkWithCopiedBegin detaches n from its parent, returning
// ownership to the caller (n itself, now once again a root). It
// prepends the parent's fork-point sample to n's own timeline so the
// result is self-contained and can later be re-attached with
// AttachForkToCopiedBegin. n must not already be a root.
func (n *Node[V]) DetachForkWithCopiedBegin() error {
	if n.IsRoot() {
		return ErrIsRoot
	}

	parent := n.parent
	forkTime := n.forkPosition.Time()
	forkValue := n.forkPosition.Value()
	removed := countNodes([]*Node[V]{n})

	if err := parent.detachChild(n); err != nil {
		return err
	}

	if _, err := n.tl.PushFront(forkTime, forkValue); err != nil {
		panic("forkable: detached node's own timeline precedes its fork point: " + err.Error())
	}

	n.parent = nil
	n.forkPosition = timeline.Cursor[V]{}
	n.opts.recordTreeSize(-removed)

	return nil
}

// DeleteAllForksAfter recursively removes every descendant fork whose
// branch point is strictly after t. t must not precede n's own fork
// point (if n is not the root), since that would require deleting part
// of an ancestor this node does not own.
func (n *Node[V]) DeleteAllForksAfter(t geometry.Instant) error {
	if !n.IsRoot() && t.Before(n.forkPosition.Time()) {
		return fmt.Errorf("%w: %v precedes this node's own fork point", ErrBeforeForkTime, t)
	}

	for forkTime, children := range n.children {
		if forkTime.After(t) {
			removed := countNodes(children)
			delete(n.children, forkTime)
			n.opts.recordForksDeleted(removed)
			n.opts.recordTreeSize(-removed)

			continue
		}

		for _, child := range children {
			if err := child.DeleteAllForksAfter(t); err != nil {
				return err
			}
		}
	}

	return nil
}

func countNodes[V any](roots []*Node[V]) int {
	total := 0

	for _, r := range roots {
		total++

		for _, children := range r.children {
			total += countNodes(children)
		}
	}

	return total
}

// CheckNoForksBefore is a debug assertion, valid only on the tree's
// root, that verifies no fork anywhere in the tree has a fork time
// strictly before t. Calling it on a non-root fails with ErrNonRoot;
// finding an offending fork fails with ErrForkFound.
func (n *Node[V]) CheckNoForksBefore(t geometry.Instant) error {
	if !n.IsRoot() {
		return ErrNonRoot
	}

	return n.checkNoForksBefore(t)
}

func (n *Node[V]) checkNoForksBefore(t geometry.Instant) error {
	for forkTime, children := range n.children {
		if forkTime.Before(t) {
			return fmt.Errorf("%w: at %v", ErrForkFound, forkTime)
		}

		for _, child := range children {
			if err := child.checkNoForksBefore(t); err != nil {
				return err
			}
		}
	}

	return nil
}

// Begin returns an iterator to the earliest sample of n's effective
// timeline (n's own timeline preceded by the contribution of each
// ancestor up to its fork point).
func (n *Node[V]) Begin() Iterator[V] { return Begin(n) }

// End returns the one-past-the-end iterator of n's effective timeline.
func (n *Node[V]) End() Iterator[V] { return End(n) }

// Last returns an iterator to the latest sample of n's effective
// timeline. It panics if that timeline is empty; check Begin(n).IsEnd()
// first if that is possible.
func (n *Node[V]) Last() Iterator[V] { return Last(n) }

// Find returns an iterator to the sample of n's effective timeline whose
// time equals t, or End(n) if none matches.
func (n *Node[V]) Find(t geometry.Instant) Iterator[V] { return Find(n, t) }

// LowerBound returns an iterator to the first sample of n's effective
// timeline with time >= t, or End(n) if none qualifies.
func (n *Node[V]) LowerBound(t geometry.Instant) Iterator[V] { return LowerBound(n, t) }
