// Package timeline provides an ordered sequence of (Instant, payload)
// samples with reference-stable positions, the building block underneath
// the forkable trajectory tree.
//
// The node shape is grounded on the teacher's generic doubly-linked LRU
// entry (pkg/alg/lru.entry[K,V]): a plain *node pointer survives append and
// front-removal exactly the way an *entry survives eviction elsewhere in
// the list, which is the property a Cursor needs (spec §4.2 rules out a
// contiguous slice for the same reason: reallocation would invalidate
// every outstanding position).
package timeline

import (
	"errors"
	"fmt"

	"github.com/orbitalcore/trajectory/pkg/geometry"
)

// ErrOutOfOrder is returned by PushBack/PushFront when the new sample's
// time would violate the timeline's strictly-increasing invariant.
var ErrOutOfOrder = errors.New("timeline: sample out of order")

// node is one linked-list element. Its address is the Cursor: it never
// moves once allocated, and is only ever unlinked (never relocated).
type node[V any] struct {
	time       geometry.Instant
	value      V
	prev, next *node[V]
}

// Cursor is a reference-stable position into a Timeline. The zero Cursor
// is not valid; obtain one from Begin, End, Find, LowerBound, or a push.
type Cursor[V any] struct {
	n *node[V]
}

// IsEnd reports whether the cursor denotes the sentinel one-past-the-end
// position.
func (c Cursor[V]) IsEnd() bool { return c.n == nil }

// Time returns the sample's Instant. Calling Time on an end cursor panics,
// matching dereferencing an STL end() iterator.
func (c Cursor[V]) Time() geometry.Instant {
	if c.n == nil {
		panic("timeline: Time called on the end cursor")
	}

	return c.n.time
}

// Value returns the sample's payload. Calling Value on an end cursor
// panics.
func (c Cursor[V]) Value() V {
	if c.n == nil {
		panic("timeline: Value called on the end cursor")
	}

	return c.n.value
}

// Equal reports whether two cursors designate the same node (or are both
// the end cursor).
func (c Cursor[V]) Equal(other Cursor[V]) bool { return c.n == other.n }

// Next returns the cursor immediately following c, or the end cursor if c
// is the last sample.
func (c Cursor[V]) Next() Cursor[V] {
	if c.n == nil {
		panic("timeline: Next called on the end cursor")
	}

	return Cursor[V]{n: c.n.next}
}

// Prev returns the cursor immediately preceding c. Calling Prev on Begin
// panics.
func (c Cursor[V]) Prev() Cursor[V] {
	if c.n == nil {
		panic("timeline: Prev called on the end cursor of an empty timeline")
	}

	if c.n.prev == nil {
		panic("timeline: Prev called on Begin")
	}

	return Cursor[V]{n: c.n.prev}
}

// Timeline is a strictly time-ordered sequence of (Instant, V) samples.
type Timeline[V any] struct {
	head, tail *node[V]
	length     int
}

// New creates an empty Timeline.
func New[V any]() *Timeline[V] {
	return &Timeline[V]{}
}

// Empty reports whether the timeline has no samples.
func (tl *Timeline[V]) Empty() bool { return tl.length == 0 }

// Len returns the number of samples in the timeline.
func (tl *Timeline[V]) Len() int { return tl.length }

// Begin returns a cursor to the earliest sample, or End() if empty.
func (tl *Timeline[V]) Begin() Cursor[V] { return Cursor[V]{n: tl.head} }

// End returns the one-past-the-end cursor.
func (tl *Timeline[V]) End() Cursor[V] { return Cursor[V]{} }

// Last returns a cursor to the latest sample. Calling Last on an empty
// timeline panics; callers should check Empty first.
func (tl *Timeline[V]) Last() Cursor[V] {
	if tl.tail == nil {
		panic("timeline: Last called on an empty timeline")
	}

	return Cursor[V]{n: tl.tail}
}

// PushBack appends a sample. t must be strictly greater than the current
// last sample's time, or ErrOutOfOrder is returned.
func (tl *Timeline[V]) PushBack(t geometry.Instant, v V) (Cursor[V], error) {
	if tl.tail != nil && !t.After(tl.tail.time) {
		return Cursor[V]{}, fmt.Errorf("%w: %v is not after %v", ErrOutOfOrder, t, tl.tail.time)
	}

	n := &node[V]{time: t, value: v, prev: tl.tail}

	if tl.tail != nil {
		tl.tail.next = n
	} else {
		tl.head = n
	}

	tl.tail = n
	tl.length++

	return Cursor[V]{n: n}, nil
}

// PushFront prepends a sample. t must be strictly less than the current
// first sample's time, or ErrOutOfOrder is returned.
func (tl *Timeline[V]) PushFront(t geometry.Instant, v V) (Cursor[V], error) {
	if tl.head != nil && !t.Before(tl.head.time) {
		return Cursor[V]{}, fmt.Errorf("%w: %v is not before %v", ErrOutOfOrder, t, tl.head.time)
	}

	n := &node[V]{time: t, value: v, next: tl.head}

	if tl.head != nil {
		tl.head.prev = n
	} else {
		tl.tail = n
	}

	tl.head = n
	tl.length++

	return Cursor[V]{n: n}, nil
}

// PopFront removes the earliest sample. It does not affect the positions
// of any other outstanding cursor. Popping an empty timeline is a no-op.
func (tl *Timeline[V]) PopFront() {
	if tl.head == nil {
		return
	}

	next := tl.head.next
	tl.head.next = nil

	if next != nil {
		next.prev = nil
	} else {
		tl.tail = nil
	}

	tl.head = next
	tl.length--
}

// Find returns a cursor to the sample whose time equals t, or End() if no
// such sample exists. O(n): the source's own timeline_find is documented
// as "stupid O(N) search" for the same reason — this is an ordered linked
// list, not an index.
func (tl *Timeline[V]) Find(t geometry.Instant) Cursor[V] {
	for n := tl.head; n != nil; n = n.next {
		if n.time.Equal(t) {
			return Cursor[V]{n: n}
		}
	}

	return Cursor[V]{}
}

// LowerBound returns a cursor to the first sample with time >= t, or
// End() if every sample precedes t.
func (tl *Timeline[V]) LowerBound(t geometry.Instant) Cursor[V] {
	for n := tl.head; n != nil; n = n.next {
		if !n.time.Before(t) {
			return Cursor[V]{n: n}
		}
	}

	return Cursor[V]{}
}
