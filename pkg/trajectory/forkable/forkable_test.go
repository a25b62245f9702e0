package forkable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalcore/trajectory/pkg/geometry"
	"github.com/orbitalcore/trajectory/pkg/trajectory/forkable"
)

func at(seconds float64) geometry.Instant {
	return geometry.J2000.Add(geometry.NewDuration(seconds))
}

// populated builds a root with samples at t1..t5 and returns it along
// with the corresponding Instants, mirroring t1_ through t5_ in the
// original test fixture.
func populated(t *testing.T) (*forkable.Node[string], []geometry.Instant) {
	t.Helper()

	root := forkable.NewRoot[string]()
	times := make([]geometry.Instant, 5)

	for i := range times {
		times[i] = at(float64(i + 1))

		_, err := root.PushBack(times[i], "root")
		require.NoError(t, err)
	}

	return root, times
}

func values[V any](t *testing.T, leaf *forkable.Node[V]) []V {
	t.Helper()

	var seen []V

	it := leaf.Begin()
	for !it.IsEnd() {
		seen = append(seen, it.Value())

		var err error

		it, err = it.Next()
		require.NoError(t, err)
	}

	return seen
}

func TestRootHasNoParent(t *testing.T) {
	t.Parallel()

	root := forkable.NewRoot[int]()
	assert.True(t, root.IsRoot())
	assert.Same(t, root, root.Root())
}

func TestForkPositionErrorOnRoot(t *testing.T) {
	t.Parallel()

	root := forkable.NewRoot[int]()

	_, err := root.ForkPosition()
	assert.ErrorIs(t, err, forkable.ErrNotAFork)
}

func TestForkSuccess(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	child, err := root.ForkAt(times[2])
	require.NoError(t, err)
	assert.False(t, child.IsRoot())
	assert.Same(t, root, child.Root())
	assert.True(t, child.Timeline().Empty())

	fp, err := child.ForkPosition()
	require.NoError(t, err)
	assert.True(t, fp.Time().Equal(times[2]))
}

func TestForkAtLast(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	child, err := root.ForkAt(times[len(times)-1])
	require.NoError(t, err)
	assert.False(t, child.IsRoot())
}

func TestForkErrorsOnMissingTime(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	_, err := root.ForkAt(times[2].Add(geometry.NewDuration(0.5)))
	assert.ErrorIs(t, err, forkable.ErrBeforeForkTime)
}

func TestForkErrorsOnEmptyTimeline(t *testing.T) {
	t.Parallel()

	root := forkable.NewRoot[int]()

	_, err := root.ForkAt(at(1))
	assert.ErrorIs(t, err, forkable.ErrEmptyTimeline)
}

func TestNewForkErrorsOnEndIterator(t *testing.T) {
	t.Parallel()

	root, _ := populated(t)

	_, err := forkable.NewFork(root.End())
	assert.ErrorIs(t, err, forkable.ErrEmptyFork)
}

// TestMultiLevelForkParentResolution mirrors scenario S2: forks created
// through an intermediate, still-empty node resolve their parent to the
// ancestor that actually owns the referenced sample, not the receiver
// the method was called on.
func TestMultiLevelForkParentResolution(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	f1, err := root.ForkAt(times[2])
	require.NoError(t, err)

	f2, err := forkable.NewFork(f1.Last())
	require.NoError(t, err)

	f3, err := forkable.NewFork(f1.Last())
	require.NoError(t, err)

	fp2, err := f2.ForkPosition()
	require.NoError(t, err)
	assert.True(t, fp2.Time().Equal(times[2]))
	assert.Same(t, root, f2.Root())

	assert.Equal(t, []string{"root", "root", "root"}, values(t, f2))

	_, err = f1.PushBack(times[3], "f1-own")
	require.NoError(t, err)

	// f2's effective timeline is unaffected: its parent is root, not f1.
	assert.Equal(t, []string{"root", "root", "root"}, values(t, f2))

	_, err = f2.PushBack(times[3], "f2-own")
	require.NoError(t, err)
	_, err = f3.PushBack(times[3], "f3-own")
	require.NoError(t, err)

	assert.Equal(t, []string{"root", "root", "root", "f3-own"}, values(t, f3))
}

func TestDeleteForkSuccess(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	child, err := root.ForkAt(times[2])
	require.NoError(t, err)

	require.NoError(t, root.DeleteFork(&child))
	assert.Nil(t, child)
	assert.NoError(t, root.CheckNoForksBefore(times[0]))
}

func TestDeleteForkErrorOnRoot(t *testing.T) {
	t.Parallel()

	root := forkable.NewRoot[int]()
	self := root

	assert.ErrorIs(t, root.DeleteFork(&self), forkable.ErrIsRoot)
}

func TestDeleteForkErrorOnNotAChild(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	// A legitimate child deleted twice reproduces ErrNotAChild: the
	// second delete no longer finds it registered under its parent.
	child, err := root.ForkAt(times[0])
	require.NoError(t, err)

	dup := child
	require.NoError(t, root.DeleteFork(&child))

	assert.ErrorIs(t, root.DeleteFork(&dup), forkable.ErrNotAChild)
}

func TestDeleteForkErrorOnNonOwningNode(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	fork1, err := root.ForkAt(times[1])
	require.NoError(t, err)

	_, err = fork1.PushBack(times[3], "fork1-a")
	require.NoError(t, err)

	fork2, err := fork1.NewFork(fork1.Last())
	require.NoError(t, err)

	// fork2's true parent is fork1, not root: root has no business
	// detaching it.
	assert.ErrorIs(t, root.DeleteFork(&fork2), forkable.ErrNotAChild)
	assert.NotNil(t, fork2)
}

func TestAttachForkWithCopiedBeginSuccess(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	fork := forkable.NewRoot[string]()
	_, err := fork.PushBack(times[0], "root") // copied begin
	require.NoError(t, err)
	_, err = fork.PushBack(times[0].Add(geometry.NewDuration(0.1)), "branch")
	require.NoError(t, err)

	require.NoError(t, root.AttachForkToCopiedBegin(fork))
	assert.False(t, fork.IsRoot())
	assert.Same(t, root, fork.Root())
}

func TestAttachForkWithCopiedBeginErrorNotRoot(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	child, err := root.ForkAt(times[0])
	require.NoError(t, err)

	other, _ := populated(t)
	assert.ErrorIs(t, other.AttachForkToCopiedBegin(child), forkable.ErrNotRoot)
}

// TestAttachForkWithCopiedBeginAtLastSample mirrors the original source's
// canonical success case: fork's only sample is a copy of the parent's
// *last* sample, not its first, and the attach must still succeed by
// looking that sample up in the parent's own timeline rather than
// requiring it to be the parent's Begin.
func TestAttachForkWithCopiedBeginAtLastSample(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	fork := forkable.NewRoot[string]()
	_, err := fork.PushBack(times[len(times)-1], "root") // copied begin, at root's last sample
	require.NoError(t, err)

	require.NoError(t, root.AttachForkToCopiedBegin(fork))
	assert.False(t, fork.IsRoot())
	assert.Same(t, root, fork.Root())

	pos, err := fork.ForkPosition()
	require.NoError(t, err)
	assert.True(t, pos.Time().Equal(times[len(times)-1]))
}

func TestAttachForkWithCopiedBeginErrorMismatch(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	fork := forkable.NewRoot[string]()
	// times[1] shifted slightly is not any sample of root's own timeline.
	_, err := fork.PushBack(times[1].Add(geometry.NewDuration(0.01)), "wrong begin")
	require.NoError(t, err)

	assert.ErrorIs(t, root.AttachForkToCopiedBegin(fork), forkable.ErrBeforeForkTime)
}

func TestAttachForkWithCopiedBeginErrorEmptyTimeline(t *testing.T) {
	t.Parallel()

	root, _ := populated(t)
	fork := forkable.NewRoot[string]()

	assert.ErrorIs(t, root.AttachForkToCopiedBegin(fork), forkable.ErrEmptyTimeline)
}

// TestDetachAndReattach mirrors scenario S3.
func TestDetachAndReattach(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	f1, err := root.ForkAt(times[2])
	require.NoError(t, err)
	_, err = f1.PushBack(times[3], "f1-own")
	require.NoError(t, err)

	require.NoError(t, f1.DetachForkWithCopiedBegin())
	assert.True(t, f1.IsRoot())
	assert.Equal(t, []string{"root", "f1-own"}, values(t, f1))

	newParent := forkable.NewRoot[string]()
	_, err = newParent.PushBack(times[2], "root")
	require.NoError(t, err)

	require.NoError(t, newParent.AttachForkToCopiedBegin(f1))
	f1.Timeline().PopFront()

	assert.Equal(t, []string{"root", "f1-own"}, values(t, f1))
}

func TestDetachForkWithCopiedBeginErrorOnRoot(t *testing.T) {
	t.Parallel()

	root := forkable.NewRoot[int]()
	assert.ErrorIs(t, root.DetachForkWithCopiedBegin(), forkable.ErrIsRoot)
}

func TestDeleteAllForksAfterSuccess(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	early, err := root.ForkAt(times[0])
	require.NoError(t, err)

	late, err := root.ForkAt(times[3])
	require.NoError(t, err)

	require.NoError(t, root.DeleteAllForksAfter(times[2]))

	assert.NoError(t, root.CheckNoForksBefore(times[0]))
	assert.ErrorIs(t, root.CheckNoForksBefore(times[1]), forkable.ErrForkFound)
	_ = early
	_ = late
}

func TestDeleteAllForksAfterKeepsForkAtExactTime(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	_, err := root.ForkAt(times[2])
	require.NoError(t, err)

	require.NoError(t, root.DeleteAllForksAfter(times[2]))
	assert.ErrorIs(t, root.CheckNoForksBefore(times[3]), forkable.ErrForkFound)
}

func TestDeleteAllForksAfterError(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	child, err := root.ForkAt(times[2])
	require.NoError(t, err)

	_, err = child.PushBack(times[2].Add(geometry.NewDuration(0.1)), "child")
	require.NoError(t, err)

	assert.ErrorIs(t, child.DeleteAllForksAfter(times[0]), forkable.ErrBeforeForkTime)
}

func TestCheckNoForksBeforeSuccess(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	_, err := root.ForkAt(times[3])
	require.NoError(t, err)

	assert.NoError(t, root.CheckNoForksBefore(times[3]))
}

func TestCheckNoForksBeforeErrorOnNonRoot(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	child, err := root.ForkAt(times[0])
	require.NoError(t, err)

	assert.ErrorIs(t, child.CheckNoForksBefore(times[0]), forkable.ErrNonRoot)
}

func TestCheckNoForksBeforeError(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	_, err := root.ForkAt(times[1])
	require.NoError(t, err)

	assert.ErrorIs(t, root.CheckNoForksBefore(times[2]), forkable.ErrForkFound)
}

func TestIteratorWalksParentThenChild(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	child, err := root.ForkAt(times[2])
	require.NoError(t, err)

	_, err = child.PushBack(times[2].Add(geometry.NewDuration(0.5)), "child-a")
	require.NoError(t, err)
	_, err = child.PushBack(times[3], "child-b")
	require.NoError(t, err)

	assert.Equal(t, []string{"root", "root", "root", "child-a", "child-b"}, values(t, child))
}

// TestIteratorDecrementCrossesIntoParent mirrors scenario S5.
func TestIteratorDecrementCrossesIntoParent(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	root2 := forkable.NewRoot[string]()
	_, err := root2.PushBack(times[0], "t1")
	require.NoError(t, err)
	_, err = root2.PushBack(times[1], "t2")
	require.NoError(t, err)

	f1, err := root2.ForkAt(times[1])
	require.NoError(t, err)

	f2, err := forkable.NewFork(f1.Find(times[1]))
	require.NoError(t, err)

	f3, err := forkable.NewFork(f2.Find(times[1]))
	require.NoError(t, err)

	_, err = f2.PushBack(times[2], "t3-on-f2-only")
	require.NoError(t, err)

	it := f3.End()

	it, err = it.Prev()
	require.NoError(t, err)
	assert.True(t, it.Time().Equal(times[1]))

	it, err = it.Prev()
	require.NoError(t, err)
	assert.True(t, it.Time().Equal(times[0]))

	assert.True(t, it.Equal(f3.Begin()))

	_ = root
}

func TestIteratorIncrementCrossesIntoChild(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	child, err := root.ForkAt(times[2])
	require.NoError(t, err)

	_, err = child.PushBack(times[2].Add(geometry.NewDuration(0.5)), "child-a")
	require.NoError(t, err)

	it := child.Find(times[2])
	require.False(t, it.IsEnd())

	it, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, "child-a", it.Value())

	it, err = it.Next()
	require.NoError(t, err)
	assert.True(t, it.IsEnd())
}

func TestIteratorNextErrorsPastEnd(t *testing.T) {
	t.Parallel()

	root, _ := populated(t)

	_, err := root.End().Next()
	assert.ErrorIs(t, err, forkable.ErrPastEnd)
}

func TestIteratorPrevErrorsAtBegin(t *testing.T) {
	t.Parallel()

	root, _ := populated(t)

	_, err := root.Begin().Prev()
	assert.ErrorIs(t, err, forkable.ErrBeforeBegin)
}

// TestIteratorEndEquality mirrors scenario S6.
func TestIteratorEndEquality(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	f1, err := root.ForkAt(times[0])
	require.NoError(t, err)

	f2, err := root.ForkAt(times[1])
	require.NoError(t, err)

	assert.True(t, root.End().Equal(root.End()))
	assert.False(t, root.Begin().Equal(root.End()))
	assert.False(t, f1.End().Equal(f2.End()))
}

func TestIteratorBeginSuccess(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	it := root.Begin()
	require.False(t, it.IsEnd())
	assert.True(t, it.Time().Equal(times[0]))
}

func TestIteratorFindSuccess(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	it := root.Find(times[3])
	require.False(t, it.IsEnd())
	assert.True(t, it.Time().Equal(times[3]))

	assert.True(t, root.Find(times[3].Add(geometry.NewDuration(0.1))).IsEnd())
}

func TestIteratorLowerBoundSuccess(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	it := root.LowerBound(times[2].Add(geometry.NewDuration(0.1)))
	require.False(t, it.IsEnd())
	assert.True(t, it.Time().Equal(times[3]))

	assert.True(t, root.LowerBound(times[4].Add(geometry.NewDuration(1))).IsEnd())
}

func TestForkEmptyTimelineOfChildIsIndependent(t *testing.T) {
	t.Parallel()

	root, times := populated(t)

	child, err := root.ForkAt(times[0])
	require.NoError(t, err)
	assert.True(t, child.Timeline().Empty())

	_, err = root.PushBack(times[4].Add(geometry.NewDuration(1)), "root-continues")
	require.NoError(t, err)
	assert.True(t, child.Timeline().Empty())
}
