// Package geometry provides the Instant and Duration types the timeline
// and forkable trajectory packages are built on, mirroring
// Principia::Geometry::Instant from the original source.
package geometry

import "github.com/orbitalcore/trajectory/pkg/quantities"

var timeDim = quantities.Dimension{Time: 1}

// Duration is an elapsed span of time; a Quantity tagged with the time
// dimension.
type Duration struct {
	q quantities.Quantity
}

// NewDuration wraps a raw number of seconds as a Duration.
func NewDuration(seconds float64) Duration {
	return Duration{q: quantities.New(seconds, timeDim)}
}

// Seconds returns the duration's magnitude in seconds.
func (d Duration) Seconds() float64 { return d.q.Value() }

// Scale returns d scaled by a dimensionless factor.
func (d Duration) Scale(factor float64) Duration {
	return Duration{q: d.q.Scale(factor)}
}

// Add returns the sum of two durations.
func (d Duration) Add(other Duration) Duration {
	sum, err := d.q.Add(other.q)
	if err != nil {
		// Both operands are constructed with the time dimension by
		// construction; a mismatch here would mean a corrupted Duration.
		panic("geometry: Duration operands have diverged from the time dimension: " + err.Error())
	}

	return Duration{q: sum}
}

// Compare orders two durations, returning -1, 0, or 1.
func (d Duration) Compare(other Duration) int {
	cmp, err := d.q.Compare(other.q)
	if err != nil {
		panic("geometry: Duration operands have diverged from the time dimension: " + err.Error())
	}

	return cmp
}

// Instant is a point on the time axis: a monotonic coordinate supporting
// subtraction (yielding a Duration), equality, and a strict total order.
// Instants need not be uniformly spaced.
type Instant struct {
	sinceEpoch float64 // seconds, relative to an arbitrary but fixed epoch
}

// J2000 is the zero Instant, analogous to the source's default-constructed
// Instant t0_.
var J2000 = Instant{}

// Add returns t advanced by d.
func (t Instant) Add(d Duration) Instant {
	return Instant{sinceEpoch: t.sinceEpoch + d.Seconds()}
}

// Sub returns the Duration elapsed from other to t (t - other).
func (t Instant) Sub(other Instant) Duration {
	return NewDuration(t.sinceEpoch - other.sinceEpoch)
}

// Equal reports whether t and other denote the same instant.
func (t Instant) Equal(other Instant) bool { return t.sinceEpoch == other.sinceEpoch }

// Before reports whether t strictly precedes other.
func (t Instant) Before(other Instant) bool { return t.sinceEpoch < other.sinceEpoch }

// After reports whether t strictly follows other.
func (t Instant) After(other Instant) bool { return t.sinceEpoch > other.sinceEpoch }

// Compare orders two instants, returning -1, 0, or 1.
func (t Instant) Compare(other Instant) int {
	switch {
	case t.sinceEpoch < other.sinceEpoch:
		return -1
	case t.sinceEpoch > other.sinceEpoch:
		return 1
	default:
		return 0
	}
}

// String renders the instant as an offset from the epoch, in seconds.
func (t Instant) String() string {
	return NewDuration(t.sinceEpoch).q.String()
}
