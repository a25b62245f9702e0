package forkable

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// Option configures a Node at construction, in the functional-options
// style of the teacher's pkg/alg/lru.Option[K,V] — this library has no
// I/O to speak of, so options are the whole of its ambient configuration
// surface.
type Option[V any] func(*Node[V])

// recorderOptions holds the resolved, always-safe-to-call observability
// hooks a Node carries. Every field defaults to a no-op so Node methods
// never need a nil check.
type recorderOptions struct {
	logger   *slog.Logger
	recorder Recorder
}

// WithLogger attaches a structured logger; fork and delete operations
// are logged at Debug level. Nil disables logging (the default).
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(n *Node[V]) { n.opts.logger = logger }
}

// WithRecorder attaches a metrics Recorder. Nil disables metrics (the
// default).
func WithRecorder[V any](r Recorder) Option[V] {
	return func(n *Node[V]) { n.opts.recorder = r }
}

// Recorder receives counts of forkable-tree activity. Implementations
// are expected to be cheap and non-blocking; NewOTelRecorder adapts an
// OpenTelemetry MeterProvider into one.
type Recorder interface {
	RecordFork(ctx context.Context)
	RecordSample(ctx context.Context)
	RecordForksDeleted(ctx context.Context, n int)
	// RecordTreeSize reports a change in the tree's node count, positive
	// on growth (NewRoot, NewFork, AttachForkToCopiedBegin) and negative
	// on shrinkage (DeleteFork, DetachForkWithCopiedBegin,
	// DeleteAllForksAfter); n is a delta, not the resulting total.
	RecordTreeSize(ctx context.Context, n int)
}

func (o recorderOptions) recordFork() {
	if o.logger != nil {
		o.logger.Debug("forkable: fork created")
	}

	if o.recorder != nil {
		o.recorder.RecordFork(context.Background())
	}
}

func (o recorderOptions) recordSample() {
	if o.recorder != nil {
		o.recorder.RecordSample(context.Background())
	}
}

func (o recorderOptions) recordForksDeleted(n int) {
	if n == 0 {
		return
	}

	if o.logger != nil {
		o.logger.Debug("forkable: forks deleted", slog.Int("count", n))
	}

	if o.recorder != nil {
		o.recorder.RecordForksDeleted(context.Background(), n)
	}
}

func (o recorderOptions) recordTreeSize(n int) {
	if o.recorder != nil {
		o.recorder.RecordTreeSize(context.Background(), n)
	}
}

// otelRecorder adapts an otel/metric Meter into a Recorder, mirroring
// the instrument-per-signal shape of the teacher's observability
// package.
type otelRecorder struct {
	forks        metric.Int64Counter
	samples      metric.Int64Counter
	forksDeleted metric.Int64Counter
	treeSize     metric.Int64UpDownCounter
}

// NewOTelRecorder builds a Recorder that reports fork/sample/tree-size
// activity through the given Meter.
func NewOTelRecorder(meter metric.Meter) (Recorder, error) {
	forks, err := meter.Int64Counter("forkable.forks_created")
	if err != nil {
		return nil, err
	}

	samples, err := meter.Int64Counter("forkable.samples_pushed")
	if err != nil {
		return nil, err
	}

	forksDeleted, err := meter.Int64Counter("forkable.forks_deleted")
	if err != nil {
		return nil, err
	}

	treeSize, err := meter.Int64UpDownCounter("forkable.tree_size")
	if err != nil {
		return nil, err
	}

	return &otelRecorder{
		forks:        forks,
		samples:      samples,
		forksDeleted: forksDeleted,
		treeSize:     treeSize,
	}, nil
}

func (r *otelRecorder) RecordFork(ctx context.Context) { r.forks.Add(ctx, 1) }

func (r *otelRecorder) RecordSample(ctx context.Context) { r.samples.Add(ctx, 1) }

func (r *otelRecorder) RecordForksDeleted(ctx context.Context, n int) {
	r.forksDeleted.Add(ctx, int64(n))
}

func (r *otelRecorder) RecordTreeSize(ctx context.Context, n int) {
	r.treeSize.Add(ctx, int64(n))
}
