package filterprune

import (
	"sync/atomic"
	"time"
)

// Reconciliation identifies which count-reconciliation branch fired during a
// selection, if any.
type Reconciliation int

const (
	// ReconcileNone means the clustering produced the target count directly.
	ReconcileNone Reconciliation = iota
	// ReconcileTruncate means surplus prune candidates were discarded.
	ReconcileTruncate
	// ReconcileBackfill means the shortfall was filled from the keep set.
	ReconcileBackfill
)

func (r Reconciliation) String() string {
	switch r {
	case ReconcileNone:
		return "none"
	case ReconcileTruncate:
		return "truncate"
	case ReconcileBackfill:
		return "backfill"
	default:
		return "unknown"
	}
}

// MetricsCollector defines an interface for collecting selection metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordSelection is called after each channel selection.
	// k is the requested prune count, duration is the total time taken,
	// err is nil if successful.
	RecordSelection(k int, duration time.Duration, err error)

	// RecordReconciliation is called when a selection finishes, reporting
	// which branch fired and how many indices it moved.
	RecordReconciliation(branch Reconciliation, moved int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSelection(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordReconciliation(Reconciliation, int)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SelectionCount      atomic.Int64
	SelectionErrors     atomic.Int64
	SelectionTotalNanos atomic.Int64
	TruncateCount       atomic.Int64
	BackfillCount       atomic.Int64
	ChannelsMoved       atomic.Int64
}

// RecordSelection implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSelection(k int, duration time.Duration, err error) {
	b.SelectionCount.Add(1)
	b.SelectionTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SelectionErrors.Add(1)
	}
}

// RecordReconciliation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReconciliation(branch Reconciliation, moved int) {
	switch branch {
	case ReconcileTruncate:
		b.TruncateCount.Add(1)
	case ReconcileBackfill:
		b.BackfillCount.Add(1)
	}
	b.ChannelsMoved.Add(int64(moved))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SelectionCount:    b.SelectionCount.Load(),
		SelectionErrors:   b.SelectionErrors.Load(),
		SelectionAvgNanos: b.getAvgSelectionNanos(),
		TruncateCount:     b.TruncateCount.Load(),
		BackfillCount:     b.BackfillCount.Load(),
		ChannelsMoved:     b.ChannelsMoved.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSelectionNanos() int64 {
	count := b.SelectionCount.Load()
	if count == 0 {
		return 0
	}
	return b.SelectionTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SelectionCount    int64
	SelectionErrors   int64
	SelectionAvgNanos int64
	TruncateCount     int64
	BackfillCount     int64
	ChannelsMoved     int64
}
