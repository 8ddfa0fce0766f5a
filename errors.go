package filterprune

import "fmt"

// ErrTargetOutOfRange indicates a prune target outside [0, output channels].
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrTargetOutOfRange struct {
	Target         int
	OutputChannels int
	cause          error
}

func (e *ErrTargetOutOfRange) Error() string {
	return fmt.Sprintf("prune target out of range: %d (layer has %d output channels)", e.Target, e.OutputChannels)
}

func (e *ErrTargetOutOfRange) Unwrap() error { return e.cause }

// ErrCountMismatch indicates that reconciliation failed to produce the exact
// requested prune count. This signals a logic defect, not a data problem; the
// current layer's pruning attempt must be aborted.
type ErrCountMismatch struct {
	Want int
	Got  int
}

func (e *ErrCountMismatch) Error() string {
	return fmt.Sprintf("prune count mismatch after reconciliation: want %d, got %d", e.Want, e.Got)
}

// ErrLayerCountMismatch indicates that the layers and targets passed to a
// batch selection have different lengths.
type ErrLayerCountMismatch struct {
	Layers  int
	Targets int
}

func (e *ErrLayerCountMismatch) Error() string {
	return fmt.Sprintf("layer/target count mismatch: %d layers, %d targets", e.Layers, e.Targets)
}
