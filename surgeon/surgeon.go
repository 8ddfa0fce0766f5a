// Package surgeon defines the boundary between channel selection and the
// structural edit that removes channels from a live layer.
//
// Selection never mutates a layer. It emits a deferred Job describing the
// edit; a Queue collects jobs across layers and applies them in one pass, so
// the model graph stays consistent while a pruning round is still deciding.
package surgeon

import (
	"context"
	"fmt"

	"github.com/hupe1980/filterprune/tensor"
)

// JobDeleteChannels removes the listed output channels from a layer.
const JobDeleteChannels = "delete_channels"

// Layer is the minimal surface the pruning core needs from a model layer.
// Implementations adapt whatever graph representation the caller uses.
type Layer interface {
	// Name returns a stable identifier for the layer within its model.
	Name() string

	// Weights returns the layer's kernel as a 4-D tensor
	// (height, width, input channels, output channels). Read-only to the core.
	Weights() *tensor.Tensor4D

	// DeleteChannels removes the given output channels from the layer and
	// from any downstream consumers. Called only when a job is applied.
	DeleteChannels(indices []int) error
}

// Job is a deferred structural edit. It is a pure value: creating a job has
// no side effects on the layer.
type Job struct {
	Kind     string
	Layer    Layer
	Channels []int
}

// NewDeleteChannelsJob creates a deferred delete_channels job for the layer.
func NewDeleteChannelsJob(layer Layer, channels []int) Job {
	return Job{
		Kind:     JobDeleteChannels,
		Layer:    layer,
		Channels: channels,
	}
}

// Apply executes the job against its layer.
func (j Job) Apply(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch j.Kind {
	case JobDeleteChannels:
		if err := j.Layer.DeleteChannels(j.Channels); err != nil {
			return fmt.Errorf("delete channels on layer %q: %w", j.Layer.Name(), err)
		}
		return nil
	default:
		return fmt.Errorf("unknown job kind: %q", j.Kind)
	}
}

// Queue collects deferred jobs and applies them in FIFO order.
// It is not safe for concurrent use; callers synchronize externally.
type Queue struct {
	jobs []Job
}

// NewQueue creates an empty job queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add appends a job to the queue.
func (q *Queue) Add(job Job) {
	q.jobs = append(q.jobs, job)
}

// Len returns the number of pending jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}

// Jobs returns the pending jobs in FIFO order.
func (q *Queue) Jobs() []Job {
	return q.jobs
}

// Operate applies all pending jobs in order and clears the queue.
// It stops at the first failure, leaving the remaining jobs queued.
func (q *Queue) Operate(ctx context.Context) error {
	for len(q.jobs) > 0 {
		job := q.jobs[0]
		if err := job.Apply(ctx); err != nil {
			return err
		}
		q.jobs = q.jobs[1:]
	}

	return nil
}
