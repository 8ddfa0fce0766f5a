package filterprune

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/filterprune/channelset"
	"github.com/hupe1980/filterprune/distance"
	"github.com/hupe1980/filterprune/internal/kmeans"
	"github.com/hupe1980/filterprune/plan"
	"github.com/hupe1980/filterprune/surgeon"
	"github.com/hupe1980/filterprune/tensor"
)

const (
	defaultFuzzEpsilon   = 1e-5
	defaultMaxIterations = 25
)

// Selector decides which output channels of a convolutional layer to prune.
//
// A Selector is stateless across calls: every selection reads an immutable
// weight snapshot and derives a fresh random generator from the configured
// seed, so independent layers can be selected concurrently.
type Selector struct {
	opts options
}

// NewSelector creates a Selector.
func NewSelector(optFns ...Option) *Selector {
	return &Selector{
		opts: applyOptions(optFns),
	}
}

// SelectChannels returns exactly k distinct output-channel indices of the
// layer judged least distinctive, in ascending order. It never mutates the
// layer's weights.
//
// The target k is used both as the k-means cluster count and as the exact
// size of the returned prune set; reconciliation bridges the gap clustering
// leaves between the two.
func (s *Selector) SelectChannels(ctx context.Context, layer surgeon.Layer, k int) ([]int, error) {
	start := time.Now()

	indices, branch, moved, err := s.selectChannels(ctx, layer, k)

	s.opts.metricsCollector.RecordSelection(k, time.Since(start), err)
	if err == nil {
		s.opts.metricsCollector.RecordReconciliation(branch, moved)
		s.opts.logger.LogReconciliation(ctx, layer.Name(), branch, moved)
	}
	s.opts.logger.LogSelection(ctx, layer.Name(), k, layer.Weights().OutputChannels(), err)

	return indices, err
}

func (s *Selector) selectChannels(ctx context.Context, layer surgeon.Layer, k int) ([]int, Reconciliation, int, error) {
	weights := layer.Weights()
	outputChannels := weights.OutputChannels()

	if k < 0 || k > outputChannels {
		return nil, ReconcileNone, 0, &ErrTargetOutOfRange{Target: k, OutputChannels: outputChannels}
	}

	if k == 0 {
		return []int{}, ReconcileNone, 0, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, ReconcileNone, 0, err
	}

	distFunc, err := distance.Provider(s.opts.metric)
	if err != nil {
		return nil, ReconcileNone, 0, err
	}

	rng := rand.New(rand.NewSource(s.opts.seed))

	// Flatten copies, so the fuzz never reaches the real weights.
	rows := weights.FlattenByOutputChannel()
	s.applyFuzz(rng, rows)

	centroids, err := kmeans.Train(rng, rows, k, s.opts.maxIterations, distFunc)
	if err != nil {
		return nil, ReconcileNone, 0, err
	}

	// A cluster with only a single distinctive member should not be collapsed
	// away: the row closest to each centroid is protected from pruning.
	// Duplicate representatives collapse naturally in the set.
	keep := channelset.FromIndices(kmeans.NearestRows(centroids, rows, distFunc))

	pruneSet := channelset.Universe(outputChannels)
	pruneSet.Difference(keep)
	pruneList := pruneSet.ToSortedSlice()

	branch := ReconcileNone
	moved := 0

	switch {
	case len(pruneList) > k:
		// Surplus: keep the first k in stable ascending order; the rest are
		// simply not pruned this round.
		branch, moved = ReconcileTruncate, len(pruneList)-k
		pruneList = pruneList[:k]
	case len(pruneList) < k:
		// Shortfall: sample the difference from the keep set without
		// replacement. This relaxes the sole-member protection, which is the
		// accepted price of the exact-count contract.
		branch, moved = ReconcileBackfill, k-len(pruneList)
		keepList := keep.ToSortedSlice()
		rng.Shuffle(len(keepList), func(i, j int) {
			keepList[i], keepList[j] = keepList[j], keepList[i]
		})
		pruneList = append(pruneList, keepList[:moved]...)
		sort.Ints(pruneList)
	}

	// Unreachable given the branches above, but guarded: a miscount here
	// means corrupted state, not bad data.
	if len(pruneList) != k {
		return nil, branch, moved, &ErrCountMismatch{Want: k, Got: len(pruneList)}
	}

	return pruneList, branch, moved, nil
}

// applyFuzz perturbs every element of m in place with a bounded random
// offset. Identical filters otherwise produce distance ties and duplicate
// nearest-row assignments during clustering.
func (s *Selector) applyFuzz(rng *rand.Rand, m *tensor.Matrix) {
	if s.opts.fuzzEpsilon <= 0 {
		return
	}

	for i := 0; i < m.Rows(); i++ {
		row := m.Row(i)
		for j := range row {
			row[j] += (rng.Float32() - 0.5) * s.opts.fuzzEpsilon
		}
	}
}

// PruneLayer selects k channels and wraps them in a deferred delete_channels
// job. The layer is not touched until the job is applied.
func (s *Selector) PruneLayer(ctx context.Context, layer surgeon.Layer, k int) (surgeon.Job, error) {
	indices, err := s.SelectChannels(ctx, layer, k)
	if err != nil {
		return surgeon.Job{}, err
	}

	return surgeon.NewDeleteChannelsJob(layer, indices), nil
}

// PruneLayers selects channels for multiple independent layers in parallel
// and aggregates the results into a plan, in the order the layers were given.
// targets[i] is the prune count for layers[i].
//
// If queue is non-nil, a deferred delete_channels job is added per layer;
// nothing is applied until the caller operates the queue.
func (s *Selector) PruneLayers(ctx context.Context, queue *surgeon.Queue, layers []surgeon.Layer, targets []int) (*plan.Plan, error) {
	if len(layers) != len(targets) {
		return nil, &ErrLayerCountMismatch{Layers: len(layers), Targets: len(targets)}
	}

	selected := make([][]int, len(layers))

	g, ctx := errgroup.WithContext(ctx)
	for i, layer := range layers {
		g.Go(func() error {
			indices, err := s.SelectChannels(ctx, layer, targets[i])
			if err != nil {
				return err
			}
			selected[i] = indices
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := plan.New()
	for i, layer := range layers {
		p.Add(layer.Name(), selected[i])
		if queue != nil {
			queue.Add(surgeon.NewDeleteChannelsJob(layer, selected[i]))
		}
	}

	return p, nil
}
