// Package filterprune selects redundant convolutional filters for structured
// model pruning.
//
// Given a layer's 4-D weight tensor and a target count k, the selector
// clusters the flattened filters with k-means (k-means++ seeding), protects
// the filter closest to each centroid, and returns exactly k channel indices
// to prune. Clustering degeneracies (identical filters, duplicate
// representatives, empty clusters) are absorbed by a small random fuzz and a
// deterministic count-reconciliation step, never surfaced as errors.
//
// # Quick Start
//
//	ctx := context.Background()
//	selector := filterprune.NewSelector(filterprune.WithSeed(42))
//
//	indices, _ := selector.SelectChannels(ctx, layer, 3)
//
//	// Or defer the structural edit through a surgeon queue:
//	queue := surgeon.NewQueue()
//	pruned, _ := selector.PruneLayers(ctx, queue, layers, targets)
//	_ = pruned.Save("round1.plan", plan.CompressionZSTD)
//	_ = queue.Operate(ctx)
//
// Selection never mutates weights. The only mutation path is applying the
// deferred delete_channels jobs, which callers control explicitly.
package filterprune
