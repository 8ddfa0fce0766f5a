package filterprune

import (
	"time"

	"github.com/hupe1980/filterprune/distance"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	seed             int64
	fuzzEpsilon      float32
	maxIterations    int
	metric           distance.Metric
}

// Option configures Selector behavior.
type Option func(*options)

// WithLogger configures structured logging for selections.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring selections.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithSeed fixes the seed for the selector's random source.
//
// Every selection derives a fresh generator from this seed, so the same
// tensor, seed and target always yield the same prune set, and parallel
// per-layer selections never share generator state. Without this option the
// seed is taken from the wall clock and results vary across runs.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithFuzzEpsilon sets the magnitude of the random perturbation applied to
// the flattened filters before clustering. The fuzz breaks distance ties
// between numerically identical filters; it is applied to a copy and never
// written back to the layer. Must be small relative to typical weight
// magnitude. Values <= 0 disable fuzzing.
func WithFuzzEpsilon(epsilon float32) Option {
	return func(o *options) {
		o.fuzzEpsilon = epsilon
	}
}

// WithMaxIterations caps the Lloyd iterations of the clustering run.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithMetric sets the distance metric used to compare filters.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		seed:             time.Now().UnixNano(),
		fuzzEpsilon:      defaultFuzzEpsilon,
		maxIterations:    defaultMaxIterations,
		metric:           distance.MetricL2,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
