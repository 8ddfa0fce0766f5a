package kmeans

import (
	"errors"
	"math"
	"math/rand"

	"github.com/hupe1980/filterprune/distance"
	"github.com/hupe1980/filterprune/tensor"
)

// ErrTooFewRows is returned when the matrix has fewer rows than requested clusters.
var ErrTooFewRows = errors.New("kmeans: fewer rows than clusters")

// Train clusters the rows of m into k centroids using Lloyd's algorithm with
// k-means++ seeding. All randomness is drawn from rng so runs are reproducible
// under a fixed seed. Returns the centroids as a k x m.Cols() matrix.
func Train(rng *rand.Rand, m *tensor.Matrix, k, maxIter int, distFunc distance.Func) (*tensor.Matrix, error) {
	n := m.Rows()
	if n < k {
		return nil, ErrTooFewRows
	}

	if k == 0 {
		return tensor.NewMatrix(0, m.Cols()), nil
	}

	centroids := seedPlusPlus(rng, m, k, distFunc)

	assignments := make([]int, n)
	counts := make([]int, k)
	sums := tensor.NewMatrix(k, m.Cols())

	for iter := 0; iter < maxIter; iter++ {
		// Assignment step
		changed := false
		for i := 0; i < n; i++ {
			best := nearest(m.Row(i), centroids, distFunc)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed && iter > 0 {
			break
		}

		// Update step
		for j := 0; j < k; j++ {
			counts[j] = 0
			row := sums.Row(j)
			for d := range row {
				row[d] = 0
			}
		}

		for i := 0; i < n; i++ {
			c := assignments[i]
			counts[c]++
			row := m.Row(i)
			sum := sums.Row(c)
			for d, v := range row {
				sum[d] += v
			}
		}

		for j := 0; j < k; j++ {
			center := centroids.Row(j)
			if counts[j] > 0 {
				scale := 1 / float32(counts[j])
				sum := sums.Row(j)
				for d := range center {
					center[d] = sum[d] * scale
				}
			} else {
				// Re-seed empty cluster with a random row.
				copy(center, m.Row(rng.Intn(n)))
			}
		}
	}

	return centroids, nil
}

// seedPlusPlus picks k initial centroids with k-means++ sampling: the first
// uniformly, the rest proportional to squared distance from the nearest
// already-chosen centroid.
func seedPlusPlus(rng *rand.Rand, m *tensor.Matrix, k int, distFunc distance.Func) *tensor.Matrix {
	n := m.Rows()
	centroids := tensor.NewMatrix(k, m.Cols())

	copy(centroids.Row(0), m.Row(rng.Intn(n)))

	// minDist tracks each row's distance to its nearest chosen centroid.
	minDist := make([]float32, n)
	var sum float32
	for i := 0; i < n; i++ {
		d := distFunc(m.Row(i), centroids.Row(0))
		minDist[i] = d
		sum += d
	}

	for c := 1; c < k; c++ {
		if sum <= 0 {
			// All rows coincide with chosen centroids; fall back to uniform.
			copy(centroids.Row(c), m.Row(rng.Intn(n)))
			continue
		}

		target := rng.Float32() * sum
		var cumsum float32
		chosen := n - 1
		for i, d := range minDist {
			cumsum += d
			if cumsum >= target {
				chosen = i
				break
			}
		}
		copy(centroids.Row(c), m.Row(chosen))

		sum = 0
		for i := 0; i < n; i++ {
			d := distFunc(m.Row(i), centroids.Row(c))
			if d < minDist[i] {
				minDist[i] = d
			}
			sum += minDist[i]
		}
	}

	return centroids
}

// NearestRows returns, for each centroid, the index of the closest row of m.
// Ties resolve to the lowest row index (strict less-than comparison), which
// keeps representative selection stable across runs.
func NearestRows(centroids, m *tensor.Matrix, distFunc distance.Func) []int {
	result := make([]int, centroids.Rows())
	for c := 0; c < centroids.Rows(); c++ {
		result[c] = nearest(centroids.Row(c), m, distFunc)
	}

	return result
}

func nearest(vec []float32, m *tensor.Matrix, distFunc distance.Func) int {
	best := 0
	minDist := float32(math.MaxFloat32)

	for i := 0; i < m.Rows(); i++ {
		d := distFunc(vec, m.Row(i))
		if d < minDist {
			minDist = d
			best = i
		}
	}

	return best
}
