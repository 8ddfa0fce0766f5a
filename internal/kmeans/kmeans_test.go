package kmeans

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/filterprune/distance"
	"github.com/hupe1980/filterprune/tensor"
)

func matrixFromRows(t *testing.T, rows [][]float32) *tensor.Matrix {
	t.Helper()

	m := tensor.NewMatrix(len(rows), len(rows[0]))
	for i, r := range rows {
		copy(m.Row(i), r)
	}
	return m
}

func TestTrain(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	// Two well-separated groups around (0,0) and (10,10).
	m := matrixFromRows(t, [][]float32{
		{0, 0}, {0, 1}, {1, 0},
		{10, 10}, {10, 11}, {11, 10},
	})

	centroids, err := Train(rng, m, 2, 100, distance.SquaredL2)
	require.NoError(t, err)
	require.Equal(t, 2, centroids.Rows())

	// The two centroids must land in different groups.
	reps := NearestRows(centroids, m, distance.SquaredL2)
	low := reps[0] < 3
	high := reps[1] < 3
	assert.NotEqual(t, low, high)
}

func TestTrain_TooFewRows(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := matrixFromRows(t, [][]float32{{0, 0}})

	_, err := Train(rng, m, 2, 10, distance.SquaredL2)
	assert.ErrorIs(t, err, ErrTooFewRows)
}

func TestTrain_ZeroClusters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := matrixFromRows(t, [][]float32{{0, 0}})

	centroids, err := Train(rng, m, 0, 10, distance.SquaredL2)
	require.NoError(t, err)
	assert.Equal(t, 0, centroids.Rows())
}

func TestTrain_IdenticalRows(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	rows := make([][]float32, 8)
	for i := range rows {
		rows[i] = []float32{1, 2, 3}
	}
	m := matrixFromRows(t, rows)

	centroids, err := Train(rng, m, 3, 50, distance.SquaredL2)
	require.NoError(t, err)
	assert.Equal(t, 3, centroids.Rows())
}

func TestTrain_Deterministic(t *testing.T) {
	m := matrixFromRows(t, [][]float32{
		{0, 0}, {0, 1}, {5, 5}, {5, 6}, {10, 10}, {10, 11},
	})

	run := func() *tensor.Matrix {
		rng := rand.New(rand.NewSource(99))
		c, err := Train(rng, m, 3, 100, distance.SquaredL2)
		require.NoError(t, err)
		return c
	}

	a, b := run(), run()
	for i := 0; i < a.Rows(); i++ {
		assert.Equal(t, a.Row(i), b.Row(i))
	}
}

func TestNearestRows_TieBreak(t *testing.T) {
	// Rows 0 and 1 are identical; the centroid equidistant to both must pick row 0.
	m := matrixFromRows(t, [][]float32{
		{1, 1}, {1, 1}, {9, 9},
	})
	centroids := matrixFromRows(t, [][]float32{{1, 1}})

	reps := NearestRows(centroids, m, distance.SquaredL2)
	assert.Equal(t, []int{0}, reps)
}
