package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, float32(0), SquaredL2([]float32{1, 2, 3}, []float32{1, 2, 3}))
	assert.Equal(t, float32(25), SquaredL2([]float32{0, 0}, []float32{3, 4}))
}

func TestDot(t *testing.T) {
	assert.Equal(t, float32(11), Dot([]float32{1, 2}, []float32{3, 4}))
	assert.Equal(t, float32(0), Dot([]float32{1, 0}, []float32{0, 1}))
}

func TestProvider(t *testing.T) {
	f, err := Provider(MetricL2)
	require.NoError(t, err)
	assert.Equal(t, float32(25), f([]float32{0, 0}, []float32{3, 4}))

	f, err = Provider(MetricDot)
	require.NoError(t, err)
	assert.Equal(t, float32(11), f([]float32{1, 2}, []float32{3, 4}))

	_, err = Provider(Metric(999))
	assert.Error(t, err)
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "L2", MetricL2.String())
	assert.Equal(t, "Dot", MetricDot.String())
	assert.Equal(t, "Unknown(999)", Metric(999).String())
}
