package plan

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() *Plan {
	p := New()
	p.Add("conv1", []int{0, 3, 5})
	p.Add("conv2", []int{1})
	return p
}

func TestPlanAccessors(t *testing.T) {
	p := samplePlan()

	assert.Equal(t, 4, p.TotalChannels())

	ch, ok := p.Channels("conv1")
	require.True(t, ok)
	assert.Equal(t, []int{0, 3, 5}, ch)

	_, ok = p.Channels("missing")
	assert.False(t, ok)
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		var buf bytes.Buffer
		require.NoError(t, samplePlan().Encode(&buf, compression))

		got, err := Decode(&buf)
		require.NoError(t, err, "compression %d", compression)
		assert.Equal(t, samplePlan(), got)
	}
}

func TestSnapshotBadMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("XXXX0garbage")))
	assert.Error(t, err)
}

func TestEncode_UnknownCompression(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, samplePlan().Encode(&buf, Compression(99)))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round1.plan")

	require.NoError(t, samplePlan().Save(path, CompressionZSTD))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, samplePlan(), got)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.plan"))
	assert.Error(t, err)
}
