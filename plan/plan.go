// Package plan aggregates the outcome of one pruning round into a value an
// orchestrator can inspect, persist, and replay.
//
// A plan records, per layer, the ordered channel indices selected for removal.
// Plans can be written to disk as compressed JSON snapshots so a selection
// round stays auditable and reproducible independent of the model graph.
package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the snapshot compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the snapshot as plain JSON.
	CompressionNone Compression = 0
	// CompressionLZ4 favors speed.
	CompressionLZ4 Compression = 1
	// CompressionZSTD favors ratio.
	CompressionZSTD Compression = 2
)

// snapshot header: magic, format version, compression byte.
var snapshotMagic = [4]byte{'F', 'P', 'P', '1'}

// Entry is the selection result for a single layer.
type Entry struct {
	Layer    string `json:"layer"`
	Channels []int  `json:"channels"`
}

// Plan is the ordered per-layer selection of one pruning round.
type Plan struct {
	Entries []Entry `json:"entries"`
}

// New creates an empty plan.
func New() *Plan {
	return &Plan{}
}

// Add appends a layer's selected channels to the plan.
func (p *Plan) Add(layer string, channels []int) {
	p.Entries = append(p.Entries, Entry{Layer: layer, Channels: channels})
}

// TotalChannels returns the number of channels selected across all layers.
func (p *Plan) TotalChannels() int {
	var total int
	for _, e := range p.Entries {
		total += len(e.Channels)
	}
	return total
}

// Channels returns the selected channels for the named layer.
// The second return is false if the layer is not in the plan.
func (p *Plan) Channels(layer string) ([]int, bool) {
	for _, e := range p.Entries {
		if e.Layer == layer {
			return e.Channels, true
		}
	}
	return nil, false
}

// Encode writes the plan to w as a compressed snapshot.
func (p *Plan) Encode(w io.Writer, compression Compression) error {
	header := append(snapshotMagic[:], byte(compression))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}

	payload := w
	var closer io.Closer

	switch compression {
	case CompressionNone:
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		payload, closer = lw, lw
	case CompressionZSTD:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("create zstd writer: %w", err)
		}
		payload, closer = zw, zw
	default:
		return fmt.Errorf("unknown compression: %d", compression)
	}

	if err := json.NewEncoder(payload).Encode(p); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("flush compressed plan: %w", err)
		}
	}

	return nil
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (*Plan, error) {
	header := make([]byte, len(snapshotMagic)+1)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}

	if string(header[:len(snapshotMagic)]) != string(snapshotMagic[:]) {
		return nil, fmt.Errorf("not a plan snapshot (bad magic %q)", header[:len(snapshotMagic)])
	}

	payload := r

	switch Compression(header[len(snapshotMagic)]) {
	case CompressionNone:
	case CompressionLZ4:
		payload = lz4.NewReader(r)
	case CompressionZSTD:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create zstd reader: %w", err)
		}
		defer zr.Close()
		payload = zr
	default:
		return nil, fmt.Errorf("unknown compression: %d", header[len(snapshotMagic)])
	}

	var p Plan
	if err := json.NewDecoder(payload).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	return &p, nil
}

// Save writes the plan to a file, replacing any existing snapshot atomically
// (write to a temp file in the same directory, then rename).
func (p *Plan) Save(path string, compression Compression) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".plan-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}

	if err := p.Encode(tmp, compression); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename snapshot: %w", err)
	}

	return nil
}

// Load reads a plan snapshot from a file.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
