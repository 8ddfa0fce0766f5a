// Package tensor provides the weight tensor and matrix views used by channel selection.
//
// A convolutional kernel is stored as a 4-D tensor with axes
// (height, width, input channels, output channels). Channel selection operates
// on a derived 2-D view with one row per output channel.
package tensor

import "fmt"

// ErrShapeMismatch indicates that the flat data length does not match the
// declared tensor shape.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrShapeMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: expected %d elements, got %d", e.Expected, e.Actual)
}

func (e *ErrShapeMismatch) Unwrap() error { return e.cause }

// ErrInvalidShape indicates a non-positive tensor dimension.
type ErrInvalidShape struct {
	Height         int
	Width          int
	InputChannels  int
	OutputChannels int
}

func (e *ErrInvalidShape) Error() string {
	return fmt.Sprintf("invalid shape: (%d, %d, %d, %d)", e.Height, e.Width, e.InputChannels, e.OutputChannels)
}

// Tensor4D is a 4-D weight tensor with axes (height, width, input channels,
// output channels), stored flat in row-major order with height outermost.
// It is treated as read-only by the selection algorithm.
type Tensor4D struct {
	data           []float32
	height         int
	width          int
	inputChannels  int
	outputChannels int
}

// New4D creates a Tensor4D over the given flat data.
// The data is not copied; callers must not mutate it during selection.
func New4D(data []float32, height, width, inputChannels, outputChannels int) (*Tensor4D, error) {
	if height <= 0 || width <= 0 || inputChannels <= 0 || outputChannels <= 0 {
		return nil, &ErrInvalidShape{Height: height, Width: width, InputChannels: inputChannels, OutputChannels: outputChannels}
	}

	expected := height * width * inputChannels * outputChannels
	if len(data) != expected {
		return nil, &ErrShapeMismatch{Expected: expected, Actual: len(data)}
	}

	return &Tensor4D{
		data:           data,
		height:         height,
		width:          width,
		inputChannels:  inputChannels,
		outputChannels: outputChannels,
	}, nil
}

// At returns the element at (h, w, ic, oc). No bounds checks beyond the slice's own.
func (t *Tensor4D) At(h, w, ic, oc int) float32 {
	return t.data[((h*t.width+w)*t.inputChannels+ic)*t.outputChannels+oc]
}

// Height returns the kernel height.
func (t *Tensor4D) Height() int { return t.height }

// Width returns the kernel width.
func (t *Tensor4D) Width() int { return t.width }

// InputChannels returns the number of input channels.
func (t *Tensor4D) InputChannels() int { return t.inputChannels }

// OutputChannels returns the number of output channels (filters).
func (t *Tensor4D) OutputChannels() int { return t.outputChannels }

// FilterDim returns the dimensionality of a single flattened filter row.
func (t *Tensor4D) FilterDim() int { return t.height * t.width * t.inputChannels }

// FlattenByOutputChannel reorders axes so the output channel leads and returns
// the result as a matrix with one row per output channel. The returned matrix
// always owns a fresh copy, so callers may perturb it freely without touching
// the layer's weights.
func (t *Tensor4D) FlattenByOutputChannel() *Matrix {
	m := NewMatrix(t.outputChannels, t.FilterDim())

	for oc := 0; oc < t.outputChannels; oc++ {
		row := m.Row(oc)
		i := 0
		for h := 0; h < t.height; h++ {
			for w := 0; w < t.width; w++ {
				for ic := 0; ic < t.inputChannels; ic++ {
					row[i] = t.At(h, w, ic, oc)
					i++
				}
			}
		}
	}

	return m
}
