package tensor

import (
	"fmt"
)

// Tensor is a dense, row-major float32 tensor.
//
// The backing slice is exposed via Data() so numerical kernels (layer
// forward/backward passes, the optimizer's update loop) can operate on it
// without per-element accessor overhead. Two tensors never alias unless one
// was created as a view of the other's data.
type Tensor struct {
	shape Shape
	data  []float32
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor.New: %v", err))
	}
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float32, shape.NumElements()),
	}
}

// FromSlice creates a tensor wrapping a copy of the given data.
//
// The length of data must match shape.NumElements().
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	t := New(shape)
	copy(t.data, data)
	return t, nil
}

// Shape returns the tensor's shape. The returned slice must not be mutated.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the backing slice. Mutations are visible to all views.
func (t *Tensor) Data() []float32 {
	return t.data
}

// At returns the element at the given flat (row-major) index.
func (t *Tensor) At(i int) float32 {
	return t.data[i]
}

// Set writes the element at the given flat (row-major) index.
func (t *Tensor) Set(i int, v float32) {
	t.data[i] = v
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := New(t.shape)
	copy(c.data, t.data)
	return c
}

// CopyFrom copies other's data into t. Shapes must match.
func (t *Tensor) CopyFrom(other *Tensor) {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("tensor.CopyFrom: shape mismatch: %v vs %v", t.shape, other.shape))
	}
	copy(t.data, other.data)
}

// Reshape returns a view of the same data with a new shape.
//
// The number of elements must be unchanged.
func (t *Tensor) Reshape(dims ...int) *Tensor {
	shape := Shape(dims)
	if shape.NumElements() != len(t.data) {
		panic(fmt.Sprintf("tensor.Reshape: cannot reshape %v to %v", t.shape, shape))
	}
	return &Tensor{shape: shape.Clone(), data: t.data}
}

// String returns a compact description of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(shape=%v)", t.shape)
}
