package tensor

import "fmt"

// checkSameShape panics when the two tensors differ in shape.
// Shape mismatches in the training path are programmer errors.
func checkSameShape(op string, a, b *Tensor) {
	if !a.shape.Equal(b.shape) {
		panic(fmt.Sprintf("tensor.%s: shape mismatch: %v vs %v", op, a.shape, b.shape))
	}
}

// Add returns a + b elementwise.
func (t *Tensor) Add(other *Tensor) *Tensor {
	checkSameShape("Add", t, other)
	out := New(t.shape)
	for i := range t.data {
		out.data[i] = t.data[i] + other.data[i]
	}
	return out
}

// Sub returns a - b elementwise.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	checkSameShape("Sub", t, other)
	out := New(t.shape)
	for i := range t.data {
		out.data[i] = t.data[i] - other.data[i]
	}
	return out
}

// Mul returns a * b elementwise.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	checkSameShape("Mul", t, other)
	out := New(t.shape)
	for i := range t.data {
		out.data[i] = t.data[i] * other.data[i]
	}
	return out
}

// Scale returns t * s elementwise.
func (t *Tensor) Scale(s float32) *Tensor {
	out := New(t.shape)
	for i := range t.data {
		out.data[i] = t.data[i] * s
	}
	return out
}

// AddInPlace accumulates other into t elementwise.
func (t *Tensor) AddInPlace(other *Tensor) {
	checkSameShape("AddInPlace", t, other)
	for i := range t.data {
		t.data[i] += other.data[i]
	}
}

// Zero resets all elements to zero.
func (t *Tensor) Zero() {
	for i := range t.data {
		t.data[i] = 0
	}
}

// Transpose returns the transpose of a 2D tensor.
func (t *Tensor) Transpose() *Tensor {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("tensor.Transpose: expected 2D tensor, got shape %v", t.shape))
	}
	rows, cols := t.shape[0], t.shape[1]
	out := New(Shape{cols, rows})
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out.data[c*rows+r] = t.data[r*cols+c]
		}
	}
	return out
}

// MatMul computes the matrix product of two 2D tensors.
//
// [m, k] @ [k, n] = [m, n].
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		panic(fmt.Sprintf("tensor.MatMul: expected 2D tensors, got %v and %v", t.shape, other.shape))
	}
	m, k := t.shape[0], t.shape[1]
	k2, n := other.shape[0], other.shape[1]
	if k != k2 {
		panic(fmt.Sprintf("tensor.MatMul: inner dimensions do not match: %v @ %v", t.shape, other.shape))
	}

	out := New(Shape{m, n})
	for i := 0; i < m; i++ {
		arow := t.data[i*k : (i+1)*k]
		orow := out.data[i*n : (i+1)*n]
		for j := 0; j < k; j++ {
			a := arow[j]
			if a == 0 {
				continue
			}
			brow := other.data[j*n : (j+1)*n]
			for l := 0; l < n; l++ {
				orow[l] += a * brow[l]
			}
		}
	}
	return out
}
