package tensor

import (
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return New(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1)
}

// Full creates a tensor filled with the given value.
func Full(shape Shape, value float32) *Tensor {
	t := New(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn from N(0, 1).
func Randn(shape Shape) *Tensor {
	t := New(shape)
	for i := range t.data {
		//nolint:gosec // math/rand is fine for weight initialization
		t.data[i] = float32(rand.NormFloat64())
	}
	return t
}

// Uniform creates a tensor with values drawn from U(-bound, bound).
func Uniform(shape Shape, bound float64) *Tensor {
	t := New(shape)
	for i := range t.data {
		//nolint:gosec // math/rand is fine for weight initialization
		t.data[i] = float32((rand.Float64()*2 - 1) * bound)
	}
	return t
}
