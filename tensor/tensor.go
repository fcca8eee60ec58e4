// Copyright 2026 Synap ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in the
// Synap ML framework.
//
// Tensors are dense float32 arrays in row-major order backed by host
// memory.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3})
//	y := tensor.Ones(tensor.Shape{2, 3})
//	z := tensor.Add(x, y)
package tensor

import (
	"github.com/synap-ml/synap/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense float32 array with a shape.
type Tensor = tensor.Tensor

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) *Tensor {
	return tensor.New(shape)
}

// FromSlice creates a tensor that copies the given data.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with the given value.
func Full(shape Shape, value float32) *Tensor {
	return tensor.Full(shape, value)
}

// Randn creates a tensor with standard-normal random values.
func Randn(shape Shape) *Tensor {
	return tensor.Randn(shape)
}

// Uniform creates a tensor with values drawn uniformly from
// [-bound, bound].
func Uniform(shape Shape, bound float64) *Tensor {
	return tensor.Uniform(shape, bound)
}

// Add returns the elementwise sum a + b.
func Add(a, b *Tensor) *Tensor {
	return a.Add(b)
}

// Sub returns the elementwise difference a - b.
func Sub(a, b *Tensor) *Tensor {
	return a.Sub(b)
}

// Mul returns the elementwise product a * b.
func Mul(a, b *Tensor) *Tensor {
	return a.Mul(b)
}

// Scale returns a * s elementwise.
func Scale(a *Tensor, s float32) *Tensor {
	return a.Scale(s)
}

// MatMul returns the matrix product of two 2D tensors.
func MatMul(a, b *Tensor) *Tensor {
	return a.MatMul(b)
}

// Transpose returns the transpose of a 2D tensor.
func Transpose(a *Tensor) *Tensor {
	return a.Transpose()
}
