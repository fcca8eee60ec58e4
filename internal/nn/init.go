package nn

import (
	"math"

	"github.com/synap-ml/synap/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Draws values from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))),
// which keeps activation variance roughly constant across layers.
func Xavier(fanIn, fanOut int, shape tensor.Shape) *tensor.Tensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return tensor.Uniform(shape, bound)
}

// Zeros creates a zero-filled tensor. Commonly used for bias initialization.
func Zeros(shape tensor.Shape) *tensor.Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape tensor.Shape) *tensor.Tensor {
	return tensor.Ones(shape)
}

// Randn creates a tensor with values drawn from N(0, 1).
func Randn(shape tensor.Shape) *tensor.Tensor {
	return tensor.Randn(shape)
}
