package nn

import (
	"github.com/synap-ml/synap/internal/tensor"
)

// ReLU applies the rectified linear unit elementwise: max(0, x).
type ReLU struct {
	mask []bool // true where the input was positive, cached by Forward
}

// NewReLU creates a new ReLU activation.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward computes max(0, x) and caches the activation mask.
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	in := input.Data()
	out := tensor.New(input.Shape())
	o := out.Data()
	r.mask = make([]bool, len(in))
	for i, v := range in {
		if v > 0 {
			o[i] = v
			r.mask[i] = true
		}
	}
	return out
}

// Backward zeroes the gradient where the input was non-positive.
func (r *ReLU) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	if r.mask == nil {
		panic("ReLU.Backward: called before Forward")
	}
	grad := tensor.New(gradOutput.Shape())
	g := grad.Data()
	in := gradOutput.Data()
	for i, pass := range r.mask {
		if pass {
			g[i] = in[i]
		}
	}
	return grad
}

// Parameters returns an empty slice; ReLU has no trainable parameters.
func (r *ReLU) Parameters() []*Parameter {
	return nil
}
