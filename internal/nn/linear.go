package nn

import (
	"fmt"

	"github.com/synap-ml/synap/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//
// Weights use Xavier/Glorot initialization; biases start at zero. The weight
// is tagged KindWeight and the bias KindBias, which is what routes the bias
// past the optimizer's sign-change constraint.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features]

	input *tensor.Tensor // cached by Forward for the backward pass
}

// NewLinear creates a new Linear layer.
func NewLinear(inFeatures, outFeatures int) *Linear {
	weight := NewParameter("weight", KindWeight,
		Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}))
	bias := NewParameter("bias", KindBias, Zeros(tensor.Shape{outFeatures}))

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}
}

// Forward computes y = x @ W.T + b.
//
// Input shape: [batch_size, in_features]. A 1D input of in_features is
// treated as a single-sample batch. The input is cached for Backward.
func (l *Linear) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) == 1 {
		input = input.Reshape(1, shape[0])
		shape = input.Shape()
	}
	if len(shape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", shape))
	}
	if shape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, shape[1]))
	}
	l.input = input

	// [batch, in] @ [in, out] = [batch, out]
	output := input.MatMul(l.weight.Tensor().Transpose())

	batch := shape[0]
	out := output.Data()
	b := l.bias.Tensor().Data()
	for r := 0; r < batch; r++ {
		row := out[r*l.outFeatures : (r+1)*l.outFeatures]
		for c := range row {
			row[c] += b[c]
		}
	}
	return output
}

// Backward accumulates parameter gradients and returns the input gradient.
//
//	dW = gradOutput.T @ input
//	db = column sums of gradOutput
//	dx = gradOutput @ W
func (l *Linear) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	if l.input == nil {
		panic("Linear.Backward: called before Forward")
	}
	shape := gradOutput.Shape()
	if len(shape) != 2 || shape[1] != l.outFeatures {
		panic(fmt.Sprintf("Linear.Backward: expected gradient shape [batch, %d], got %v", l.outFeatures, shape))
	}

	l.weight.AccumGrad(gradOutput.Transpose().MatMul(l.input))

	batch := shape[0]
	gradBias := tensor.Zeros(tensor.Shape{l.outFeatures})
	gb := gradBias.Data()
	g := gradOutput.Data()
	for r := 0; r < batch; r++ {
		row := g[r*l.outFeatures : (r+1)*l.outFeatures]
		for c := range row {
			gb[c] += row[c]
		}
	}
	l.bias.AccumGrad(gradBias)

	return gradOutput.MatMul(l.weight.Tensor())
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns a map of parameter names to tensors.
func (l *Linear) StateDict() map[string]*tensor.Tensor {
	return map[string]*tensor.Tensor{
		"weight": l.weight.Tensor(),
		"bias":   l.bias.Tensor(),
	}
}

// LoadStateDict loads parameters from a state dictionary.
func (l *Linear) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	weight, ok := stateDict["weight"]
	if !ok {
		return fmt.Errorf("missing weight in state dict")
	}
	expected := tensor.Shape{l.outFeatures, l.inFeatures}
	if !weight.Shape().Equal(expected) {
		return fmt.Errorf("weight shape mismatch: expected %v, got %v", expected, weight.Shape())
	}

	bias, ok := stateDict["bias"]
	if !ok {
		return fmt.Errorf("missing bias in state dict")
	}
	if !bias.Shape().Equal(tensor.Shape{l.outFeatures}) {
		return fmt.Errorf("bias shape mismatch: expected %v, got %v", tensor.Shape{l.outFeatures}, bias.Shape())
	}

	l.weight.Tensor().CopyFrom(weight)
	l.bias.Tensor().CopyFrom(bias)
	return nil
}
