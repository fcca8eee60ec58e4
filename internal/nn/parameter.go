package nn

import (
	"strings"

	"github.com/synap-ml/synap/internal/tensor"
)

// ParamKind tags a parameter as a weight or a bias at declaration time.
//
// The tag is structural: layers set it when they create their parameters,
// so downstream classification (the bias exemption in the update engine)
// never depends on name patterns.
type ParamKind int

const (
	// KindWeight marks a multiplicative weight parameter.
	KindWeight ParamKind = iota
	// KindBias marks an additive bias parameter.
	KindBias
)

// String returns the kind name.
func (k ParamKind) String() string {
	if k == KindBias {
		return "bias"
	}
	return "weight"
}

// KindFromName infers a ParamKind from a parameter name.
//
// Only used as a fallback for parameters constructed without an explicit
// tag; it mirrors the usual ".bias" suffix convention.
func KindFromName(name string) ParamKind {
	if strings.HasSuffix(name, "bias") {
		return KindBias
	}
	return KindWeight
}

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are tensors that receive gradients during training. Identity
// (the pointer) matters: the optimizer partitions parameters into groups by
// identity and keys momentum buffers by identity, never by value.
type Parameter struct {
	name   string
	kind   ParamKind
	tensor *tensor.Tensor // The parameter data
	grad   *tensor.Tensor // Gradient, nil until the first backward pass
}

// NewParameter creates a new trainable parameter with an explicit kind tag.
func NewParameter(name string, kind ParamKind, t *tensor.Tensor) *Parameter {
	return &Parameter{
		name:   name,
		kind:   kind,
		tensor: t,
	}
}

// NewNamedParameter creates a parameter whose kind is inferred from its name.
func NewNamedParameter(name string, t *tensor.Tensor) *Parameter {
	return NewParameter(name, KindFromName(name), t)
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Kind returns the structural weight/bias tag.
func (p *Parameter) Kind() ParamKind {
	return p.kind
}

// IsBias reports whether the parameter is a bias term.
func (p *Parameter) IsBias() bool {
	return p.kind == KindBias
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before the first backward pass.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// SetGrad replaces the gradient tensor.
func (p *Parameter) SetGrad(grad *tensor.Tensor) {
	p.grad = grad
}

// AccumGrad accumulates grad into the parameter's gradient, allocating the
// gradient tensor on first touch.
func (p *Parameter) AccumGrad(grad *tensor.Tensor) {
	if p.grad == nil {
		p.grad = grad.Clone()
		return
	}
	p.grad.AddInPlace(grad)
}

// ZeroGrad clears the gradient tensor.
//
// Called before each training iteration to avoid accumulating gradients
// across iterations.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
