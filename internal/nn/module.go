package nn

import (
	"github.com/synap-ml/synap/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Training is gradient-explicit: every module implements Backward, taking
// the gradient of the loss with respect to its output and returning the
// gradient with respect to its input, accumulating parameter gradients as a
// side effect. The optimizer consumes those gradients afterwards; how they
// were produced (standard backprop or an asymmetric-feedback variant) is
// invisible to it.
type Module interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Backward propagates gradOutput through the module, accumulating
	// parameter gradients, and returns the gradient with respect to the
	// module's input. Must be called after Forward on the same input.
	Backward(gradOutput *tensor.Tensor) *tensor.Tensor

	// Parameters returns all trainable parameters of this module.
	// Returns an empty slice for parameterless modules (e.g. activations).
	Parameters() []*Parameter
}

// Classifier is a model that exposes its final classification layer.
//
// The last layer is identified structurally (by module, hence by parameter
// identity), not by name pattern: different architectures hang their final
// trainable layer off different attributes, and name matching is fragile.
type Classifier interface {
	Module

	// FinalLayer returns the final linear/classification layer of the model.
	FinalLayer() Module
}

// StateDicter is a module that can export and import its parameters.
type StateDicter interface {
	// StateDict returns a map of parameter names to tensors.
	StateDict() map[string]*tensor.Tensor

	// LoadStateDict loads parameters from a state dictionary.
	LoadStateDict(stateDict map[string]*tensor.Tensor) error
}
