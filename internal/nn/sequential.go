package nn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/synap-ml/synap/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input. Backward runs the
// chain in reverse. When the last module carries trainable parameters,
// Sequential satisfies the Classifier interface out of the box.
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(input *tensor.Tensor) *tensor.Tensor {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Backward propagates the gradient through all modules in reverse order.
func (s *Sequential) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	grad := gradOutput
	for i := len(s.modules) - 1; i >= 0; i-- {
		grad = s.modules[i].Backward(grad)
	}
	return grad
}

// Parameters returns all trainable parameters from all modules, in module
// order. The order is deterministic, which the optimizer's positional
// checkpoint alignment relies on.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// FinalLayer returns the last module in the chain that has trainable
// parameters.
func (s *Sequential) FinalLayer() Module {
	for i := len(s.modules) - 1; i >= 0; i-- {
		if len(s.modules[i].Parameters()) > 0 {
			return s.modules[i]
		}
	}
	return nil
}

// Add appends a module to the sequence.
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// StateDict returns all sub-module parameters keyed "{index}.{name}".
func (s *Sequential) StateDict() map[string]*tensor.Tensor {
	stateDict := make(map[string]*tensor.Tensor)
	for i, module := range s.modules {
		sd, ok := module.(StateDicter)
		if !ok {
			continue
		}
		for name, t := range sd.StateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = t
		}
	}
	return stateDict
}

// LoadStateDict loads sub-module parameters from "{index}.{name}" keys.
func (s *Sequential) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	perModule := make(map[int]map[string]*tensor.Tensor)
	for key, t := range stateDict {
		idxStr, name, ok := strings.Cut(key, ".")
		if !ok {
			return fmt.Errorf("malformed state dict key %q", key)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= len(s.modules) {
			return fmt.Errorf("state dict key %q does not address a module", key)
		}
		if perModule[idx] == nil {
			perModule[idx] = make(map[string]*tensor.Tensor)
		}
		perModule[idx][name] = t
	}

	for i, module := range s.modules {
		sd, ok := module.(StateDicter)
		if !ok {
			continue
		}
		sub, present := perModule[i]
		if !present {
			return fmt.Errorf("state dict missing parameters for module %d", i)
		}
		if err := sd.LoadStateDict(sub); err != nil {
			return fmt.Errorf("module %d: %w", i, err)
		}
	}
	return nil
}
