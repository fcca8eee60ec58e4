// Copyright 2026 Synap ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for neural network building blocks in
// the Synap ML framework.
//
// Modules compose into classifiers whose parameters carry a name and a
// structural kind (weight or bias); the update engine in package optim
// consumes both when forming parameter groups.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10),
//	)
//	logits := model.Forward(input)
package nn

import (
	"github.com/synap-ml/synap/internal/nn"
	"github.com/synap-ml/synap/internal/tensor"
)

// Module is the interface implemented by all network building blocks.
type Module = nn.Module

// Classifier is a module with a structurally identified final layer.
type Classifier = nn.Classifier

// StateDicter exports and restores named parameter tensors.
type StateDicter = nn.StateDicter

// ParamKind labels a parameter as weight or bias.
type ParamKind = nn.ParamKind

// Parameter kind constants.
const (
	KindWeight ParamKind = nn.KindWeight
	KindBias   ParamKind = nn.KindBias
)

// Parameter is a named trainable tensor with an accumulated gradient.
type Parameter = nn.Parameter

// NewParameter creates a parameter with an explicit kind.
func NewParameter(name string, kind ParamKind, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, kind, t)
}

// NewNamedParameter creates a parameter whose kind is inferred from its
// name suffix.
func NewNamedParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewNamedParameter(name, t)
}

// KindFromName infers a parameter kind from a state-dict style name.
func KindFromName(name string) ParamKind {
	return nn.KindFromName(name)
}

// Linear is a fully connected layer.
type Linear = nn.Linear

// NewLinear creates a fully connected layer with Xavier-initialized weights
// and zero biases.
func NewLinear(inFeatures, outFeatures int) *Linear {
	return nn.NewLinear(inFeatures, outFeatures)
}

// ReLU is the rectified linear activation.
type ReLU = nn.ReLU

// NewReLU creates a ReLU activation module.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Sequential chains modules in order.
type Sequential = nn.Sequential

// NewSequential creates a sequential container over the given modules.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// CrossEntropyLoss is softmax cross-entropy over class logits.
type CrossEntropyLoss = nn.CrossEntropyLoss

// NewCrossEntropyLoss creates a cross-entropy loss function.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return nn.NewCrossEntropyLoss()
}

// OptimizerState is the optimizer side of a checkpoint.
type OptimizerState = nn.OptimizerState

// Checkpoint bundles model state, optimizer state, and run metadata for one
// .synap file.
type Checkpoint = nn.Checkpoint

// CheckpointError reports a failed checkpoint save or restore.
type CheckpointError = nn.CheckpointError

// LoadCheckpoint restores model and optimizer state from a .synap file.
//
// It fails without partial effect when the file does not align with the
// given model and optimizer structure.
func LoadCheckpoint(path string, model StateDicter, optimizer OptimizerState) (*Checkpoint, error) {
	return nn.LoadCheckpoint(path, model, optimizer)
}
