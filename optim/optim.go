// Copyright 2026 Synap ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for the Synap update engine:
// group-wise momentum SGD with the Batch Manhattan and No-Sign-Change
// policies.
//
// Example:
//
//	nonLast, last, _ := optim.SplitLastLayer(model.Parameters(), model.FinalLayer().Parameters())
//	groups := optim.BuildGroups(nonLast, last,
//	    optim.GroupConfig{LR: 0.1, BatchManhattan: true, NoSignChange: true},
//	    optim.GroupConfig{LR: 0.1},
//	)
//	opt, _ := optim.NewSGD(groups, optim.Config{Momentum: 0.9, WeightDecay: 1e-4})
package optim

import (
	"github.com/synap-ml/synap/internal/nn"
	"github.com/synap-ml/synap/internal/optim"
)

// Config holds the hyperparameters shared across all parameter groups.
type Config = optim.Config

// GroupConfig describes the update policy for one tier of parameters.
type GroupConfig = optim.GroupConfig

// ParamGroup is an ordered collection of parameters sharing one learning
// rate and one update policy.
type ParamGroup = optim.ParamGroup

// SGD applies momentum SGD with per-group update policies.
type SGD = optim.SGD

// ErrEmptyLastLayer is returned when the designated last layer exposes no
// trainable parameters.
var ErrEmptyLastLayer = optim.ErrEmptyLastLayer

// NewParamGroup creates a group over params with the given config.
func NewParamGroup(params []*nn.Parameter, cfg GroupConfig) *ParamGroup {
	return optim.NewParamGroup(params, cfg)
}

// SplitLastLayer partitions params into last-layer and non-last-layer sets
// by parameter identity.
func SplitLastLayer(params, lastParams []*nn.Parameter) (nonLast, last []*nn.Parameter, err error) {
	return optim.SplitLastLayer(params, lastParams)
}

// SplitBias partitions params into bias and non-bias sets.
func SplitBias(params []*nn.Parameter) (bias, nonBias []*nn.Parameter) {
	return optim.SplitBias(params)
}

// BuildGroups forms the parameter groups for a two-tier policy split,
// exempting biases from No-Sign-Change where it applies.
func BuildGroups(nonLast, last []*nn.Parameter, nonLastCfg, lastCfg GroupConfig) []*ParamGroup {
	return optim.BuildGroups(nonLast, last, nonLastCfg, lastCfg)
}

// NewSGD creates a group-wise SGD optimizer over a partition of the
// trainable parameters.
func NewSGD(groups []*ParamGroup, config Config) (*SGD, error) {
	return optim.NewSGD(groups, config)
}

// DecayedLR returns base scaled by 0.1 for every decayEpochs completed
// epochs.
func DecayedLR(base float32, epoch, decayEpochs int) float32 {
	return optim.DecayedLR(base, epoch, decayEpochs)
}
