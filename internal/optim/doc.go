// Package optim implements the parameter-update engine for the Synap
// framework.
//
// This package provides:
//   - Parameter classification: last-layer vs. non-last-layer partition by
//     identity, bias vs. non-bias sub-split by structural tag
//   - ParamGroup construction with per-group learning rates and update
//     policies
//   - SGD: momentum + weight-decay stochastic gradient descent with two
//     biologically-motivated per-group modifications: Batch Manhattan
//     (sign-only update magnitude) and No-Sign-Change (updates may decay a
//     weight to zero but never flip its sign)
//   - Step-decay learning-rate scheduling applied per group per epoch
//
// Example usage:
//
//	nonLast, last, err := optim.SplitLastLayer(model.Parameters(), model.FinalLayer().Parameters())
//	if err != nil { ... }
//	groups := optim.BuildGroups(nonLast, last,
//	    optim.GroupConfig{LR: 0.1, BatchManhattan: true, NoSignChange: true},
//	    optim.GroupConfig{LR: 0.1},
//	)
//	opt, err := optim.NewSGD(groups, optim.Config{Momentum: 0.9, WeightDecay: 1e-4, LRDecayEpochs: 10})
//
//	for epoch := 0; epoch < epochs; epoch++ {
//	    opt.SetEpoch(epoch)
//	    for batch := range batches {
//	        opt.ZeroGrad()
//	        grads := backward(model, batch)
//	        if err := opt.Step(grads); err != nil { ... }
//	    }
//	}
package optim
