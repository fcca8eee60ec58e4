package optim

import (
	"fmt"

	"github.com/synap-ml/synap/internal/nn"
	"github.com/synap-ml/synap/internal/parallel"
	"github.com/synap-ml/synap/internal/tensor"
)

// Config holds the hyperparameters shared across all parameter groups.
type Config struct {
	Momentum      float32 // Momentum factor (range [0, 1))
	WeightDecay   float32 // L2 weight-decay coefficient
	LRDecayEpochs int     // Epochs per 10x learning-rate decay (default: 10)
}

// SGD applies momentum SGD with per-group update policies.
//
// For every parameter p with gradient g in a group with learning rate lr:
//
//	g = g + weight_decay * p
//	v = momentum * v + g
//	delta = lr * v            (plain)
//	delta = lr * sign(v)      (Batch Manhattan)
//	p = p - delta
//
// Groups with NoSignChange additionally clamp delta elementwise so p never
// crosses zero in one step: where p and p-delta would differ in sign, the
// element lands exactly at zero. Zero is treated as having no sign, so an
// element sitting at zero accepts a move in either direction.
//
// Momentum buffers are keyed by parameter identity, zero-initialized on
// first touch, and part of the serializable optimizer state.
type SGD struct {
	groups      []*ParamGroup
	momentum    float32
	weightDecay float32
	decayEpochs int
	velocities  map[*nn.Parameter]*tensor.Tensor
	par         parallel.Config
}

// NewSGD creates a new group-wise SGD optimizer.
//
// Returns an error when a parameter appears in more than one group; groups
// must form a partition of the trainable parameter set.
func NewSGD(groups []*ParamGroup, config Config) (*SGD, error) {
	if err := validatePartition(groups); err != nil {
		return nil, err
	}
	if config.LRDecayEpochs == 0 {
		config.LRDecayEpochs = 10
	}
	if config.LRDecayEpochs < 0 {
		return nil, fmt.Errorf("optim: LRDecayEpochs must be positive, got %d", config.LRDecayEpochs)
	}
	if config.Momentum < 0 || config.Momentum >= 1 {
		return nil, fmt.Errorf("optim: momentum must be in [0, 1), got %g", config.Momentum)
	}

	return &SGD{
		groups:      groups,
		momentum:    config.Momentum,
		weightDecay: config.WeightDecay,
		decayEpochs: config.LRDecayEpochs,
		velocities:  make(map[*nn.Parameter]*tensor.Tensor),
		par:         parallel.DefaultConfig(),
	}, nil
}

// Groups returns the ordered group list.
func (s *SGD) Groups() []*ParamGroup {
	return s.groups
}

// Momentum returns the shared momentum coefficient.
func (s *SGD) Momentum() float32 {
	return s.momentum
}

// WeightDecay returns the shared weight-decay coefficient.
func (s *SGD) WeightDecay() float32 {
	return s.weightDecay
}

// Step performs a single optimization step over all groups.
//
// grads maps each parameter to its freshly computed gradient. A missing
// gradient for any grouped parameter is an error: updates are never silently
// skipped. A gradient whose shape differs from its parameter is a programmer
// error and panics.
//
// All parameters are fully updated when Step returns; callers must not start
// the next forward pass before then.
func (s *SGD) Step(grads map[*nn.Parameter]*tensor.Tensor) error {
	for _, g := range s.groups {
		for _, p := range g.Params {
			grad, ok := grads[p]
			if !ok || grad == nil {
				return fmt.Errorf("optim: missing gradient for parameter %q", p.Name())
			}
			s.stepParam(g, p, grad)
		}
	}
	return nil
}

// StepGrads performs a step using the gradients accumulated on the
// parameters themselves (Parameter.Grad).
func (s *SGD) StepGrads() error {
	grads := make(map[*nn.Parameter]*tensor.Tensor)
	for _, g := range s.groups {
		for _, p := range g.Params {
			if grad := p.Grad(); grad != nil {
				grads[p] = grad
			}
		}
	}
	return s.Step(grads)
}

// stepParam mutates one parameter and its momentum buffer in place.
func (s *SGD) stepParam(g *ParamGroup, p *nn.Parameter, grad *tensor.Tensor) {
	pt := p.Tensor()
	if !grad.Shape().Equal(pt.Shape()) {
		panic(fmt.Sprintf("optim: gradient shape %v does not match parameter %q shape %v",
			grad.Shape(), p.Name(), pt.Shape()))
	}

	v, ok := s.velocities[p]
	if !ok {
		v = tensor.Zeros(pt.Shape())
		s.velocities[p] = v
	}

	pd := pt.Data()
	gd := grad.Data()
	vd := v.Data()
	lr := g.LR
	mu := s.momentum
	wd := s.weightDecay
	delta := g.delta
	nsc := g.NoSignChange

	// Elements are independent; fan out over disjoint ranges.
	parallel.ForRange(len(pd), func(start, end int) {
		for i := start; i < end; i++ {
			gi := gd[i]
			if wd != 0 {
				gi += wd * pd[i]
			}
			vd[i] = mu*vd[i] + gi
			d := delta(lr, vd[i])
			if nsc && pd[i] != 0 && pd[i]*(pd[i]-d) < 0 {
				// Crossing zero: land exactly at zero instead.
				d = pd[i]
			}
			pd[i] -= d
		}
	}, s.par)
}

// ZeroGrad clears gradients for all grouped parameters.
func (s *SGD) ZeroGrad() {
	for _, g := range s.groups {
		for _, p := range g.Params {
			p.ZeroGrad()
		}
	}
}

// SetEpoch rewrites every group's learning rate for the given 0-based epoch,
// decaying each base rate 10x every LRDecayEpochs epochs. Must be called
// before the epoch's first step.
func (s *SGD) SetEpoch(epoch int) {
	for _, g := range s.groups {
		g.LR = DecayedLR(g.BaseLR, epoch, s.decayEpochs)
	}
}

// LRs returns the current learning rate of every group in order.
func (s *SGD) LRs() []float32 {
	lrs := make([]float32, len(s.groups))
	for i, g := range s.groups {
		lrs[i] = g.LR
	}
	return lrs
}

// GetLR returns the first group's current learning rate.
func (s *SGD) GetLR() float32 {
	if len(s.groups) == 0 {
		return 0
	}
	return s.groups[0].LR
}

// HyperParams returns the optimizer's hyperparameters and group structure
// for checkpoint metadata.
func (s *SGD) HyperParams() map[string]any {
	groupSizes := make([]int, len(s.groups))
	baseLRs := make([]float32, len(s.groups))
	for i, g := range s.groups {
		groupSizes[i] = len(g.Params)
		baseLRs[i] = g.BaseLR
	}
	return map[string]any{
		"momentum":        s.momentum,
		"weight_decay":    s.weightDecay,
		"lr_decay_epochs": s.decayEpochs,
		"group_sizes":     groupSizes,
		"base_lrs":        baseLRs,
	}
}
