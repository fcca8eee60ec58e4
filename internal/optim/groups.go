package optim

import (
	"errors"
	"fmt"

	"github.com/synap-ml/synap/internal/nn"
)

// ErrEmptyLastLayer is returned when the designated last layer exposes no
// trainable parameters.
var ErrEmptyLastLayer = errors.New("optim: last layer exposes no parameters")

// GroupConfig describes the update policy for one tier of parameters
// (non-last layers or the last layer).
type GroupConfig struct {
	LR             float32 // Base learning rate for the tier
	BatchManhattan bool    // Use sign-only update magnitudes
	NoSignChange   bool    // Forbid non-bias weights from flipping sign in one step
}

// ParamGroup is an ordered, duplicate-free collection of parameters sharing
// one learning rate and one pair of update-policy flags.
//
// LR is rewritten every epoch by the schedule; the flags are fixed at
// construction, at which point the magnitude policy is resolved into the
// group's step function (no per-element policy branching during updates).
type ParamGroup struct {
	Params         []*nn.Parameter
	LR             float32
	BaseLR         float32
	BatchManhattan bool
	NoSignChange   bool

	delta func(lr, v float32) float32
}

// NewParamGroup creates a group over params with the given config, resolving
// the update-magnitude policy.
func NewParamGroup(params []*nn.Parameter, cfg GroupConfig) *ParamGroup {
	g := &ParamGroup{
		Params:         params,
		LR:             cfg.LR,
		BaseLR:         cfg.LR,
		BatchManhattan: cfg.BatchManhattan,
		NoSignChange:   cfg.NoSignChange,
	}
	if cfg.BatchManhattan {
		g.delta = manhattanDelta
	} else {
		g.delta = plainDelta
	}
	return g
}

// plainDelta is standard momentum SGD: step by lr * velocity.
func plainDelta(lr, v float32) float32 {
	return lr * v
}

// manhattanDelta discards the velocity magnitude: step by lr in the
// direction of the velocity, with sign(0) = 0.
func manhattanDelta(lr, v float32) float32 {
	switch {
	case v > 0:
		return lr
	case v < 0:
		return -lr
	default:
		return 0
	}
}

// SplitLastLayer partitions params into the non-last and last tiers by
// parameter identity against lastParams (the parameters of the model's final
// classification layer).
//
// Every element of lastParams must appear in params; every element of params
// lands in exactly one of the returned slices. Order within each slice
// follows the order of params. Returns ErrEmptyLastLayer when lastParams is
// empty.
func SplitLastLayer(params, lastParams []*nn.Parameter) (nonLast, last []*nn.Parameter, err error) {
	if len(lastParams) == 0 {
		return nil, nil, ErrEmptyLastLayer
	}

	lastSet := make(map[*nn.Parameter]bool, len(lastParams))
	for _, p := range lastParams {
		lastSet[p] = true
	}

	for _, p := range params {
		if lastSet[p] {
			last = append(last, p)
			delete(lastSet, p)
		} else {
			nonLast = append(nonLast, p)
		}
	}

	if len(lastSet) > 0 {
		return nil, nil, fmt.Errorf("optim: %d last-layer parameters are not among the model's parameters", len(lastSet))
	}
	return nonLast, last, nil
}

// SplitBias routes bias-tagged parameters to the first returned slice and
// everything else to the second, preserving order.
func SplitBias(params []*nn.Parameter) (bias, nonBias []*nn.Parameter) {
	for _, p := range params {
		if p.IsBias() {
			bias = append(bias, p)
		} else {
			nonBias = append(nonBias, p)
		}
	}
	return bias, nonBias
}

// BuildGroups builds the ordered group list for the two tiers.
//
// Per tier: one group when NoSignChange is off. When NoSignChange is on, the
// tier is split into a bias group (exempt from the constraint, since
// sign-constraining a scalar offset has no architectural meaning) followed by
// the constrained non-bias group; both inherit the tier's learning rate and
// Batch-Manhattan flag.
//
// Non-last groups always precede last groups, and the bias-exempt group
// precedes the constrained one. The order is the positional contract the
// schedule and checkpoint restore depend on.
func BuildGroups(nonLast, last []*nn.Parameter, nonLastCfg, lastCfg GroupConfig) []*ParamGroup {
	var groups []*ParamGroup
	for _, tier := range []struct {
		params []*nn.Parameter
		cfg    GroupConfig
	}{
		{nonLast, nonLastCfg},
		{last, lastCfg},
	} {
		if !tier.cfg.NoSignChange {
			groups = append(groups, NewParamGroup(tier.params, tier.cfg))
			continue
		}
		bias, nonBias := SplitBias(tier.params)

		exemptCfg := tier.cfg
		exemptCfg.NoSignChange = false
		groups = append(groups, NewParamGroup(bias, exemptCfg))
		groups = append(groups, NewParamGroup(nonBias, tier.cfg))
	}
	return groups
}

// validatePartition verifies that no parameter appears in more than one
// group. Omission cannot be checked here (the full set is not known to the
// optimizer); BuildGroups guarantees it by construction.
func validatePartition(groups []*ParamGroup) error {
	seen := make(map[*nn.Parameter]bool)
	for gi, g := range groups {
		for pi, p := range g.Params {
			if p == nil {
				return fmt.Errorf("optim: nil parameter at group %d index %d", gi, pi)
			}
			if seen[p] {
				return fmt.Errorf("optim: parameter %q appears in more than one group", p.Name())
			}
			seen[p] = true
		}
	}
	return nil
}
