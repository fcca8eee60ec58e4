package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synap-ml/synap/internal/nn"
	"github.com/synap-ml/synap/internal/optim"
	"github.com/synap-ml/synap/internal/tensor"
)

// twoTierFixture builds a deterministic two-tier optimizer over fresh
// parameters and returns the optimizer with its parameters in group order.
func twoTierFixture(t *testing.T) (*optim.SGD, []*nn.Parameter) {
	t.Helper()
	w1 := newParam(t, "w1", nn.KindWeight, 0.5, -0.5)
	b1 := newParam(t, "b1", nn.KindBias, 0.1)
	fc := newParam(t, "fc", nn.KindWeight, 0.3, 0.3)

	groups := optim.BuildGroups(
		[]*nn.Parameter{w1, b1}, []*nn.Parameter{fc},
		optim.GroupConfig{LR: 0.1, BatchManhattan: true, NoSignChange: true},
		optim.GroupConfig{LR: 0.05},
	)
	s, err := optim.NewSGD(groups, optim.Config{Momentum: 0.9, WeightDecay: 1e-4})
	require.NoError(t, err)

	var params []*nn.Parameter
	for _, g := range s.Groups() {
		params = append(params, g.Params...)
	}
	return s, params
}

func stepAll(t *testing.T, s *optim.SGD, params []*nn.Parameter, seed float32) {
	t.Helper()
	grads := make(map[*nn.Parameter]*tensor.Tensor)
	for i, p := range params {
		g := tensor.Full(p.Tensor().Shape(), seed+float32(i))
		grads[p] = g
	}
	require.NoError(t, s.Step(grads))
}

func TestStateDict_PositionalKeys(t *testing.T) {
	s, params := twoTierFixture(t)
	stepAll(t, s, params, 1.0)

	sd := s.StateDict()
	assert.Contains(t, sd, "group.0.velocity.0")
	assert.Contains(t, sd, "group.2.velocity.0")
	assert.Len(t, sd, len(params))
}

func TestStateDict_EmptyWithoutMomentum(t *testing.T) {
	p := newParam(t, "w", nn.KindWeight, 1.0)
	s := singleGroup(t, optim.GroupConfig{LR: 0.1}, optim.Config{}, p)
	require.NoError(t, s.Step(map[*nn.Parameter]*tensor.Tensor{p: grad(t, 1.0)}))

	assert.Empty(t, s.StateDict())
}

func TestLoadStateDict_RoundTripContinuesBitIdentical(t *testing.T) {
	// Reference: step twice without interruption.
	ref, refParams := twoTierFixture(t)
	stepAll(t, ref, refParams, 1.0)
	stepAll(t, ref, refParams, 2.0)

	// Candidate: step once, serialize, restore into a fresh optimizer over
	// identically initialized parameters, step again.
	src, srcParams := twoTierFixture(t)
	stepAll(t, src, srcParams, 1.0)
	sd := src.StateDict()

	dst, dstParams := twoTierFixture(t)
	for i, p := range dstParams {
		p.Tensor().CopyFrom(srcParams[i].Tensor())
	}
	require.NoError(t, dst.LoadStateDict(sd))
	stepAll(t, dst, dstParams, 2.0)

	for i := range refParams {
		assert.Equal(t, refParams[i].Tensor().Data(), dstParams[i].Tensor().Data(),
			"parameter %d diverged after restore", i)
	}
}

func TestLoadStateDict_ClonesBuffers(t *testing.T) {
	s, params := twoTierFixture(t)
	stepAll(t, s, params, 1.0)
	sd := s.StateDict()

	dst, _ := twoTierFixture(t)
	require.NoError(t, dst.LoadStateDict(sd))

	// Mutating the source dictionary must not leak into the optimizer.
	for _, v := range sd {
		v.Zero()
	}
	restored := dst.StateDict()
	nonZero := false
	for _, v := range restored {
		for _, x := range v.Data() {
			if x != 0 {
				nonZero = true
			}
		}
	}
	assert.True(t, nonZero, "restored buffers must be independent copies")
}

func TestLoadStateDict_RejectsMisalignedStructure(t *testing.T) {
	s, params := twoTierFixture(t)
	stepAll(t, s, params, 1.0)

	cases := map[string]map[string]*tensor.Tensor{
		"group out of range": {
			"group.9.velocity.0": tensor.Zeros(tensor.Shape{1}),
		},
		"parameter out of range": {
			"group.0.velocity.9": tensor.Zeros(tensor.Shape{1}),
		},
		"shape mismatch": {
			"group.0.velocity.0": tensor.Zeros(tensor.Shape{17}),
		},
		"malformed key": {
			"velocity.0": tensor.Zeros(tensor.Shape{1}),
		},
	}
	for name, sd := range cases {
		assert.Error(t, s.LoadStateDict(sd), name)
	}
}

func TestLoadStateDict_FailsBeforeMutating(t *testing.T) {
	s, params := twoTierFixture(t)
	stepAll(t, s, params, 1.0)
	good := s.StateDict()

	// A dictionary with one bad entry must leave existing buffers intact.
	bad := make(map[string]*tensor.Tensor, len(good)+1)
	for k, v := range good {
		bad[k] = v
	}
	bad["group.9.velocity.0"] = tensor.Zeros(tensor.Shape{1})

	require.Error(t, s.LoadStateDict(bad))

	after := s.StateDict()
	require.Len(t, after, len(good))
	for k, v := range good {
		assert.Equal(t, v.Data(), after[k].Data(), "buffer %s changed on failed load", k)
	}
}
