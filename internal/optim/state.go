package optim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/synap-ml/synap/internal/nn"
	"github.com/synap-ml/synap/internal/tensor"
)

// StateDict exports the optimizer's momentum buffers for serialization.
//
// Keys are positional: "group.{g}.velocity.{i}" for the i-th parameter of
// the g-th group. Positional keys are sound because group order and
// within-group parameter order are deterministic (BuildGroups); restore must
// reproduce the same structure.
//
// Buffers that have never been touched (parameter not yet stepped) are
// omitted; they re-initialize to zero on first use after restore.
func (s *SGD) StateDict() map[string]*tensor.Tensor {
	stateDict := make(map[string]*tensor.Tensor)
	if s.momentum == 0 {
		return stateDict
	}

	for gi, g := range s.groups {
		for pi, p := range g.Params {
			v, ok := s.velocities[p]
			if !ok {
				continue
			}
			stateDict[velocityKey(gi, pi)] = v
		}
	}
	return stateDict
}

// LoadStateDict restores momentum buffers from a state dictionary.
//
// The dictionary must align positionally with this optimizer's group
// structure. Any key that addresses a nonexistent group or parameter, or a
// buffer whose shape differs from its parameter, fails the whole load before
// any buffer is touched: misaligned momentum state would silently corrupt
// training, so restore is all-or-nothing.
func (s *SGD) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	if s.momentum == 0 {
		return nil
	}

	// Validate the full dictionary first.
	resolved := make(map[*nn.Parameter]*tensor.Tensor, len(stateDict))
	for key, v := range stateDict {
		gi, pi, err := parseVelocityKey(key)
		if err != nil {
			return err
		}
		if gi >= len(s.groups) {
			return fmt.Errorf("optim: state key %q addresses group %d of %d", key, gi, len(s.groups))
		}
		g := s.groups[gi]
		if pi >= len(g.Params) {
			return fmt.Errorf("optim: state key %q addresses parameter %d of %d in group %d",
				key, pi, len(g.Params), gi)
		}
		p := g.Params[pi]
		if !v.Shape().Equal(p.Tensor().Shape()) {
			return fmt.Errorf("optim: velocity shape mismatch for %q: expected %v, got %v",
				key, p.Tensor().Shape(), v.Shape())
		}
		resolved[p] = v
	}

	s.velocities = make(map[*nn.Parameter]*tensor.Tensor, len(resolved))
	for p, v := range resolved {
		s.velocities[p] = v.Clone()
	}
	return nil
}

func velocityKey(group, index int) string {
	return fmt.Sprintf("group.%d.velocity.%d", group, index)
}

func parseVelocityKey(key string) (group, index int, err error) {
	parts := strings.Split(key, ".")
	if len(parts) != 4 || parts[0] != "group" || parts[2] != "velocity" {
		return 0, 0, fmt.Errorf("optim: malformed state key %q", key)
	}
	group, err = strconv.Atoi(parts[1])
	if err != nil || group < 0 {
		return 0, 0, fmt.Errorf("optim: malformed group index in state key %q", key)
	}
	index, err = strconv.Atoi(parts[3])
	if err != nil || index < 0 {
		return 0, 0, fmt.Errorf("optim: malformed parameter index in state key %q", key)
	}
	return group, index, nil
}
