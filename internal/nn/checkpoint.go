package nn

import (
	"fmt"
	"strings"
	"time"

	"github.com/synap-ml/synap/internal/serialization"
	"github.com/synap-ml/synap/internal/tensor"
)

// OptimizerState is an optimizer that can save and load its state.
//
// Used by checkpoints to serialize optimizer state without an import cycle;
// optimizers from the optim package implement it.
type OptimizerState interface {
	// StateDict returns the optimizer state for serialization.
	StateDict() map[string]*tensor.Tensor

	// LoadStateDict restores optimizer state. Must fail, without partial
	// effect, when the state does not align with the optimizer's group
	// structure.
	LoadStateDict(stateDict map[string]*tensor.Tensor) error

	// HyperParams returns hyperparameters and group structure for the
	// checkpoint header.
	HyperParams() map[string]any
}

// CheckpointError reports a failed checkpoint save or restore.
//
// Restore fails fast on any structural mismatch between the file and the
// freshly constructed model/optimizer: silently realigning momentum buffers
// would corrupt training.
type CheckpointError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *CheckpointError) Error() string {
	return fmt.Sprintf("checkpoint %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *CheckpointError) Unwrap() error {
	return e.Err
}

// Checkpoint is a complete training-state snapshot: model parameters,
// optimizer state (momentum buffers) and training metadata. Saving and
// restoring one, given the same gradient stream, reproduces bit-identical
// subsequent updates.
type Checkpoint struct {
	Model     StateDicter
	Optimizer OptimizerState
	Epoch     int // Next epoch to run on resume
	Step      int64
	BestPrec1 float64
	Loss      float64
	Arch      string
	RunID     string
}

// optimizerPrefix namespaces optimizer tensors next to model tensors in the
// combined state dictionary.
const optimizerPrefix = "optimizer."

// Save writes the checkpoint to a .synap file.
func (c *Checkpoint) Save(path string) error {
	combined := make(map[string]*tensor.Tensor)
	for name, t := range c.Model.StateDict() {
		combined[name] = t
	}
	for name, t := range c.Optimizer.StateDict() {
		combined[optimizerPrefix+name] = t
	}

	header := serialization.Header{
		CreatedAt: time.Now().UTC(),
		Checkpoint: &serialization.CheckpointMeta{
			Epoch:           c.Epoch,
			Step:            c.Step,
			BestPrec1:       c.BestPrec1,
			Loss:            c.Loss,
			Arch:            c.Arch,
			RunID:           c.RunID,
			OptimizerConfig: c.Optimizer.HyperParams(),
		},
	}

	if err := serialization.WriteFile(path, combined, header); err != nil {
		return &CheckpointError{Path: path, Err: err}
	}
	return nil
}

// LoadCheckpoint restores a checkpoint into a pre-constructed model and
// optimizer. Both must have the same structure (parameter shapes, group
// layout) as when the checkpoint was saved.
func LoadCheckpoint(path string, model StateDicter, optimizer OptimizerState) (*Checkpoint, error) {
	file, err := serialization.ReadFile(path)
	if err != nil {
		return nil, &CheckpointError{Path: path, Err: err}
	}

	meta := file.Header().Checkpoint
	if meta == nil {
		return nil, &CheckpointError{Path: path, Err: fmt.Errorf("file is not a checkpoint")}
	}

	combined, err := file.StateDict()
	if err != nil {
		return nil, &CheckpointError{Path: path, Err: err}
	}

	modelState := make(map[string]*tensor.Tensor)
	optimizerState := make(map[string]*tensor.Tensor)
	for name, t := range combined {
		if rest, ok := strings.CutPrefix(name, optimizerPrefix); ok {
			optimizerState[rest] = t
		} else {
			modelState[name] = t
		}
	}

	if err := model.LoadStateDict(modelState); err != nil {
		return nil, &CheckpointError{Path: path, Err: fmt.Errorf("model state: %w", err)}
	}
	if err := optimizer.LoadStateDict(optimizerState); err != nil {
		return nil, &CheckpointError{Path: path, Err: fmt.Errorf("optimizer state: %w", err)}
	}

	return &Checkpoint{
		Model:     model,
		Optimizer: optimizer,
		Epoch:     meta.Epoch,
		Step:      meta.Step,
		BestPrec1: meta.BestPrec1,
		Loss:      meta.Loss,
		Arch:      meta.Arch,
		RunID:     meta.RunID,
	}, nil
}
