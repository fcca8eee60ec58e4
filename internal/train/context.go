package train

import (
	"time"

	"github.com/google/uuid"
)

// TrainingContext carries the mutable state of one training run.
//
// It replaces ambient globals: the orchestrator owns one instance for the
// duration of a run and threads it through explicitly.
type TrainingContext struct {
	RunID      string    // Unique identifier of this run
	StartEpoch int       // First epoch to run (nonzero after resume)
	Epoch      int       // Current epoch
	Step       int64     // Global optimization step count
	BestPrec1  float64   // Best validation precision@1 seen so far
	Loss       float64   // Most recent training-epoch mean loss
	StartedAt  time.Time // When the run began
}

// NewTrainingContext creates a context for a fresh run.
func NewTrainingContext() *TrainingContext {
	return &TrainingContext{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}
