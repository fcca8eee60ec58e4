package serialization

import (
	"time"
)

// Format constants.
const (
	MagicBytes      = "SYNP"
	FormatVersion   = 1
	HeaderAlignment = 64 // Tensor data starts on a 64-byte boundary
	ChecksumSize    = 32 // Trailing SHA-256

	// MaxHeaderSize bounds the JSON header; anything larger is corruption.
	MaxHeaderSize = 100 * 1024 * 1024
)

// Header is the JSON header of a .synap file.
type Header struct {
	FormatVersion int             `json:"format_version"`
	SynapVersion  string          `json:"synap_version"`
	CreatedAt     time.Time       `json:"created_at"`
	Tensors       []TensorMeta    `json:"tensors"`
	Checkpoint    *CheckpointMeta `json:"checkpoint,omitempty"`
}

// CheckpointMeta carries training state alongside the tensor payload.
type CheckpointMeta struct {
	Epoch           int            `json:"epoch"`      // Next epoch to run on resume
	Step            int64          `json:"step"`       // Global optimization step count
	BestPrec1       float64        `json:"best_prec1"` // Best validation precision@1 so far
	Loss            float64        `json:"loss"`       // Training loss at save time
	Arch            string         `json:"arch"`       // Architecture identifier
	RunID           string         `json:"run_id"`     // UUID of the training run
	OptimizerConfig map[string]any `json:"optimizer_config,omitempty"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`  // Always "float32" in the current format
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Bytes from the start of the data section
	Size   int64  `json:"size"`   // Bytes
}
