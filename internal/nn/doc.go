// Package nn implements neural network modules for the Synap framework.
//
// This package provides the model-side surface the update engine trains
// against:
//   - Parameter: Trainable parameter with a structural weight/bias tag
//   - Module interface: Forward, explicit Backward, Parameters
//   - Linear, ReLU, Sequential: A minimal fully-connected model surface
//   - CrossEntropyLoss: Classification loss with gradient
//   - Checkpoint: Full training-state snapshots (model + optimizer)
//
// Models expose their final classification layer structurally through the
// Classifier interface rather than by parameter-name matching; the optim
// package partitions parameters by identity against that layer.
package nn
