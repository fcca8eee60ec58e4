// Package train implements the training orchestrator for the Synap
// framework.
//
// The orchestrator owns the epoch loop: it applies the learning-rate
// schedule at the start of every epoch, drives forward/backward through the
// model, invokes the update engine once per batch, tracks running metrics,
// validates, and checkpoints. The parameter update of a step always
// completes before the next forward pass reads the parameters; batches are
// prefetched concurrently but hand-off through a channel is the barrier.
package train
