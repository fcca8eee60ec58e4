// Copyright 2026 Synap ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the public API for the Synap training
// orchestrator: the epoch loop, metrics, datasets, and checkpoint cadence.
//
// Example:
//
//	cfg := config.Default()
//	tr := train.NewTrainer(model, opt, cfg)
//	if err := tr.Run(trainDS, valDS); err != nil {
//	    log.Fatal(err)
//	}
package train

import (
	"github.com/synap-ml/synap/internal/config"
	"github.com/synap-ml/synap/internal/optim"
	"github.com/synap-ml/synap/internal/tensor"
	"github.com/synap-ml/synap/internal/train"
)

// Model is what the trainer needs from a network.
type Model = train.Model

// Trainer drives epochs over a model and a group-wise SGD optimizer.
type Trainer = train.Trainer

// TrainingContext carries the mutable state of one training run.
type TrainingContext = train.TrainingContext

// Batch is one mini-batch of inputs and their class labels.
type Batch = train.Batch

// Dataset supplies batches by index.
type Dataset = train.Dataset

// InMemoryDataset is a Dataset over pre-built batches.
type InMemoryDataset = train.InMemoryDataset

// AverageMeter computes and stores the current and running-average value of
// a metric.
type AverageMeter = train.AverageMeter

// NewTrainer creates a trainer with a fresh TrainingContext.
func NewTrainer(model Model, opt *optim.SGD, cfg *config.Config) *Trainer {
	return train.NewTrainer(model, opt, cfg)
}

// NewInMemoryDataset creates a dataset from pre-built batches.
func NewInMemoryDataset(batches []Batch) *InMemoryDataset {
	return train.NewInMemoryDataset(batches)
}

// Accuracy computes precision@k percentages for the given values of k.
func Accuracy(logits *tensor.Tensor, targets []int, topk ...int) []float64 {
	return train.Accuracy(logits, targets, topk...)
}
