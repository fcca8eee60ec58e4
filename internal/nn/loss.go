package nn

import (
	"fmt"
	"math"

	"github.com/synap-ml/synap/internal/tensor"
)

// CrossEntropyLoss computes cross-entropy loss for multi-class classification.
//
// Uses the LogSoftmax + NLL decomposition with the log-sum-exp trick for
// numerical stability. Expects raw logits.
//
// Gradient: dL/dlogits = (Softmax(logits) - onehot(target)) / batch_size.
type CrossEntropyLoss struct {
	probs   *tensor.Tensor // softmax of the last forward's logits
	targets []int
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return &CrossEntropyLoss{}
}

// Forward computes the mean cross-entropy over the batch.
//
// logits has shape [batch_size, num_classes]; targets holds class indices.
func (c *CrossEntropyLoss) Forward(logits *tensor.Tensor, targets []int) float64 {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic("CrossEntropyLoss: logits must be 2D [batch_size, num_classes]")
	}
	batchSize, numClasses := shape[0], shape[1]
	if len(targets) != batchSize {
		panic(fmt.Sprintf("CrossEntropyLoss: %d targets for batch of %d", len(targets), batchSize))
	}

	c.probs = tensor.New(shape)
	c.targets = targets
	data := logits.Data()
	probs := c.probs.Data()

	totalLoss := 0.0
	for b := 0; b < batchSize; b++ {
		row := data[b*numClasses : (b+1)*numClasses]
		prow := probs[b*numClasses : (b+1)*numClasses]

		maxLogit := row[0]
		for _, v := range row[1:] {
			if v > maxLogit {
				maxLogit = v
			}
		}
		sumExp := 0.0
		for i, v := range row {
			e := math.Exp(float64(v - maxLogit))
			prow[i] = float32(e)
			sumExp += e
		}
		for i := range prow {
			prow[i] /= float32(sumExp)
		}

		target := targets[b]
		if target < 0 || target >= numClasses {
			panic(fmt.Sprintf("CrossEntropyLoss: target %d out of range [0, %d)", target, numClasses))
		}
		// -log softmax[target], computed from the stabilized form
		totalLoss += math.Log(sumExp) - float64(row[target]-maxLogit)
	}

	return totalLoss / float64(batchSize)
}

// Backward returns the gradient of the mean loss with respect to the logits.
//
// Must be called after Forward.
func (c *CrossEntropyLoss) Backward() *tensor.Tensor {
	if c.probs == nil {
		panic("CrossEntropyLoss.Backward: called before Forward")
	}
	shape := c.probs.Shape()
	batchSize, numClasses := shape[0], shape[1]

	grad := c.probs.Clone()
	g := grad.Data()
	inv := 1 / float32(batchSize)
	for b, target := range c.targets {
		row := g[b*numClasses : (b+1)*numClasses]
		row[target] -= 1
		for i := range row {
			row[i] *= inv
		}
	}
	return grad
}
