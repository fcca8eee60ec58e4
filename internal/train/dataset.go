package train

import (
	"github.com/synap-ml/synap/internal/tensor"
)

// Batch is one mini-batch of inputs and their class labels.
type Batch struct {
	Input  *tensor.Tensor // [batch_size, features]
	Labels []int          // [batch_size]
}

// Dataset supplies batches by index. Implementations may load or augment
// lazily inside Batch; the trainer prefetches them on a separate goroutine.
type Dataset interface {
	// Len returns the number of batches per epoch.
	Len() int

	// Batch returns the i-th batch.
	Batch(i int) Batch
}

// InMemoryDataset is a Dataset over pre-built batches.
type InMemoryDataset struct {
	batches []Batch
}

// NewInMemoryDataset creates a dataset from pre-built batches.
func NewInMemoryDataset(batches []Batch) *InMemoryDataset {
	return &InMemoryDataset{batches: batches}
}

// Len returns the number of batches.
func (d *InMemoryDataset) Len() int {
	return len(d.batches)
}

// Batch returns the i-th batch.
func (d *InMemoryDataset) Batch(i int) Batch {
	return d.batches[i]
}

// prefetch streams batches through a small buffered channel so data supply
// overlaps compute. The channel hand-off is the step barrier: the consumer
// finishes its parameter update before pulling the next batch into the
// forward pass, so no forward ever reads half-updated parameters.
//
// Closing done releases the producer when the consumer abandons the epoch
// early; without it a failed step would leave the goroutine blocked on a
// full buffer for the life of the process.
func prefetch(ds Dataset, depth int, done <-chan struct{}) <-chan Batch {
	out := make(chan Batch, depth)
	go func() {
		defer close(out)
		for i := 0; i < ds.Len(); i++ {
			select {
			case out <- ds.Batch(i):
			case <-done:
				return
			}
		}
	}()
	return out
}
