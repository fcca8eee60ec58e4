package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synap-ml/synap/internal/tensor"
)

func tinyBatches(t *testing.T, n int) []Batch {
	t.Helper()
	batches := make([]Batch, n)
	for i := range batches {
		input, err := tensor.FromSlice([]float32{float32(i)}, tensor.Shape{1, 1})
		require.NoError(t, err)
		batches[i] = Batch{Input: input, Labels: []int{0}}
	}
	return batches
}

func TestPrefetch_DeliversAllBatchesInOrder(t *testing.T) {
	ds := NewInMemoryDataset(tinyBatches(t, 5))
	done := make(chan struct{})
	defer close(done)

	var got []float32
	for b := range prefetch(ds, 2, done) {
		got = append(got, b.Input.At(0))
	}
	assert.Equal(t, []float32{0, 1, 2, 3, 4}, got)
}

func TestPrefetch_ReleasesProducerWhenAbandoned(t *testing.T) {
	ds := NewInMemoryDataset(tinyBatches(t, 100))
	done := make(chan struct{})

	ch := prefetch(ds, 1, done)
	<-ch
	close(done)

	// The producer must exit and close the channel; if it stayed blocked on
	// the full buffer this drain would never terminate and the test would
	// time out.
	delivered := 1
	for range ch {
		delivered++
	}
	assert.Less(t, delivered, ds.Len())
}
