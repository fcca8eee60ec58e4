package train_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synap-ml/synap/internal/tensor"
	"github.com/synap-ml/synap/internal/train"
)

func TestAverageMeter(t *testing.T) {
	var m train.AverageMeter

	m.Update(2.0, 1)
	assert.Equal(t, 2.0, m.Val)
	assert.Equal(t, 2.0, m.Avg)

	// Weighted by sample count: (2*1 + 4*3) / 4 = 3.5.
	m.Update(4.0, 3)
	assert.Equal(t, 4.0, m.Val)
	assert.InDelta(t, 3.5, m.Avg, 1e-12)
	assert.Equal(t, 4, m.Count)

	m.Reset()
	assert.Equal(t, 0, m.Count)
	assert.Equal(t, 0.0, m.Avg)
}

func TestAccuracy(t *testing.T) {
	// Batch of 4 over 3 classes. Argmax rows: 0, 2, 1, 1.
	logits, err := tensor.FromSlice([]float32{
		5, 1, 0,
		0, 1, 5,
		1, 5, 0,
		0, 5, 1,
	}, tensor.Shape{4, 3})
	require.NoError(t, err)
	targets := []int{0, 2, 0, 1}

	accs := train.Accuracy(logits, targets, 1, 2)
	assert.InDelta(t, 75.0, accs[0], 1e-9) // rows 0, 1, 3 correct at top-1
	assert.InDelta(t, 100.0, accs[1], 1e-9)
}

func TestAccuracy_ClampsKToNumClasses(t *testing.T) {
	logits, err := tensor.FromSlice([]float32{1, 0, 0, 1}, tensor.Shape{2, 2})
	require.NoError(t, err)

	accs := train.Accuracy(logits, []int{0, 1}, 5)
	assert.InDelta(t, 100.0, accs[0], 1e-9)
}
