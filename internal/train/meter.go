package train

import (
	"sort"

	"github.com/synap-ml/synap/internal/tensor"
)

// AverageMeter computes and stores the current and running-average value of
// a metric over an epoch.
type AverageMeter struct {
	Val   float64
	Sum   float64
	Count int
	Avg   float64
}

// Reset clears the meter.
func (m *AverageMeter) Reset() {
	*m = AverageMeter{}
}

// Update records val observed over n samples.
func (m *AverageMeter) Update(val float64, n int) {
	m.Val = val
	m.Sum += val * float64(n)
	m.Count += n
	m.Avg = m.Sum / float64(m.Count)
}

// Accuracy computes precision@k percentages for the given values of k.
//
// logits has shape [batch_size, num_classes]; targets holds class indices.
// Each k is clamped to the number of classes.
func Accuracy(logits *tensor.Tensor, targets []int, topk ...int) []float64 {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic("train.Accuracy: logits must be 2D [batch_size, num_classes]")
	}
	batchSize, numClasses := shape[0], shape[1]
	data := logits.Data()

	results := make([]float64, len(topk))
	for ki, k := range topk {
		if k > numClasses {
			k = numClasses
		}
		correct := 0
		for b := 0; b < batchSize; b++ {
			row := data[b*numClasses : (b+1)*numClasses]
			if inTopK(row, targets[b], k) {
				correct++
			}
		}
		results[ki] = 100 * float64(correct) / float64(batchSize)
	}
	return results
}

// inTopK reports whether target is among the k highest-scoring classes.
func inTopK(row []float32, target, k int) bool {
	idx := make([]int, len(row))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return row[idx[a]] > row[idx[b]] })
	for _, i := range idx[:k] {
		if i == target {
			return true
		}
	}
	return false
}
