package parallel_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/synap-ml/synap/internal/parallel"
)

func TestFor_CoversAllIndices(t *testing.T) {
	const n = 10000
	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16}

	var count int64
	seen := make([]int32, n)
	parallel.For(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
		atomic.AddInt64(&count, 1)
	}, cfg)

	assert.Equal(t, int64(n), count)
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestFor_SequentialFallback(t *testing.T) {
	cfg := parallel.Config{Enabled: false}
	sum := 0
	parallel.For(5, func(i int) { sum += i }, cfg)
	assert.Equal(t, 10, sum)
}

func TestForRange_CoversAllIndices(t *testing.T) {
	const n = 10000
	cfg := parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 64}

	seen := make([]int32, n)
	parallel.ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	}, cfg)

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}
