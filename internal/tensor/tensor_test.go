package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synap-ml/synap/internal/tensor"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 1, tensor.Shape{}.NumElements())
	assert.Equal(t, 6, tensor.Shape{2, 3}.NumElements())
	assert.Equal(t, 24, tensor.Shape{2, 3, 4}.NumElements())
}

func TestShape_Equal(t *testing.T) {
	assert.True(t, tensor.Shape{2, 3}.Equal(tensor.Shape{2, 3}))
	assert.False(t, tensor.Shape{2, 3}.Equal(tensor.Shape{3, 2}))
	assert.False(t, tensor.Shape{2, 3}.Equal(tensor.Shape{2, 3, 1}))
}

func TestFromSlice(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, float32(5), x.At(4))

	_, err = tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, 3})
	require.Error(t, err)
}

func TestFromSlice_CopiesData(t *testing.T) {
	src := []float32{1, 2, 3}
	x, err := tensor.FromSlice(src, tensor.Shape{3})
	require.NoError(t, err)

	src[0] = 99
	assert.Equal(t, float32(1), x.At(0), "tensor must not alias the source slice")
}

func TestElementwiseOps(t *testing.T) {
	a, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	b, _ := tensor.FromSlice([]float32{4, 5, 6}, tensor.Shape{3})

	assert.Equal(t, []float32{5, 7, 9}, a.Add(b).Data())
	assert.Equal(t, []float32{-3, -3, -3}, a.Sub(b).Data())
	assert.Equal(t, []float32{4, 10, 18}, a.Mul(b).Data())
	assert.Equal(t, []float32{2, 4, 6}, a.Scale(2).Data())
}

func TestElementwiseOps_ShapeMismatchPanics(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{3})
	b := tensor.Zeros(tensor.Shape{4})
	assert.Panics(t, func() { a.Add(b) })
}

func TestMatMul(t *testing.T) {
	// [2, 3] @ [3, 2] = [2, 2]
	a, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b, _ := tensor.FromSlice([]float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	c := a.MatMul(b)
	assert.True(t, c.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float32{58, 64, 139, 154}, c.Data())
}

func TestTranspose(t *testing.T) {
	a, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	at := a.Transpose()
	assert.True(t, at.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, at.Data())
}

func TestReshape_SharesData(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{2, 3})
	v := a.Reshape(6)
	v.Set(0, 42)
	assert.Equal(t, float32(42), a.At(0))
}

func TestClone_Independent(t *testing.T) {
	a, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	c := a.Clone()
	c.Set(0, 9)
	assert.Equal(t, float32(1), a.At(0))
}
