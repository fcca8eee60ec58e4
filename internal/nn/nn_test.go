package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synap-ml/synap/internal/nn"
	"github.com/synap-ml/synap/internal/tensor"
)

func TestParameter_Kinds(t *testing.T) {
	w := nn.NewParameter("weight", nn.KindWeight, tensor.Zeros(tensor.Shape{2}))
	b := nn.NewParameter("bias", nn.KindBias, tensor.Zeros(tensor.Shape{2}))

	assert.False(t, w.IsBias())
	assert.True(t, b.IsBias())
}

func TestKindFromName(t *testing.T) {
	assert.Equal(t, nn.KindBias, nn.KindFromName("bias"))
	assert.Equal(t, nn.KindBias, nn.KindFromName("fc.bias"))
	assert.Equal(t, nn.KindWeight, nn.KindFromName("fc.weight"))
	assert.Equal(t, nn.KindWeight, nn.KindFromName("bias_correction")) // suffix only
}

func TestParameter_AccumGrad(t *testing.T) {
	p := nn.NewParameter("w", nn.KindWeight, tensor.Zeros(tensor.Shape{2}))
	g1, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	g2, _ := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2})

	p.AccumGrad(g1)
	p.AccumGrad(g2)
	assert.Equal(t, []float32{4, 6}, p.Grad().Data())

	// First accumulation must not alias the incoming gradient.
	g1.Set(0, 99)
	assert.Equal(t, float32(4), p.Grad().At(0))

	p.ZeroGrad()
	assert.Nil(t, p.Grad())
}

func TestLinear_Forward(t *testing.T) {
	layer := nn.NewLinear(2, 3)
	w, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
	require.NoError(t, err)
	layer.Weight().Tensor().CopyFrom(w)
	b, err := tensor.FromSlice([]float32{0.5, -0.5, 1}, tensor.Shape{3})
	require.NoError(t, err)
	layer.Bias().Tensor().CopyFrom(b)

	input, err := tensor.FromSlice([]float32{1, 1}, tensor.Shape{1, 2})
	require.NoError(t, err)
	out := layer.Forward(input)

	// y = x @ W.T + b = [3, 7, 11] + [0.5, -0.5, 1]
	assert.Equal(t, []float32{3.5, 6.5, 12}, out.Data())
}

func TestLinear_ForwardSingleSample(t *testing.T) {
	layer := nn.NewLinear(2, 3)

	batched, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 2})
	require.NoError(t, err)
	flat, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	require.NoError(t, err)

	// A 1D input is promoted to a single-sample batch.
	out := layer.Forward(flat)
	assert.Equal(t, tensor.Shape{1, 3}, out.Shape())
	assert.Equal(t, layer.Forward(batched).Data(), out.Data())
}

func TestLinear_BackwardGradients(t *testing.T) {
	layer := nn.NewLinear(2, 2)
	w, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	layer.Weight().Tensor().CopyFrom(w)
	layer.Bias().Tensor().Zero()

	input, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	layer.Forward(input)

	gradOut, _ := tensor.FromSlice([]float32{1, 0, 0, 1}, tensor.Shape{2, 2})
	gradIn := layer.Backward(gradOut)

	// dW = gradOut.T @ input = [[1,2],[3,4]]
	assert.Equal(t, []float32{1, 2, 3, 4}, layer.Weight().Grad().Data())
	// db = column sums of gradOut = [1, 1]
	assert.Equal(t, []float32{1, 1}, layer.Bias().Grad().Data())
	// dx = gradOut @ W = [[1,2],[3,4]]
	assert.Equal(t, []float32{1, 2, 3, 4}, gradIn.Data())
}

func TestLinear_BackwardMatchesFiniteDifference(t *testing.T) {
	layer := nn.NewLinear(3, 2)
	input, _ := tensor.FromSlice([]float32{0.5, -1, 2}, tensor.Shape{1, 3})
	targets := []int{1}
	loss := nn.NewCrossEntropyLoss()

	forward := func() float64 {
		return loss.Forward(layer.Forward(input), targets)
	}

	base := forward()
	_ = base
	grad := loss.Backward()
	layer.Backward(grad)
	analytic := layer.Weight().Grad().Clone()

	const eps = 1e-3
	wd := layer.Weight().Tensor().Data()
	for _, i := range []int{0, 2, 5} {
		orig := wd[i]
		wd[i] = orig + eps
		up := forward()
		wd[i] = orig - eps
		down := forward()
		wd[i] = orig

		numeric := (up - down) / (2 * eps)
		assert.InDelta(t, numeric, float64(analytic.At(i)), 1e-2, "dW[%d]", i)
	}
}

func TestReLU(t *testing.T) {
	relu := nn.NewReLU()
	input, _ := tensor.FromSlice([]float32{-1, 0, 2}, tensor.Shape{3})
	out := relu.Forward(input)
	assert.Equal(t, []float32{0, 0, 2}, out.Data())

	gradOut, _ := tensor.FromSlice([]float32{5, 5, 5}, tensor.Shape{3})
	gradIn := relu.Backward(gradOut)
	assert.Equal(t, []float32{0, 0, 5}, gradIn.Data())

	assert.Empty(t, relu.Parameters())
}

func TestSequential_ForwardBackwardAndFinalLayer(t *testing.T) {
	fc1 := nn.NewLinear(4, 3)
	fc2 := nn.NewLinear(3, 2)
	model := nn.NewSequential(fc1, nn.NewReLU(), fc2)

	assert.Len(t, model.Parameters(), 4)
	assert.Same(t, fc2, model.FinalLayer())

	input := tensor.Randn(tensor.Shape{2, 4})
	out := model.Forward(input)
	require.True(t, out.Shape().Equal(tensor.Shape{2, 2}))

	gradIn := model.Backward(tensor.Ones(tensor.Shape{2, 2}))
	assert.True(t, gradIn.Shape().Equal(tensor.Shape{2, 4}))
	for _, p := range model.Parameters() {
		assert.NotNil(t, p.Grad(), "parameter %q received no gradient", p.Name())
	}
}

func TestSequential_StateDictRoundTrip(t *testing.T) {
	src := nn.NewSequential(nn.NewLinear(3, 2), nn.NewReLU(), nn.NewLinear(2, 2))
	dst := nn.NewSequential(nn.NewLinear(3, 2), nn.NewReLU(), nn.NewLinear(2, 2))

	require.NoError(t, dst.LoadStateDict(src.StateDict()))
	for i, p := range src.Parameters() {
		assert.Equal(t, p.Tensor().Data(), dst.Parameters()[i].Tensor().Data())
	}
}

func TestSequential_LoadStateDictRejectsUnknownKeys(t *testing.T) {
	model := nn.NewSequential(nn.NewLinear(2, 2))
	err := model.LoadStateDict(map[string]*tensor.Tensor{
		"7.weight": tensor.Zeros(tensor.Shape{2, 2}),
	})
	assert.Error(t, err)
}

func TestCrossEntropyLoss_UniformLogits(t *testing.T) {
	loss := nn.NewCrossEntropyLoss()
	logits := tensor.Zeros(tensor.Shape{2, 4})

	got := loss.Forward(logits, []int{0, 3})
	assert.InDelta(t, math.Log(4), got, 1e-6)
}

func TestCrossEntropyLoss_GradientSumsToZero(t *testing.T) {
	loss := nn.NewCrossEntropyLoss()
	logits, _ := tensor.FromSlice([]float32{2, -1, 0.5, 1, 1, 1}, tensor.Shape{2, 3})
	loss.Forward(logits, []int{0, 2})

	grad := loss.Backward()
	require.True(t, grad.Shape().Equal(tensor.Shape{2, 3}))

	// Softmax minus one-hot sums to zero per row.
	g := grad.Data()
	for r := 0; r < 2; r++ {
		sum := float64(0)
		for c := 0; c < 3; c++ {
			sum += float64(g[r*3+c])
		}
		assert.InDelta(t, 0, sum, 1e-6)
	}
}

func TestCrossEntropyLoss_LargeLogitsStable(t *testing.T) {
	loss := nn.NewCrossEntropyLoss()
	logits, _ := tensor.FromSlice([]float32{1000, 999, 998}, tensor.Shape{1, 3})

	got := loss.Forward(logits, []int{0})
	assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
	assert.Less(t, got, 1.0)
}

func TestXavier_WithinBound(t *testing.T) {
	w := nn.Xavier(100, 50, tensor.Shape{50, 100})
	bound := float32(math.Sqrt(6.0 / 150.0))
	for _, v := range w.Data() {
		assert.LessOrEqual(t, v, bound)
		assert.GreaterOrEqual(t, v, -bound)
	}
}
