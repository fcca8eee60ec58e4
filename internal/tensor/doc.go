// Package tensor implements dense float32 tensors for the Synap framework.
//
// This package provides:
//   - Shape: Tensor dimensions with stride computation
//   - Tensor: Row-major dense float32 tensor
//   - Creation helpers: Zeros, Ones, Full, FromSlice, Randn
//   - The small set of operations the nn package needs: elementwise
//     arithmetic, MatMul, Transpose
//
// Tensors are CPU-resident. The update engine and the test models operate
// directly on the backing []float32 slice via Data().
package tensor
