package tensor

import "fmt"

// Reshape returns a tensor with the same data viewed under a new shape.
//
// The element count must match; a mismatch is a programming error and
// panics. The result shares no storage with t.
func (t *Tensor) Reshape(dims ...int) *Tensor {
	newShape := Shape(dims)
	if newShape.NumElements() != len(t.data) {
		panic(fmt.Sprintf("tensor: cannot reshape %v (%d elements) to %v (%d elements)",
			t.shape, len(t.data), newShape, newShape.NumElements()))
	}
	c := t.Clone()
	c.shape = newShape.Clone()
	c.stride = newShape.ComputeStrides()
	return c
}

// Transpose permutes the tensor's axes.
//
// perm must be a permutation of [0, rank). The data is materialized in
// the new row-major order.
func (t *Tensor) Transpose(perm ...int) *Tensor {
	rank := len(t.shape)
	if len(perm) != rank {
		panic(fmt.Sprintf("tensor: transpose perm %v does not match rank %d", perm, rank))
	}
	seen := make([]bool, rank)
	newShape := make(Shape, rank)
	for i, p := range perm {
		if p < 0 || p >= rank || seen[p] {
			panic(fmt.Sprintf("tensor: invalid transpose perm %v for rank %d", perm, rank))
		}
		seen[p] = true
		newShape[i] = t.shape[p]
	}

	out := Zeros(newShape, t.dtype)
	out.domain = t.domain
	srcIdx := make([]int, rank)
	dstIdx := make([]int, rank)
	for flat := 0; flat < len(t.data); flat++ {
		unravel(flat, t.shape, srcIdx)
		for i, p := range perm {
			dstIdx[i] = srcIdx[p]
		}
		out.data[out.offset(dstIdx...)] = t.data[flat]
	}
	return out
}

// Pad zero-pads the tensor with before[i] leading and after[i] trailing
// zeros along each axis. Both slices must have one entry per axis.
func (t *Tensor) Pad(before, after []int) *Tensor {
	rank := len(t.shape)
	if len(before) != rank || len(after) != rank {
		panic(fmt.Sprintf("tensor: pad spec (%v, %v) does not match rank %d", before, after, rank))
	}
	newShape := make(Shape, rank)
	for i := range newShape {
		newShape[i] = before[i] + t.shape[i] + after[i]
	}

	out := Zeros(newShape, t.dtype)
	out.domain = t.domain
	srcIdx := make([]int, rank)
	dstIdx := make([]int, rank)
	for flat := 0; flat < len(t.data); flat++ {
		unravel(flat, t.shape, srcIdx)
		for i := range srcIdx {
			dstIdx[i] = srcIdx[i] + before[i]
		}
		out.data[out.offset(dstIdx...)] = t.data[flat]
	}
	return out
}

// Add returns the element-wise sum of t and o with broadcasting.
func (t *Tensor) Add(o *Tensor) *Tensor {
	return t.broadcastOp(o, func(a, b complex64) complex64 { return a + b })
}

// Sub returns the element-wise difference of t and o with broadcasting.
func (t *Tensor) Sub(o *Tensor) *Tensor {
	return t.broadcastOp(o, func(a, b complex64) complex64 { return a - b })
}

// Mul returns the element-wise product of t and o with broadcasting.
func (t *Tensor) Mul(o *Tensor) *Tensor {
	return t.broadcastOp(o, func(a, b complex64) complex64 { return a * b })
}

// MulScalar returns t scaled element-wise by s.
func (t *Tensor) MulScalar(s complex64) *Tensor {
	c := t.Clone()
	if c.dtype == Float32 {
		s = complex(real(s), 0)
	}
	for i := range c.data {
		c.data[i] *= s
	}
	return c
}

// MatMul performs 2-D matrix multiplication: (m, k) @ (k, n) → (m, n).
//
// This is the naive reference implementation; performance is not a
// goal of this runtime.
func (t *Tensor) MatMul(o *Tensor) *Tensor {
	if len(t.shape) != 2 || len(o.shape) != 2 {
		panic(fmt.Sprintf("tensor: matmul requires 2-D operands, got %v and %v", t.shape, o.shape))
	}
	if t.shape[1] != o.shape[0] {
		panic(fmt.Sprintf("tensor: matmul inner dimensions do not match: %v @ %v", t.shape, o.shape))
	}
	m, k, n := t.shape[0], t.shape[1], o.shape[1]
	out := Zeros(Shape{m, n}, resultDType(t.dtype, o.dtype))
	out.domain = t.domain
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum complex64
			for p := 0; p < k; p++ {
				sum += t.data[i*k+p] * o.data[p*n+j]
			}
			out.data[i*n+j] = sum
		}
	}
	return out
}

// SumAxis sums the tensor along one axis, removing it from the shape.
func (t *Tensor) SumAxis(axis int) *Tensor {
	rank := len(t.shape)
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		panic(fmt.Sprintf("tensor: sum axis %d out of range for shape %v", axis, t.shape))
	}

	newShape := make(Shape, 0, rank-1)
	for i, d := range t.shape {
		if i != axis {
			newShape = append(newShape, d)
		}
	}
	out := Zeros(newShape, t.dtype)
	out.domain = t.domain

	srcIdx := make([]int, rank)
	dstIdx := make([]int, rank-1)
	for flat := 0; flat < len(t.data); flat++ {
		unravel(flat, t.shape, srcIdx)
		n := 0
		for i, ix := range srcIdx {
			if i != axis {
				dstIdx[n] = ix
				n++
			}
		}
		out.data[out.offset(dstIdx...)] += t.data[flat]
	}
	return out
}

// broadcastOp applies a binary op element-wise under NumPy broadcasting.
// The result kind is complex when either operand is complex; the
// receiver's domain tag is propagated.
func (t *Tensor) broadcastOp(o *Tensor, op func(a, b complex64) complex64) *Tensor {
	outShape, err := BroadcastShapes(t.shape, o.shape)
	if err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}
	out := Zeros(outShape, resultDType(t.dtype, o.dtype))
	out.domain = t.domain

	rank := len(outShape)
	aStride := broadcastStrides(t.shape, t.stride, rank)
	bStride := broadcastStrides(o.shape, o.stride, rank)

	idx := make([]int, rank)
	for flat := 0; flat < len(out.data); flat++ {
		unravel(flat, outShape, idx)
		aOff, bOff := 0, 0
		for i, ix := range idx {
			aOff += ix * aStride[i]
			bOff += ix * bStride[i]
		}
		out.data[flat] = op(t.data[aOff], o.data[bOff])
	}
	return out
}

// broadcastStrides right-aligns a tensor's strides to the given rank,
// zeroing strides of broadcast (size-1 or missing) dimensions.
func broadcastStrides(shape Shape, stride []int, rank int) []int {
	out := make([]int, rank)
	offset := rank - len(shape)
	for i := range shape {
		if shape[i] != 1 {
			out[offset+i] = stride[i]
		}
	}
	return out
}

// unravel converts a flat row-major offset into a multi-dimensional
// index, writing into idx.
func unravel(flat int, shape Shape, idx []int) {
	for i := len(shape) - 1; i >= 0; i-- {
		idx[i] = flat % shape[i]
		flat /= shape[i]
	}
}

// resultDType is the element kind produced by combining two operands.
func resultDType(a, b DType) DType {
	if a == Complex64 || b == Complex64 {
		return Complex64
	}
	return Float32
}
