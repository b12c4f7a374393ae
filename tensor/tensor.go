package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a dense, row-major array of complex64 values.
//
// The dtype tag distinguishes semantically complex tensors from real
// ones: a Float32 tensor keeps every imaginary lane at zero and
// operations on it produce Float32 results. Storage is a plain Go
// slice, so element writes are ordinary indexed stores.
type Tensor struct {
	shape  Shape
	stride []int
	dtype  DType
	domain Domain
	data   []complex64
}

// New creates a zero-initialized tensor with the given shape and kind.
func New(shape Shape, dtype DType) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("invalid dtype: %v", dtype)
	}
	return &Tensor{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		data:   make([]complex64, shape.NumElements()),
	}, nil
}

// Zeros creates a zero-filled tensor.
//
// Panics on an invalid shape or dtype; use New when the shape comes
// from untrusted input.
func Zeros(shape Shape, dtype DType) *Tensor {
	t, err := New(shape, dtype)
	if err != nil {
		panic(err)
	}
	return t
}

// Ones creates a tensor filled with ones (1+0i for complex tensors).
func Ones(shape Shape, dtype DType) *Tensor {
	return Full(shape, 1, dtype)
}

// Full creates a tensor filled with a specific value.
//
// For Float32 tensors the imaginary part of value is discarded.
func Full(shape Shape, value complex64, dtype DType) *Tensor {
	t := Zeros(shape, dtype)
	if dtype == Float32 {
		value = complex(real(value), 0)
	}
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// FromComplex creates a Complex64 tensor from a flat row-major slice.
// The slice is copied.
func FromComplex(shape Shape, data []complex64) (*Tensor, error) {
	t, err := New(shape, Complex64)
	if err != nil {
		return nil, err
	}
	if len(data) != len(t.data) {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	copy(t.data, data)
	return t, nil
}

// FromFloat creates a Float32 tensor from a flat row-major slice.
// The slice is copied.
func FromFloat(shape Shape, data []float32) (*Tensor, error) {
	t, err := New(shape, Float32)
	if err != nil {
		return nil, err
	}
	if len(data) != len(t.data) {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	for i, v := range data {
		t.data[i] = complex(v, 0)
	}
	return t, nil
}

// Shape returns the tensor's shape. The returned slice must not be
// mutated.
func (t *Tensor) Shape() Shape { return t.shape }

// DType returns the tensor's element kind.
func (t *Tensor) DType() DType { return t.dtype }

// Domain returns the tensor's representation domain.
func (t *Tensor) Domain() Domain { return t.domain }

// SetDomain tags the tensor with a representation domain and returns
// the tensor for chaining.
func (t *Tensor) SetDomain(d Domain) *Tensor {
	t.domain = d
	return t
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int { return len(t.data) }

// Data returns the underlying storage slice. Mutating it mutates the
// tensor.
func (t *Tensor) Data() []complex64 { return t.data }

// offset converts a multi-dimensional index into a flat data offset.
func (t *Tensor) offset(idx ...int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: index rank %d does not match shape %v", len(idx), t.shape))
	}
	off := 0
	for i, ix := range idx {
		if ix < 0 || ix >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %v out of range for shape %v", idx, t.shape))
		}
		off += ix * t.stride[i]
	}
	return off
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor) At(idx ...int) complex64 {
	return t.data[t.offset(idx...)]
}

// Set stores v at the given multi-dimensional index.
func (t *Tensor) Set(v complex64, idx ...int) {
	if t.dtype == Float32 {
		v = complex(real(v), 0)
	}
	t.data[t.offset(idx...)] = v
}

// Clone returns a deep copy that shares no storage with t.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{
		shape:  t.shape.Clone(),
		stride: t.shape.ComputeStrides(),
		dtype:  t.dtype,
		domain: t.domain,
		data:   make([]complex64, len(t.data)),
	}
	copy(c.data, t.data)
	return c
}

// Cast returns a copy of t with the requested element kind.
//
// Casting a complex tensor to Float32 keeps only the real lane;
// casting a real tensor to Complex64 is a retag.
func (t *Tensor) Cast(dtype DType) *Tensor {
	c := t.Clone()
	if dtype == c.dtype {
		return c
	}
	c.dtype = dtype
	if dtype == Float32 {
		for i, v := range c.data {
			c.data[i] = complex(real(v), 0)
		}
	}
	return c
}

// Real returns a Float32 tensor holding the real lane of t.
func (t *Tensor) Real() *Tensor {
	c := t.Clone()
	c.dtype = Float32
	for i, v := range c.data {
		c.data[i] = complex(real(v), 0)
	}
	return c
}

// Imag returns a Float32 tensor holding the imaginary lane of t.
func (t *Tensor) Imag() *Tensor {
	c := t.Clone()
	c.dtype = Float32
	for i, v := range c.data {
		c.data[i] = complex(imag(v), 0)
	}
	return c
}

// Equal reports whether two tensors have the same shape, kind and
// element values. The domain tag is not compared.
func (t *Tensor) Equal(o *Tensor) bool {
	if t.dtype != o.dtype || !t.shape.Equal(o.shape) {
		return false
	}
	for i := range t.data {
		if t.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// String renders a short description such as "Tensor(complex64, (2, 3))".
func (t *Tensor) String() string {
	dims := make([]string, len(t.shape))
	for i, d := range t.shape {
		dims[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("Tensor(%v, (%s))", t.dtype, strings.Join(dims, ", "))
}
