package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saugatkandel/cvnn/tensor"
)

func TestGlorotUniformBounds(t *testing.T) {
	shape := tensor.Shape{30, 10}
	bound := math.Sqrt(6.0 / float64(30+10))

	w := GlorotUniform{}.Init(shape, tensor.Complex64)
	require.True(t, shape.Equal(w.Shape()))
	assert.Equal(t, tensor.Complex64, w.DType())

	var sawNonZeroImag bool
	for _, v := range w.Data() {
		assert.LessOrEqual(t, math.Abs(float64(real(v))), bound)
		assert.LessOrEqual(t, math.Abs(float64(imag(v))), bound)
		if imag(v) != 0 {
			sawNonZeroImag = true
		}
	}
	assert.True(t, sawNonZeroImag, "complex init should populate the imaginary lane")
}

func TestGlorotUniformReal(t *testing.T) {
	w := GlorotUniform{}.Init(tensor.Shape{8, 4}, tensor.Float32)
	assert.Equal(t, tensor.Float32, w.DType())
	for _, v := range w.Data() {
		assert.Equal(t, float32(0), imag(v))
	}
}

func TestZerosInit(t *testing.T) {
	b := Zeros{}.Init(tensor.Shape{5}, tensor.Complex64)
	for _, v := range b.Data() {
		assert.Equal(t, complex64(0), v)
	}
}
