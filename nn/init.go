package nn

import (
	"math"
	"math/rand"

	"github.com/saugatkandel/cvnn/tensor"
)

// Initializer produces weight and bias tensors of a requested shape
// and kind. Any conforming value may be substituted for the defaults.
type Initializer interface {
	Init(shape tensor.Shape, dtype tensor.DType) *tensor.Tensor
}

// GlorotUniform draws values from a uniform distribution with the
// Xavier/Glorot bound sqrt(6 / (fan_in + fan_out)). For complex
// tensors the real and imaginary lanes are drawn independently.
//
// This initialization helps maintain the variance of activations
// across layers.
type GlorotUniform struct{}

// Init implements Initializer.
func (GlorotUniform) Init(shape tensor.Shape, dtype tensor.DType) *tensor.Tensor {
	fanIn := 1
	for _, d := range shape[:len(shape)-1] {
		fanIn *= d
	}
	fanOut := shape[len(shape)-1]
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros(shape, dtype)
	data := t.Data()
	for i := range data {
		//nolint:gosec // math/rand is fine for weight initialization
		re := float32((rand.Float64()*2.0 - 1.0) * bound)
		if dtype == tensor.Complex64 {
			im := float32((rand.Float64()*2.0 - 1.0) * bound)
			data[i] = complex(re, im)
		} else {
			data[i] = complex(re, 0)
		}
	}
	return t
}

// Zeros fills the tensor with zeros. This is the default bias
// initializer.
type Zeros struct{}

// Init implements Initializer.
func (Zeros) Init(shape tensor.Shape, dtype tensor.DType) *tensor.Tensor {
	return tensor.Zeros(shape, dtype)
}
