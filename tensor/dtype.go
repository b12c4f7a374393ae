// Package tensor provides the complex-first array runtime for the cvnn
// layer library.
//
// Every tensor stores its values as complex64 pairs; the DType tag
// records whether the tensor is semantically complex or real (a real
// tensor keeps its imaginary lane at zero). Tensors additionally carry
// a Domain tag so frequency-domain pipelines can be checked instead of
// assumed.
package tensor

// DType identifies the element kind of a tensor.
//
// The zero value InvalidDType means "not specified"; layer constructors
// use it to request inheritance from the chain.
type DType int

// Supported element kinds. Both use 32-bit float lanes: two for
// Complex64, one for Float32.
const (
	InvalidDType DType = iota
	Complex64
	Float32
)

// Valid reports whether dt is one of the supported element kinds.
func (dt DType) Valid() bool {
	return dt == Complex64 || dt == Float32
}

// String returns a human-readable name for the element kind.
func (dt DType) String() string {
	switch dt {
	case Complex64:
		return "complex64"
	case Float32:
		return "float32"
	default:
		return "invalid"
	}
}

// Domain identifies the representation domain of a tensor's values.
type Domain int

// Tensor domains. Spatial is the default for freshly created tensors;
// Frequency marks the output of a discrete Fourier transform.
const (
	Spatial Domain = iota
	Frequency
)

// String returns a human-readable name for the domain.
func (d Domain) String() string {
	switch d {
	case Spatial:
		return "spatial"
	case Frequency:
		return "frequency"
	default:
		return "unknown"
	}
}
