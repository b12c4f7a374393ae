package nn

import (
	"fmt"
	"math/cmplx"

	"github.com/saugatkandel/cvnn/tensor"
)

// KindPolicy declares how an activation transforms the element kind of
// its input. Layers query the policy at construction time to publish
// their true output kind; only unconstrained activations are probed.
type KindPolicy int

// Kind transformation policies.
const (
	// KindIdentity: output kind equals input kind.
	KindIdentity KindPolicy = iota
	// KindToReal: output is always Float32 (e.g., a modulus).
	KindToReal
	// KindUnconstrained: unknown; the layer probes the activation
	// once with a fixed 2×2 complex unit tensor to learn the result
	// kind.
	KindUnconstrained
)

// Activation is the element-wise function a layer applies after its
// affine step. It may change the element kind of its input.
//
// The zero value is the linear (identity) activation.
type Activation struct {
	name   string
	fn     func(*tensor.Tensor) *tensor.Tensor
	policy KindPolicy
}

// Built-in activations.
var (
	// Linear is the identity activation.
	Linear = Activation{name: "linear", policy: KindIdentity}

	// CartReLU applies ReLU independently to the real and imaginary
	// lanes. It preserves the element kind.
	CartReLU = Activation{name: "cart_relu", fn: cartRelu, policy: KindIdentity}

	// Abs maps each element to its modulus, collapsing complex inputs
	// to real.
	Abs = Activation{name: "abs", fn: modulus, policy: KindToReal}
)

var activationsByName = map[string]Activation{
	"linear":    Linear,
	"cart_relu": CartReLU,
	"abs":       Abs,
}

// ActivationByName looks up a built-in activation.
func ActivationByName(name string) (Activation, error) {
	a, ok := activationsByName[name]
	if !ok {
		return Activation{}, fmt.Errorf("unknown activation %q", name)
	}
	return a, nil
}

// NewActivation wraps a custom callable as an activation. Declare the
// kind policy when it is known; pass KindUnconstrained to have layers
// discover the output kind by probing.
func NewActivation(name string, fn func(*tensor.Tensor) *tensor.Tensor, policy KindPolicy) Activation {
	return Activation{name: name, fn: fn, policy: policy}
}

// Name returns the activation's name.
func (a Activation) Name() string {
	if a.name == "" {
		return "linear"
	}
	return a.name
}

// apply evaluates the activation on a tensor.
func (a Activation) apply(t *tensor.Tensor) *tensor.Tensor {
	if a.fn == nil {
		return t
	}
	return a.fn(t)
}

// outputDType resolves the element kind the activation produces for
// the given input kind, using the declared policy and falling back to
// a one-shot probe for unconstrained activations.
func (a Activation) outputDType(input tensor.DType) tensor.DType {
	switch a.policy {
	case KindToReal:
		return tensor.Float32
	case KindUnconstrained:
		probe := tensor.Full(tensor.Shape{2, 2}, complex(1, 1), tensor.Complex64).Cast(input)
		return a.apply(probe).DType()
	default:
		return input
	}
}

func cartRelu(t *tensor.Tensor) *tensor.Tensor {
	out := t.Clone()
	data := out.Data()
	for i, v := range data {
		data[i] = complex(max(real(v), 0), max(imag(v), 0))
	}
	return out
}

func modulus(t *tensor.Tensor) *tensor.Tensor {
	out := t.Cast(tensor.Float32)
	src := t.Data()
	data := out.Data()
	for i, v := range src {
		data[i] = complex(float32(cmplx.Abs(complex128(v))), 0)
	}
	return out
}
