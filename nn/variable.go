package nn

import (
	"github.com/saugatkandel/cvnn/tensor"
)

// Variable represents a trainable tensor owned by a layer.
//
// Variables are exclusively owned: no two layers share a Variable, and
// Layer.Clone always allocates fresh storage. The gradient slot is
// written by an external autodiff collaborator; this package never
// computes gradients itself.
type Variable struct {
	name   string
	tensor *tensor.Tensor
	grad   *tensor.Tensor
}

// NewVariable creates a trainable variable wrapping an initialized
// tensor.
func NewVariable(name string, t *tensor.Tensor) *Variable {
	return &Variable{name: name, tensor: t}
}

// Name returns the variable name (e.g., "dense3.weight").
func (v *Variable) Name() string { return v.name }

// Tensor returns the variable's tensor.
func (v *Variable) Tensor() *tensor.Tensor { return v.tensor }

// Grad returns the gradient tensor, or nil before any backward pass.
func (v *Variable) Grad() *tensor.Tensor { return v.grad }

// SetGrad stores a gradient tensor. Called by the optimizer
// collaborator.
func (v *Variable) SetGrad(g *tensor.Tensor) { v.grad = g }

// ZeroGrad clears the gradient slot.
func (v *Variable) ZeroGrad() { v.grad = nil }

// Clone returns a deep copy with freshly allocated tensor storage.
// The gradient slot is not carried over.
func (v *Variable) Clone() *Variable {
	return &Variable{name: v.name, tensor: v.tensor.Clone()}
}
