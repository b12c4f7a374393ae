package nn

import (
	"fmt"

	"github.com/saugatkandel/cvnn/tensor"
)

// Flatten reshapes a batch of multi-dimensional inputs into a batch of
// vectors: (batch, d1, ..., dn) → (batch, d1·...·dn).
//
// Flatten accepts no explicit input shape or kind, so it can never be
// the first layer of a chain: constructing it against a fresh Chain
// fails with the first-layer ConfigError.
type Flatten struct {
	base
}

// NewFlatten creates a Flatten layer inheriting shape and kind from
// the chain.
func NewFlatten(c *Chain) (*Flatten, error) {
	f := &Flatten{}
	if err := f.resolve(c, "Flatten", tensor.InvalidDType, nil); err != nil {
		return nil, err
	}
	f.outputShape = tensor.Shape{f.inputShape.NumElements()}
	if err := f.publish(c, "Flatten"); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply reshapes (batch, ...) to (batch, product).
func (f *Flatten) Apply(x *tensor.Tensor) (*tensor.Tensor, error) {
	shape := x.Shape()
	if len(shape) != len(f.inputShape)+1 || !f.inputShape.Equal(shape[1:]) {
		return nil, &ShapeError{
			Layer:    "Flatten",
			Expected: shapeDescription(f.inputShape),
			Got:      fmt.Sprintf("%v", []int(shape)),
		}
	}
	return x.Reshape(shape[0], f.outputShape[0]), nil
}

// TrainableVariables returns an empty slice; Flatten owns no
// variables.
func (f *Flatten) TrainableVariables() []*Variable { return nil }

// Clone returns an independent copy with a fresh ordinal.
func (f *Flatten) Clone() Layer {
	c := &Flatten{base: f.base}
	c.inputShape = f.inputShape.Clone()
	c.outputShape = f.outputShape.Clone()
	c.ordinal = nextOrdinal()
	return c
}

// RealEquivalent returns a plain clone; Flatten is kind-agnostic.
func (f *Flatten) RealEquivalent() Layer { return f.Clone() }

// Describe returns a human-readable summary.
func (f *Flatten) Describe() string {
	return fmt.Sprintf("Complex Flatten:\n\tinput shape = %v -> output size = %d\n",
		[]int(f.inputShape), f.outputShape[0])
}
