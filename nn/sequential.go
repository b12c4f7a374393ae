package nn

import (
	"fmt"
	"strings"

	"github.com/saugatkandel/cvnn/tensor"
)

// Sequential chains layers together: each layer's output becomes the
// next layer's input. It owns the Chain its layers are constructed
// against, so only the first layer needs explicit input metadata:
//
//	model := nn.NewSequential()
//	flat, err := nn.NewFlatten(model.Chain())  // after a first layer
//	...
//	model.Add(dense, flat)
//
//	out, err := model.Apply(batch)
type Sequential struct {
	chain  *Chain
	layers []Layer
}

// NewSequential creates an empty container with a fresh Chain.
func NewSequential(opts ...ChainOption) *Sequential {
	return &Sequential{chain: NewChain(opts...)}
}

// Chain returns the container's inference chain; construct layers
// against it before adding them.
func (s *Sequential) Chain() *Chain { return s.chain }

// Add appends layers in declaration order.
func (s *Sequential) Add(layers ...Layer) {
	s.layers = append(s.layers, layers...)
}

// Len returns the number of layers.
func (s *Sequential) Len() int { return len(s.layers) }

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Layer(index int) Layer {
	if index < 0 || index >= len(s.layers) {
		panic("nn: Sequential.Layer index out of bounds")
	}
	return s.layers[index]
}

// Apply feeds the input through every layer in order.
func (s *Sequential) Apply(x *tensor.Tensor) (*tensor.Tensor, error) {
	out := x
	for i, layer := range s.layers {
		var err error
		if out, err = layer.Apply(out); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return out, nil
}

// TrainableVariables collects every layer's variables in order, for
// the external gradient computation.
func (s *Sequential) TrainableVariables() []*Variable {
	var vars []*Variable
	for _, layer := range s.layers {
		vars = append(vars, layer.TrainableVariables()...)
	}
	return vars
}

// Summary renders every layer's description as one model summary.
func (s *Sequential) Summary() string {
	var b strings.Builder
	for _, layer := range s.layers {
		b.WriteString(layer.Describe())
	}
	return b.String()
}
