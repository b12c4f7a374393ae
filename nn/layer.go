package nn

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/saugatkandel/cvnn/tensor"
)

// Layer is the unit of computation in a complex-valued network.
//
// A layer is constructed against a Chain, which resolves its input
// shape and element kind, and exposes a single Apply entry point. All
// construction and application are synchronous.
type Layer interface {
	// Apply runs the layer's kernel on an input batch. The input's
	// leading axis is the batch size; the remaining axes must match
	// the layer's input shape.
	Apply(x *tensor.Tensor) (*tensor.Tensor, error)

	// TrainableVariables returns the layer's owned variables in a
	// stable order. Parameter-free layers return an empty slice.
	TrainableVariables() []*Variable

	// Clone returns a deep, independent copy: fresh variable storage,
	// no shared tensors, and a fresh ordinal. Clone never reads or
	// writes any Chain.
	Clone() Layer

	// RealEquivalent returns a real-valued (Float32) copy of the
	// layer. Parameter-free layers return a plain clone.
	RealEquivalent() Layer

	// Describe returns a human-readable summary of the layer's
	// shapes, kinds and parameters.
	Describe() string

	// InputShape returns the resolved input shape (non-batch axes).
	InputShape() tensor.Shape

	// OutputShape returns the resolved output shape (non-batch axes).
	OutputShape() tensor.Shape

	// InputDType returns the resolved input element kind.
	InputDType() tensor.DType

	// OutputDType returns the published output element kind.
	OutputDType() tensor.DType

	// Ordinal returns the layer's process-wide construction number.
	Ordinal() int
}

// base carries the state every layer resolves during construction.
type base struct {
	inputDType  tensor.DType
	outputDType tensor.DType
	inputShape  tensor.Shape
	outputShape tensor.Shape
	ordinal     int
	logger      *slog.Logger
}

// resolve runs the shared part of every constructor: input kind and
// shape resolution through the chain, ordinal assignment, and logger
// capture. Callers set the output shape/kind afterwards and then call
// publish.
func (b *base) resolve(c *Chain, layer string, explicitDType tensor.DType, explicitShape tensor.Shape) error {
	dt, err := c.resolveDType(layer, explicitDType)
	if err != nil {
		return err
	}
	shape, err := c.resolveShape(layer, explicitShape)
	if err != nil {
		return err
	}
	b.inputDType = dt
	b.inputShape = shape
	b.logger = c.Logger()
	b.ordinal = nextOrdinal()
	return nil
}

// publish asserts the output shape was resolved to a literal and
// records it on the chain. Deferred shape computations run exactly
// once, during construction, before this call.
func (b *base) publish(c *Chain, layer string) error {
	if b.outputShape == nil {
		return configErrorf(layer, "output shape computation did not produce a shape")
	}
	if b.outputDType == tensor.InvalidDType {
		b.outputDType = b.inputDType
	}
	c.publish(b.outputDType, b.outputShape)
	return nil
}

// InputShape returns the resolved input shape.
func (b *base) InputShape() tensor.Shape { return b.inputShape }

// OutputShape returns the resolved output shape.
func (b *base) OutputShape() tensor.Shape { return b.outputShape }

// InputDType returns the resolved input element kind.
func (b *base) InputDType() tensor.DType { return b.inputDType }

// OutputDType returns the published output element kind.
func (b *base) OutputDType() tensor.DType { return b.outputDType }

// Ordinal returns the layer's process-wide construction number.
func (b *base) Ordinal() int { return b.ordinal }

// outputShapeDescription renders "(None, d1, d2, ...)", the batch axis
// shown as None.
func (b *base) outputShapeDescription() string {
	return shapeDescription(b.outputShape)
}

func shapeDescription(s tensor.Shape) string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprint(d)
	}
	return "(None, " + strings.Join(parts, ", ") + ")"
}

// batchShapeDescription renders a received batch shape such as
// "(images=4, 28x28, channels=3)".
func batchShapeDescription(s tensor.Shape) string {
	if len(s) < 3 {
		return fmt.Sprintf("%v", []int(s))
	}
	spatial := make([]string, len(s)-2)
	for i, d := range s[1 : len(s)-1] {
		spatial[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("(images=%d, %s, channels=%d)", s[0], strings.Join(spatial, "x"), s[len(s)-1])
}
