package nn

import (
	"fmt"

	"github.com/saugatkandel/cvnn/tensor"
)

// Dense is a fully connected complex-valued layer.
//
// It implements activation(input · W + b) where W has shape
// (input_size, units) and b has shape (units,), both in the layer's
// input kind. The activation may change the element kind (e.g., Abs
// collapses complex to real); the layer resolves its true output kind
// from the activation's declared policy at construction time and
// publishes that to the chain.
type Dense struct {
	base
	units      int
	activation Activation
	weightInit Initializer
	biasInit   Initializer
	dropout    float64
	w          *Variable
	b          *Variable
}

// NewDense creates a fully connected layer with the given output size.
//
// The input shape must be flat (rank 1); put a Flatten layer in front
// of spatial inputs. Weights default to GlorotUniform, biases to
// Zeros.
func NewDense(c *Chain, units int, opts ...Option) (*Dense, error) {
	if units <= 0 {
		return nil, configErrorf("Dense", "units must be positive, got %d", units)
	}
	o := applyOptions(opts)
	if err := validateDropoutRate("Dense", o.dropout); err != nil {
		return nil, err
	}

	d := &Dense{
		units:      units,
		activation: o.activation,
		weightInit: o.weightInit,
		biasInit:   o.biasInit,
		dropout:    o.dropout,
	}
	if d.weightInit == nil {
		d.weightInit = GlorotUniform{}
	}
	if d.biasInit == nil {
		d.biasInit = Zeros{}
	}
	if err := d.resolve(c, "Dense", o.inputDType, o.inputShape); err != nil {
		return nil, err
	}
	if len(d.inputShape) != 1 {
		return nil, configErrorf("Dense", "expects a flat input shape, got %v (add a Flatten layer first)", d.inputShape)
	}

	d.outputShape = tensor.Shape{units}
	d.outputDType = d.activation.outputDType(d.inputDType)
	if err := d.publish(c, "Dense"); err != nil {
		return nil, err
	}

	d.w = NewVariable(fmt.Sprintf("dense%d.weight", d.ordinal),
		d.weightInit.Init(tensor.Shape{d.inputShape[0], units}, d.inputDType))
	d.b = NewVariable(fmt.Sprintf("dense%d.bias", d.ordinal),
		d.biasInit.Init(tensor.Shape{units}, d.inputDType))
	return d, nil
}

// Units returns the layer's output size.
func (d *Dense) Units() int { return d.units }

// Apply computes activation(x · W + b) for a batch x of shape
// (batch, input_size), followed by the optional dropout mask.
func (d *Dense) Apply(x *tensor.Tensor) (*tensor.Tensor, error) {
	shape := x.Shape()
	if len(shape) != 2 || shape[1] != d.inputShape[0] {
		return nil, &ShapeError{
			Layer:    "Dense",
			Expected: shapeDescription(d.inputShape),
			Got:      fmt.Sprintf("%v", []int(shape)),
		}
	}
	if x.DType() != d.inputDType {
		d.logger.Warn("input dtype is not as expected, casting input but you most likely have a bug",
			"layer", "Dense", "got", x.DType().String(), "want", d.inputDType.String())
		x = x.Cast(d.inputDType)
	}

	out := x.MatMul(d.w.Tensor()).Add(d.b.Tensor().Reshape(1, d.units))
	out = d.activation.apply(out)
	return applyDropoutMask(out, d.dropout), nil
}

// TrainableVariables returns [weight, bias].
func (d *Dense) TrainableVariables() []*Variable {
	return []*Variable{d.w, d.b}
}

// Clone returns a deep copy with freshly allocated weight and bias
// storage and a fresh ordinal.
func (d *Dense) Clone() Layer {
	c := &Dense{
		base:       d.base,
		units:      d.units,
		activation: d.activation,
		weightInit: d.weightInit,
		biasInit:   d.biasInit,
		dropout:    d.dropout,
		w:          d.w.Clone(),
		b:          d.b.Clone(),
	}
	c.inputShape = d.inputShape.Clone()
	c.outputShape = d.outputShape.Clone()
	c.ordinal = nextOrdinal()
	return c
}

// RealEquivalent returns a real-valued copy with input and output
// sizes multiplied by 2, the usual equivalence between one complex and
// two real dimensions.
func (d *Dense) RealEquivalent() Layer {
	eq, err := NewDense(NewChain(WithLogger(d.logger)), d.units*2,
		WithInputShape(tensor.Shape{d.inputShape[0] * 2}),
		WithInputDType(tensor.Float32),
		WithActivation(d.activation),
		WithWeightInitializer(d.weightInit),
		WithBiasInitializer(d.biasInit),
		WithDropout(d.dropout),
	)
	if err != nil {
		panic(fmt.Sprintf("nn: real equivalent of a valid Dense cannot fail: %v", err))
	}
	return eq
}

// Describe returns a human-readable summary.
func (d *Dense) Describe() string {
	return fmt.Sprintf("Dense layer:\n\tinput size = %d (%v) -> output size = %d (%v);"+
		"\n\tact_fun = %s;\n\tdropout = %v\n",
		d.inputShape[0], d.inputDType, d.units, d.outputDType, d.activation.Name(), d.dropout)
}
