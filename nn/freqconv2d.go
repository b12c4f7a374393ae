package nn

import (
	"fmt"

	"github.com/saugatkandel/cvnn/tensor"
)

// FreqConv2D convolves in the frequency domain, where convolution is
// an element-wise multiplication.
//
// At construction, each filter's spatial kernel is drawn from the
// initializer, zero-padded at the trailing edges up to the full input
// extent, transformed per channel with the 2-D DFT and stacked into a
// single frequency-domain kernel tensor. At apply time the layer
// multiplies the (already transformed) input against every filter's
// frequency kernel and sums over the input channels; it never calls
// the inverse transform. Inputs must carry the Frequency domain tag;
// put an FFT2D layer (or an external forward transform) in front.
//
// Only the "same" padding policy is supported; anything else is forced
// to "same" with a warning. Stride is fixed at 1.
type FreqConv2D struct {
	base
	filters    int
	kernel     []int
	activation Activation
	weightInit Initializer
	biasInit   Initializer
	dropout    float64
	dataFormat DataFormat
	kernels    *Variable // channels_last: (H, W, in_channels, filters)
	bias       *Variable // (filters,)
}

// NewFreqConv2D creates a frequency-domain convolution layer with the
// given filter count and spatial kernel extents (a single value
// broadcasts to both dimensions).
//
// The input kind is always Complex64, regardless of what the chain
// inherited; frequency-domain tensors are complex by construction.
func NewFreqConv2D(c *Chain, filters int, kernel []int, opts ...Option) (*FreqConv2D, error) {
	if filters <= 0 {
		return nil, configErrorf("FreqConv2D", "filters must be positive, got %d", filters)
	}
	o := applyOptions(opts)
	if !o.dataFormat.valid() {
		return nil, configErrorf("FreqConv2D", "unknown data format %q", o.dataFormat)
	}
	if err := validateDropoutRate("FreqConv2D", o.dropout); err != nil {
		return nil, err
	}

	l := &FreqConv2D{
		filters:    filters,
		activation: o.activation,
		weightInit: o.weightInit,
		biasInit:   o.biasInit,
		dropout:    o.dropout,
		dataFormat: o.dataFormat,
	}
	if l.weightInit == nil {
		l.weightInit = GlorotUniform{}
	}
	if l.biasInit == nil {
		l.biasInit = Zeros{}
	}
	if o.hasPadding && o.padding.Mode() != "same" {
		c.Logger().Warn("only same padding mode is supported, changing it", "layer", "FreqConv2D")
	}
	if o.inputDType != tensor.InvalidDType && o.inputDType != tensor.Complex64 {
		c.Logger().Warn("frequency-domain input is always complex, overriding dtype",
			"layer", "FreqConv2D", "given", o.inputDType.String())
	}
	if err := l.resolve(c, "FreqConv2D", tensor.Complex64, o.inputShape); err != nil {
		return nil, err
	}

	shape, err := normalizeSpatialShape("FreqConv2D", l.inputShape, l.dataFormat, l.logger)
	if err != nil {
		return nil, err
	}
	l.inputShape = shape

	if l.kernel, err = normalizeKernel("FreqConv2D", kernel, 2); err != nil {
		return nil, err
	}
	h, w, channels := l.spatialDims()
	if l.kernel[0] > h || l.kernel[1] > w {
		return nil, configErrorf("FreqConv2D", "kernel %v does not fit input %v", l.kernel, l.inputShape)
	}

	if l.dataFormat == ChannelsLast {
		l.outputShape = tensor.Shape{h, w, filters}
	} else {
		l.outputShape = tensor.Shape{filters, h, w}
	}
	l.outputDType = l.activation.outputDType(tensor.Complex64)
	if err := l.publish(c, "FreqConv2D"); err != nil {
		return nil, err
	}

	l.initKernels(h, w, channels)
	return l, nil
}

// spatialDims returns (height, width, channels) per the data format.
func (l *FreqConv2D) spatialDims() (h, w, channels int) {
	if l.dataFormat == ChannelsLast {
		return l.inputShape[0], l.inputShape[1], l.inputShape[2]
	}
	return l.inputShape[1], l.inputShape[2], l.inputShape[0]
}

// initKernels draws each filter's spatial kernel, transforms it to the
// frequency domain and stacks all filters into one kernel tensor of
// shape (H, W, channels, filters) (channels moved accordingly for
// channels_first inputs).
func (l *FreqConv2D) initKernels(h, w, channels int) {
	kh, kw := l.kernel[0], l.kernel[1]
	// Stacked layout keeps channels on the second-to-last axis so the
	// apply-time broadcast lines up against (batch, ..., channels, 1).
	var stacked *tensor.Tensor
	if l.dataFormat == ChannelsLast {
		stacked = tensor.Zeros(tensor.Shape{h, w, channels, l.filters}, tensor.Complex64)
	} else {
		stacked = tensor.Zeros(tensor.Shape{channels, h, w, l.filters}, tensor.Complex64)
	}

	for f := 0; f < l.filters; f++ {
		var freq *tensor.Tensor
		if l.dataFormat == ChannelsLast {
			spatial := l.weightInit.Init(tensor.Shape{kh, kw, channels}, tensor.Complex64)
			// Trailing-edge zero pad up to the full input extent.
			padded := spatial.Pad([]int{0, 0, 0}, []int{h - kh, w - kw, 0})
			// Channels to the front, transform per channel, back again.
			freq = tensor.FFT2D(padded.Transpose(2, 0, 1)).Transpose(1, 2, 0)
			for i := 0; i < h; i++ {
				for j := 0; j < w; j++ {
					for ch := 0; ch < channels; ch++ {
						stacked.Set(freq.At(i, j, ch), i, j, ch, f)
					}
				}
			}
		} else {
			spatial := l.weightInit.Init(tensor.Shape{channels, kh, kw}, tensor.Complex64)
			padded := spatial.Pad([]int{0, 0, 0}, []int{0, h - kh, w - kw})
			freq = tensor.FFT2D(padded)
			for ch := 0; ch < channels; ch++ {
				for i := 0; i < h; i++ {
					for j := 0; j < w; j++ {
						stacked.Set(freq.At(ch, i, j), ch, i, j, f)
					}
				}
			}
		}
	}

	l.kernels = NewVariable(fmt.Sprintf("freqconv2d%d.kernels", l.ordinal), stacked)
	l.bias = NewVariable(fmt.Sprintf("freqconv2d%d.bias", l.ordinal),
		l.biasInit.Init(tensor.Shape{l.filters}, tensor.Complex64))
}

// Filters returns the number of output filters.
func (l *FreqConv2D) Filters() int { return l.filters }

// Apply multiplies the frequency-domain input against every filter's
// frequency kernel, sums over the input channels, applies the
// activation and the optional shared dropout mask.
func (l *FreqConv2D) Apply(x *tensor.Tensor) (*tensor.Tensor, error) {
	if x.Domain() != tensor.Frequency {
		return nil, &DomainError{
			Layer:    "FreqConv2D",
			Expected: tensor.Frequency.String(),
			Got:      x.Domain().String(),
		}
	}
	if x.DType() != tensor.Complex64 {
		l.logger.Warn("input dtype not what expected, attempting cast",
			"layer", "FreqConv2D", "got", x.DType().String(), "want", tensor.Complex64.String())
		x = x.Cast(tensor.Complex64)
	}
	shape := x.Shape()
	if len(shape) != len(l.inputShape)+1 || !l.inputShape.Equal(shape[1:]) {
		return nil, &ShapeError{
			Layer:    "FreqConv2D",
			Expected: shapeDescription(l.inputShape),
			Got:      fmt.Sprintf("%v", []int(shape)),
		}
	}

	// Add a trailing filter axis, broadcast against the stacked
	// kernels and reduce over the input channels.
	expanded := x.Reshape(append(shape.Clone(), 1)...)
	product := expanded.Mul(l.kernels.Tensor())

	var out *tensor.Tensor
	if l.dataFormat == ChannelsLast {
		// (batch, H, W, channels, filters) → (batch, H, W, filters)
		out = product.SumAxis(3)
	} else {
		// (batch, channels, H, W, filters) → (batch, filters, H, W)
		out = product.SumAxis(1).Transpose(0, 3, 1, 2)
	}
	out = out.Add(l.biasBroadcast())

	out = l.activation.apply(out)
	return applyDropoutMask(out, l.dropout), nil
}

// biasBroadcast reshapes the per-filter bias for broadcasting against
// the batched output.
func (l *FreqConv2D) biasBroadcast() *tensor.Tensor {
	if l.dataFormat == ChannelsLast {
		return l.bias.Tensor().Reshape(1, 1, 1, l.filters)
	}
	return l.bias.Tensor().Reshape(1, l.filters, 1, 1)
}

// TrainableVariables returns [kernels, bias].
func (l *FreqConv2D) TrainableVariables() []*Variable {
	return []*Variable{l.kernels, l.bias}
}

// Clone returns a deep copy with freshly allocated kernel and bias
// storage and a fresh ordinal.
func (l *FreqConv2D) Clone() Layer {
	c := &FreqConv2D{
		base:       l.base,
		filters:    l.filters,
		kernel:     append([]int(nil), l.kernel...),
		activation: l.activation,
		weightInit: l.weightInit,
		biasInit:   l.biasInit,
		dropout:    l.dropout,
		dataFormat: l.dataFormat,
		kernels:    l.kernels.Clone(),
		bias:       l.bias.Clone(),
	}
	c.inputShape = l.inputShape.Clone()
	c.outputShape = l.outputShape.Clone()
	c.ordinal = nextOrdinal()
	return c
}

// RealEquivalent returns a plain clone; frequency-domain tensors are
// complex by construction.
func (l *FreqConv2D) RealEquivalent() Layer { return l.Clone() }

// Describe returns a human-readable summary.
func (l *FreqConv2D) Describe() string {
	return fmt.Sprintf("Frequency Convolutional 2D layer:\n\tinput shape = %v (%v) -> output shape = %s;"+
		"\n\tkernel shape = %v;\n\tact_fun = %s;\n\tdropout = %v\n",
		[]int(l.inputShape), l.inputDType, l.outputShapeDescription(),
		l.kernel, l.activation.Name(), l.dropout)
}
