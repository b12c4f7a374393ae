package nn

import (
	"fmt"

	"github.com/saugatkandel/cvnn/tensor"
)

// Conv2D is a direct (spatial-domain) complex convolution layer.
//
// For every image, filter and output position it reduces the
// element-wise product of the input window and the filter kernel to a
// scalar, adds the filter's tied bias (one scalar per filter, shared
// by all spatial positions) and stores it into the output. This is
// intentionally the naive reference algorithm, O(images * filters *
// output positions * kernel volume); performance is not a goal.
//
// The output is assembled with ordinary indexed stores into a mutable
// buffer; the mask-and-blend write technique is only needed on
// runtimes with immutable tensors.
type Conv2D struct {
	base
	filters    int
	kernel     []int
	padding    []int
	stride     []int
	activation Activation
	weightInit Initializer
	biasInit   Initializer
	kernels    *Variable // (filters, kernel_h, kernel_w, in_channels)
	bias       *Variable // (filters,)
}

// NewConv2D creates a direct convolution layer with the given filter
// count and kernel extents (a single value broadcasts to both spatial
// dimensions). Every kernel extent must be strictly greater than 1.
//
// Only channels-last inputs are supported.
func NewConv2D(c *Chain, filters int, kernel []int, opts ...Option) (*Conv2D, error) {
	if filters <= 0 {
		return nil, configErrorf("Conv2D", "filters must be positive, got %d", filters)
	}
	o := applyOptions(opts)
	if o.dataFormat != ChannelsLast {
		return nil, configErrorf("Conv2D", "only channels_last data format is supported, got %q", o.dataFormat)
	}

	l := &Conv2D{
		filters:    filters,
		activation: o.activation,
		weightInit: o.weightInit,
		biasInit:   o.biasInit,
	}
	if l.weightInit == nil {
		l.weightInit = GlorotUniform{}
	}
	if l.biasInit == nil {
		l.biasInit = Zeros{}
	}
	if err := l.resolve(c, "Conv2D", o.inputDType, o.inputShape); err != nil {
		return nil, err
	}

	shape, err := normalizeSpatialShape("Conv2D", l.inputShape, ChannelsLast, l.logger)
	if err != nil {
		return nil, err
	}
	l.inputShape = shape
	spatial := len(l.inputShape) - 1

	if l.kernel, err = normalizeKernel("Conv2D", kernel, spatial); err != nil {
		return nil, err
	}
	if l.padding, err = o.padding.normalize("Conv2D", l.kernel, spatial, l.logger); err != nil {
		return nil, err
	}
	if l.stride, err = o.stride.normalize("Conv2D", spatial); err != nil {
		return nil, err
	}
	if l.outputShape, err = convOutputShape("Conv2D", l.inputShape, l.kernel, l.padding, l.stride, filters); err != nil {
		return nil, err
	}
	l.outputDType = l.activation.outputDType(l.inputDType)
	if err := l.publish(c, "Conv2D"); err != nil {
		return nil, err
	}

	kernelShape := append(tensor.Shape{filters}, l.kernel...)
	kernelShape = append(kernelShape, l.inputShape[spatial])
	l.kernels = NewVariable(fmt.Sprintf("conv2d%d.kernels", l.ordinal),
		l.weightInit.Init(kernelShape, l.inputDType))
	l.bias = NewVariable(fmt.Sprintf("conv2d%d.bias", l.ordinal),
		l.biasInit.Init(tensor.Shape{filters}, l.inputDType))
	return l, nil
}

// Filters returns the number of output filters.
func (l *Conv2D) Filters() int { return l.filters }

// KernelShape returns the normalized kernel extents.
func (l *Conv2D) KernelShape() []int { return l.kernel }

// verifyInput checks rank and shape against the layer contract,
// normalizing an implicit channel axis when the channel count is 1.
func (l *Conv2D) verifyInput(x *tensor.Tensor) (*tensor.Tensor, error) {
	shape := x.Shape()
	channels := l.inputShape[len(l.inputShape)-1]
	if len(shape) == len(l.inputShape) && channels == 1 {
		x = x.Reshape(append(shape.Clone(), 1)...)
		shape = x.Shape()
	}
	if len(shape) != len(l.inputShape)+1 || !l.inputShape.Equal(shape[1:]) {
		return nil, &ShapeError{
			Layer:    "Conv2D",
			Expected: l.expectedInputDescription(),
			Got:      batchShapeDescription(shape),
		}
	}
	return x, nil
}

// Apply runs the direct convolution on a batch of images of shape
// (batch, height, width, channels), or (batch, height, width) when the
// channel count is 1.
func (l *Conv2D) Apply(x *tensor.Tensor) (*tensor.Tensor, error) {
	if l.kernels == nil {
		return nil, configErrorf("Conv2D", "layer was not constructed with NewConv2D")
	}
	if x.DType() != l.inputDType {
		l.logger.Warn("input dtype not what expected, attempting cast",
			"layer", "Conv2D", "got", x.DType().String(), "want", l.inputDType.String())
		x = x.Cast(l.inputDType)
	}
	x, err := l.verifyInput(x)
	if err != nil {
		return nil, err
	}

	// Symmetric zero padding of the spatial axes; image and channel
	// axes stay unpadded.
	pad := []int{0, l.padding[0], l.padding[1], 0}
	padded := x.Pad(pad, pad)

	batch := x.Shape()[0]
	outH, outW := l.outputShape[0], l.outputShape[1]
	kh, kw := l.kernel[0], l.kernel[1]
	channels := l.inputShape[len(l.inputShape)-1]

	out := tensor.Zeros(tensor.Shape{batch, outH, outW, l.filters}, l.inputDType)
	kernels := l.kernels.Tensor()
	bias := l.bias.Tensor()

	for img := 0; img < batch; img++ {
		for f := 0; f < l.filters; f++ {
			for oh := 0; oh < outH; oh++ {
				for ow := 0; ow < outW; ow++ {
					h0 := oh * l.stride[0]
					w0 := ow * l.stride[1]
					var sum complex64
					for i := 0; i < kh; i++ {
						for j := 0; j < kw; j++ {
							for ch := 0; ch < channels; ch++ {
								sum += padded.At(img, h0+i, w0+j, ch) * kernels.At(f, i, j, ch)
							}
						}
					}
					out.Set(sum+bias.At(f), img, oh, ow, f)
				}
			}
		}
	}

	return l.activation.apply(out), nil
}

// TrainableVariables returns [kernels, bias].
func (l *Conv2D) TrainableVariables() []*Variable {
	return []*Variable{l.kernels, l.bias}
}

// Clone returns a deep copy with freshly allocated kernel and bias
// storage and a fresh ordinal.
func (l *Conv2D) Clone() Layer {
	c := &Conv2D{
		base:       l.base,
		filters:    l.filters,
		kernel:     append([]int(nil), l.kernel...),
		padding:    append([]int(nil), l.padding...),
		stride:     append([]int(nil), l.stride...),
		activation: l.activation,
		weightInit: l.weightInit,
		biasInit:   l.biasInit,
		kernels:    l.kernels.Clone(),
		bias:       l.bias.Clone(),
	}
	c.inputShape = l.inputShape.Clone()
	c.outputShape = l.outputShape.Clone()
	c.ordinal = nextOrdinal()
	return c
}

// RealEquivalent returns a Float32 copy with the same geometry.
func (l *Conv2D) RealEquivalent() Layer {
	eq, err := NewConv2D(NewChain(WithLogger(l.logger)), l.filters, l.kernel,
		WithInputShape(l.inputShape.Clone()),
		WithInputDType(tensor.Float32),
		WithPadding(Pad(l.padding...)),
		WithStride(StrideBy(l.stride...)),
		WithActivation(l.activation),
		WithWeightInitializer(l.weightInit),
		WithBiasInitializer(l.biasInit),
	)
	if err != nil {
		panic(fmt.Sprintf("nn: real equivalent of a valid Conv2D cannot fail: %v", err))
	}
	return eq
}

func (l *Conv2D) expectedInputDescription() string {
	spatial := ""
	for i, d := range l.inputShape[:len(l.inputShape)-1] {
		if i > 0 {
			spatial += "x"
		}
		spatial += fmt.Sprint(d)
	}
	return fmt.Sprintf("(images, %s, channels=%d)", spatial, l.inputShape[len(l.inputShape)-1])
}

// Describe returns a human-readable summary.
func (l *Conv2D) Describe() string {
	return fmt.Sprintf("Complex Convolutional layer:\n\tinput shape = %s (%v) -> output shape = %s;"+
		"\n\tkernel shape = %v\n\tstride shape = %v\n\tzero padding shape = %v;\n\tact_fun = %s\n",
		l.expectedInputDescription(), l.inputDType, l.outputShapeDescription(),
		l.kernel, l.stride, l.padding, l.activation.Name())
}
