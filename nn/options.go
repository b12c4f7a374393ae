package nn

import (
	"github.com/saugatkandel/cvnn/tensor"
)

// DataFormat is the axis ordering convention for spatial tensors.
type DataFormat string

// Supported data formats. ChannelsLast is the default everywhere.
const (
	ChannelsLast  DataFormat = "channels_last"
	ChannelsFirst DataFormat = "channels_first"
)

func (df DataFormat) valid() bool {
	return df == ChannelsLast || df == ChannelsFirst
}

// Option configures a layer constructor. Options a layer does not use
// are ignored by it.
type Option func(*options)

type options struct {
	inputShape tensor.Shape
	inputDType tensor.DType
	activation Activation
	weightInit Initializer
	biasInit   Initializer
	dropout    float64
	dataFormat DataFormat
	padding    Padding
	hasPadding bool
	stride     Stride
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.dataFormat == "" {
		o.dataFormat = ChannelsLast
	}
	return o
}

// WithInputShape sets the layer's explicit input shape. Omit it on any
// layer but the first to inherit the previous layer's output shape.
func WithInputShape(s tensor.Shape) Option {
	return func(o *options) { o.inputShape = s }
}

// WithInputDType sets the layer's explicit input element kind. Omit it
// on any layer but the first to inherit the previous layer's output
// kind.
func WithInputDType(dt tensor.DType) Option {
	return func(o *options) { o.inputDType = dt }
}

// WithActivation sets the activation applied after the layer's affine
// step. Defaults to Linear.
func WithActivation(a Activation) Option {
	return func(o *options) { o.activation = a }
}

// WithWeightInitializer overrides the default GlorotUniform weight
// initializer.
func WithWeightInitializer(init Initializer) Option {
	return func(o *options) { o.weightInit = init }
}

// WithBiasInitializer overrides the default Zeros bias initializer.
func WithBiasInitializer(init Initializer) Option {
	return func(o *options) { o.biasInit = init }
}

// WithDropout sets the post-activation dropout rate, the probability
// that each element is dropped. Must lie in [0, 1); zero disables the
// mask.
func WithDropout(rate float64) Option {
	return func(o *options) { o.dropout = rate }
}

// WithDataFormat selects channels-last (default) or channels-first
// axis ordering on spatial layers.
func WithDataFormat(df DataFormat) Option {
	return func(o *options) { o.dataFormat = df }
}

// WithPadding sets the padding policy of a spatial layer.
func WithPadding(p Padding) Option {
	return func(o *options) {
		o.padding = p
		o.hasPadding = true
	}
}

// WithStride sets the stride of a spatial layer. Defaults to 1 on
// every spatial dimension.
func WithStride(s Stride) Option {
	return func(o *options) { o.stride = s }
}
