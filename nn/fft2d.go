package nn

import (
	"fmt"

	"github.com/saugatkandel/cvnn/tensor"
)

// FFT2D applies the 2-D discrete Fourier transform to a batch of
// images, per channel. Input values may be real or complex; the output
// is always Complex64 (this is the one layer that overrides the
// chain's kind inheritance unconditionally) and is tagged with the
// Frequency domain.
//
// An optional padding (an amount per spatial axis, added at the
// trailing edge only) grows the image before the transform; to convolve
// afterwards with a k×k kernel, pad by k−1.
type FFT2D struct {
	base
	padding    []int
	dataFormat DataFormat
}

// NewFFT2D creates an FFT transform layer.
//
// Padding accepts an explicit amount (Pad) or PadValid for none; the
// kernel-relative modes have no meaning here and are rejected.
func NewFFT2D(c *Chain, opts ...Option) (*FFT2D, error) {
	o := applyOptions(opts)
	if !o.dataFormat.valid() {
		return nil, configErrorf("FFT2D", "unknown data format %q", o.dataFormat)
	}

	f := &FFT2D{dataFormat: o.dataFormat}
	if err := f.resolve(c, "FFT2D", o.inputDType, o.inputShape); err != nil {
		return nil, err
	}

	shape, err := normalizeSpatialShape("FFT2D", f.inputShape, f.dataFormat, f.logger)
	if err != nil {
		return nil, err
	}
	f.inputShape = shape

	f.padding, err = o.padding.normalize("FFT2D", nil, 2, f.logger)
	if err != nil {
		return nil, err
	}

	f.outputShape = f.inputShape.Clone()
	if f.dataFormat == ChannelsLast {
		f.outputShape[0] += f.padding[0]
		f.outputShape[1] += f.padding[1]
	} else {
		f.outputShape[1] += f.padding[0]
		f.outputShape[2] += f.padding[1]
	}
	f.outputDType = tensor.Complex64
	if err := f.publish(c, "FFT2D"); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply zero-pads the trailing edges, transforms every channel with
// the 2-D DFT and returns a Frequency-domain complex tensor.
func (f *FFT2D) Apply(x *tensor.Tensor) (*tensor.Tensor, error) {
	shape := x.Shape()
	if len(shape) == len(f.inputShape) {
		// Channel axis was implicit.
		f.logger.Warn("assuming channel was implicit, adding axis", "layer", "FFT2D", "shape", shape)
		if f.dataFormat == ChannelsLast {
			x = x.Reshape(append(shape.Clone(), 1)...)
		} else {
			x = x.Reshape(append(tensor.Shape{shape[0], 1}, shape[1:]...)...)
		}
		shape = x.Shape()
	}
	if len(shape) != len(f.inputShape)+1 || !f.inputShape.Equal(shape[1:]) {
		return nil, &ShapeError{
			Layer:    "FFT2D",
			Expected: shapeDescription(f.inputShape),
			Got:      fmt.Sprintf("%v", []int(shape)),
		}
	}

	// Pad at the trailing edge of the spatial axes only.
	before := make([]int, 4)
	after := make([]int, 4)
	if f.dataFormat == ChannelsLast {
		after[1], after[2] = f.padding[0], f.padding[1]
	} else {
		after[2], after[3] = f.padding[0], f.padding[1]
	}
	padded := x.Pad(before, after).Cast(tensor.Complex64)

	if f.dataFormat == ChannelsLast {
		out := tensor.FFT2D(padded.Transpose(0, 3, 1, 2))
		return out.Transpose(0, 2, 3, 1), nil
	}
	return tensor.FFT2D(padded), nil
}

// TrainableVariables returns an empty slice; the transform owns no
// variables.
func (f *FFT2D) TrainableVariables() []*Variable { return nil }

// Clone returns an independent copy with a fresh ordinal.
func (f *FFT2D) Clone() Layer {
	c := &FFT2D{base: f.base, dataFormat: f.dataFormat}
	c.padding = append([]int(nil), f.padding...)
	c.inputShape = f.inputShape.Clone()
	c.outputShape = f.outputShape.Clone()
	c.ordinal = nextOrdinal()
	return c
}

// RealEquivalent returns a plain clone; the transform always outputs
// complex values.
func (f *FFT2D) RealEquivalent() Layer { return f.Clone() }

// Describe returns a human-readable summary.
func (f *FFT2D) Describe() string {
	return fmt.Sprintf("FFT 2D Transform:\n\tinput shape = %v -> output shape = %s;\n\tpadding = %v\n",
		[]int(f.inputShape), f.outputShapeDescription(), f.padding)
}
