package nn

import (
	"log/slog"

	"github.com/saugatkandel/cvnn/tensor"
)

// Padding describes the zero-padding policy of a spatial layer:
// either explicit amounts (a single value broadcast to every spatial
// dimension, or one per dimension) or a named mode.
type Padding struct {
	mode string
	dims []int
}

// Pad builds an explicit padding: one value broadcasts to all spatial
// dimensions, otherwise supply one value per dimension.
func Pad(dims ...int) Padding { return Padding{dims: dims} }

// PadValid is the "valid" mode: zero padding on every dimension.
func PadValid() Padding { return Padding{mode: "valid"} }

// PadSame is the "same" mode: floor(kernel/2) per dimension, which
// preserves the spatial extent at stride 1.
func PadSame() Padding { return Padding{mode: "same"} }

// PadFull is the "full" mode: kernel−1 per dimension.
func PadFull() Padding { return Padding{mode: "full"} }

// PadMode builds a named-mode padding from a string, for callers that
// take the mode from configuration. Unknown names fail at
// normalization time.
func PadMode(mode string) Padding { return Padding{mode: mode} }

// Mode returns the padding's named mode, or "" for explicit amounts.
func (p Padding) Mode() string { return p.mode }

// normalize resolves the padding policy into one amount per spatial
// dimension. kernel is the normalized kernel shape, required for the
// "same" and "full" modes; n is the number of spatial dimensions.
func (p Padding) normalize(layer string, kernel []int, n int, logger *slog.Logger) ([]int, error) {
	if p.mode != "" {
		out := make([]int, n)
		switch p.mode {
		case "valid":
			// Zero padding everywhere.
		case "same":
			if kernel == nil {
				return nil, configErrorf(layer, "padding mode %q is not supported here", p.mode)
			}
			for _, k := range kernel {
				if k%2 == 0 {
					logger.Warn("same padding needs the kernel to have an odd value",
						"layer", layer, "kernel", kernel)
					break
				}
			}
			for i, k := range kernel {
				out[i] = k / 2
			}
		case "full":
			if kernel == nil {
				return nil, configErrorf(layer, "padding mode %q is not supported here", p.mode)
			}
			for i, k := range kernel {
				out[i] = k - 1
			}
		default:
			return nil, configErrorf(layer, "unknown padding mode %q", p.mode)
		}
		return out, nil
	}

	out := make([]int, n)
	switch len(p.dims) {
	case 0:
	case 1:
		for i := range out {
			out[i] = p.dims[0]
		}
	case n:
		copy(out, p.dims)
	default:
		return nil, configErrorf(layer, "padding %v should have length %d", p.dims, n)
	}
	for _, v := range out {
		if v < 0 {
			return nil, configErrorf(layer, "padding values must be >= 0, got %v", out)
		}
	}
	return out, nil
}

// Stride describes the stride of a spatial layer: a single value
// broadcast to every spatial dimension, or one per dimension. The
// zero value means stride 1 everywhere.
type Stride struct {
	dims []int
}

// StrideBy builds a stride: one value broadcasts, otherwise supply one
// value per spatial dimension.
func StrideBy(dims ...int) Stride { return Stride{dims: dims} }

// normalize resolves the stride into one amount per spatial dimension.
func (s Stride) normalize(layer string, n int) ([]int, error) {
	out := make([]int, n)
	switch len(s.dims) {
	case 0:
		for i := range out {
			out[i] = 1
		}
	case 1:
		for i := range out {
			out[i] = s.dims[0]
		}
	case n:
		copy(out, s.dims)
	default:
		return nil, configErrorf(layer, "stride %v should have length %d", s.dims, n)
	}
	for _, v := range out {
		if v < 1 {
			return nil, configErrorf(layer, "stride values must be >= 1, got %v", out)
		}
	}
	return out, nil
}

// normalizeKernel resolves a kernel argument into one extent per spatial
// dimension and validates that every extent is strictly greater
// than 1.
func normalizeKernel(layer string, kernel []int, n int) ([]int, error) {
	out := make([]int, n)
	switch len(kernel) {
	case 1:
		for i := range out {
			out[i] = kernel[0]
		}
	case n:
		copy(out, kernel)
	default:
		return nil, configErrorf(layer, "kernel %v should have length 1 or %d", kernel, n)
	}
	for _, k := range out {
		if k <= 1 {
			return nil, configErrorf(layer, "kernel shape must have all values bigger than 1: %v", out)
		}
	}
	return out, nil
}

// convOutputShape computes the output shape of a strided convolution:
// floor((input_i + 2*padding_i − kernel_i) / stride_i) + 1 per spatial
// dimension, with the channel dimension replaced by the filter count.
// The input shape is channels-last.
func convOutputShape(layer string, input tensor.Shape, kernel, padding, stride []int, filters int) (tensor.Shape, error) {
	out := make(tensor.Shape, 0, len(input))
	for i := 0; i < len(input)-1; i++ {
		extent := (input[i]+2*padding[i]-kernel[i])/stride[i] + 1
		if extent <= 0 {
			return nil, configErrorf(layer, "kernel %v does not fit input %v with padding %v and stride %v",
				kernel, input, padding, stride)
		}
		out = append(out, extent)
	}
	out = append(out, filters)
	return out, nil
}

// normalizeSpatialShape enforces the 3-dimensional spatial contract,
// appending (channels-last) or prepending (channels-first) an implicit
// channel of size 1 to a 2-dimensional shape.
func normalizeSpatialShape(layer string, shape tensor.Shape, df DataFormat, logger *slog.Logger) (tensor.Shape, error) {
	if len(shape) == 2 {
		logger.Warn("assuming channel was implicit, adding axis", "layer", layer, "shape", shape)
		if df == ChannelsFirst {
			return append(tensor.Shape{1}, shape...), nil
		}
		return append(shape.Clone(), 1), nil
	}
	if len(shape) != 3 {
		order := "height, width, channels"
		if df == ChannelsFirst {
			order = "channels, height, width"
		}
		return nil, configErrorf(layer, "input shape must have length 3 of the form (%s), got %v", order, shape)
	}
	return shape, nil
}
