package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saugatkandel/cvnn/tensor"
)

// deltaInit places a single 1 at the first element and zeroes the rest.
// A delta kernel transforms to an all-ones frequency kernel, so a
// frequency-domain convolution with it is the identity.
type deltaInit struct{}

func (deltaInit) Init(shape tensor.Shape, dtype tensor.DType) *tensor.Tensor {
	t := tensor.Zeros(shape, dtype)
	t.Data()[0] = 1
	return t
}

func TestFreqConv2DConstruction(t *testing.T) {
	chain, _ := newTestChain()
	l, err := NewFreqConv2D(chain, 4, []int{3},
		WithInputShape(tensor.Shape{8, 8, 2}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)

	assert.Equal(t, 4, l.Filters())
	assert.True(t, tensor.Shape{8, 8, 4}.Equal(l.OutputShape()))
	assert.Equal(t, tensor.Complex64, l.OutputDType())

	vars := l.TrainableVariables()
	require.Len(t, vars, 2)
	// Kernels are stored pre-transformed at the full input extent.
	assert.True(t, tensor.Shape{8, 8, 2, 4}.Equal(vars[0].Tensor().Shape()))
	assert.True(t, tensor.Shape{4}.Equal(vars[1].Tensor().Shape()))
}

func TestFreqConv2DForcesComplex(t *testing.T) {
	chain, rec := newTestChain()
	l, err := NewFreqConv2D(chain, 1, []int{2},
		WithInputShape(tensor.Shape{4, 4, 1}), WithInputDType(tensor.Float32))
	require.NoError(t, err)
	assert.Equal(t, tensor.Complex64, l.InputDType())
	assert.Equal(t, tensor.Complex64, chain.LastDType())
	assert.True(t, rec.contains("overriding dtype"))
}

func TestFreqConv2DNonSamePaddingWarns(t *testing.T) {
	chain, rec := newTestChain()
	_, err := NewFreqConv2D(chain, 1, []int{2},
		WithInputShape(tensor.Shape{4, 4, 1}), WithInputDType(tensor.Complex64),
		WithPadding(PadValid()))
	require.NoError(t, err)
	assert.True(t, rec.contains("only same padding"))

	// PadSame itself does not warn.
	chain2, rec2 := newTestChain()
	_, err = NewFreqConv2D(chain2, 1, []int{2},
		WithInputShape(tensor.Shape{4, 4, 1}), WithInputDType(tensor.Complex64),
		WithPadding(PadSame()))
	require.NoError(t, err)
	assert.Equal(t, 0, rec2.count())
}

func TestFreqConv2DKernelMustFit(t *testing.T) {
	chain, _ := newTestChain()
	_, err := NewFreqConv2D(chain, 1, []int{5},
		WithInputShape(tensor.Shape{4, 4, 1}), WithInputDType(tensor.Complex64))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestFreqConv2DRequiresFrequencyDomain(t *testing.T) {
	chain, _ := newTestChain()
	l, err := NewFreqConv2D(chain, 1, []int{2},
		WithInputShape(tensor.Shape{4, 4, 1}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)

	_, err = l.Apply(tensor.Ones(tensor.Shape{1, 4, 4, 1}, tensor.Complex64))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestFreqConv2DDeltaKernelIsIdentity(t *testing.T) {
	chain, _ := newTestChain()
	l, err := NewFreqConv2D(chain, 2, []int{2},
		WithInputShape(tensor.Shape{4, 4, 1}), WithInputDType(tensor.Complex64),
		WithWeightInitializer(deltaInit{}))
	require.NoError(t, err)

	x := tensor.Zeros(tensor.Shape{1, 4, 4, 1}, tensor.Complex64)
	x.Set(complex(1, -2), 0, 1, 3, 0)
	x.Set(complex(3, 4), 0, 2, 0, 0)
	x.SetDomain(tensor.Frequency)

	got, err := l.Apply(x)
	require.NoError(t, err)
	require.True(t, tensor.Shape{1, 4, 4, 2}.Equal(got.Shape()))

	// Each filter passes the input through unchanged.
	for f := 0; f < 2; f++ {
		assert.InDelta(t, 1.0, real(got.At(0, 1, 3, f)), 1e-5)
		assert.InDelta(t, -2.0, imag(got.At(0, 1, 3, f)), 1e-5)
		assert.InDelta(t, 3.0, real(got.At(0, 2, 0, f)), 1e-5)
		assert.InDelta(t, 4.0, imag(got.At(0, 2, 0, f)), 1e-5)
		assert.InDelta(t, 0.0, real(got.At(0, 0, 0, f)), 1e-5)
	}
}

func TestFreqConv2DBias(t *testing.T) {
	chain, _ := newTestChain()
	l, err := NewFreqConv2D(chain, 2, []int{2},
		WithInputShape(tensor.Shape{2, 2, 1}), WithInputDType(tensor.Complex64),
		WithWeightInitializer(Zeros{}))
	require.NoError(t, err)

	l.TrainableVariables()[1].Tensor().Set(complex(0, 5), 1)

	x := tensor.Ones(tensor.Shape{1, 2, 2, 1}, tensor.Complex64).SetDomain(tensor.Frequency)
	got, err := l.Apply(x)
	require.NoError(t, err)
	assert.Equal(t, complex64(0), got.At(0, 0, 0, 0))
	assert.Equal(t, complex64(complex(0, 5)), got.At(0, 0, 0, 1))
}

func TestFreqConv2DChannelsFirst(t *testing.T) {
	chain, _ := newTestChain()
	l, err := NewFreqConv2D(chain, 3, []int{2},
		WithInputShape(tensor.Shape{2, 4, 4}), WithInputDType(tensor.Complex64),
		WithDataFormat(ChannelsFirst))
	require.NoError(t, err)
	assert.True(t, tensor.Shape{3, 4, 4}.Equal(l.OutputShape()))

	x := tensor.Ones(tensor.Shape{2, 2, 4, 4}, tensor.Complex64).SetDomain(tensor.Frequency)
	got, err := l.Apply(x)
	require.NoError(t, err)
	assert.True(t, tensor.Shape{2, 3, 4, 4}.Equal(got.Shape()))
}

func TestFreqConv2DApplyShapeError(t *testing.T) {
	chain, _ := newTestChain()
	l, err := NewFreqConv2D(chain, 1, []int{2},
		WithInputShape(tensor.Shape{4, 4, 1}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)

	x := tensor.Ones(tensor.Shape{1, 3, 3, 1}, tensor.Complex64).SetDomain(tensor.Frequency)
	_, err = l.Apply(x)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShape)
}
