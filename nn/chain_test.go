package nn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saugatkandel/cvnn/tensor"
)

func TestFirstLayerNeedsExplicitInput(t *testing.T) {
	for _, dt := range []tensor.DType{tensor.Complex64, tensor.Float32} {
		t.Run(dt.String(), func(t *testing.T) {
			chain, _ := newTestChain()

			// No dtype at all.
			_, err := NewDense(chain, 4, WithInputShape(tensor.Shape{3}))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)

			// No shape at all.
			_, err = NewDense(chain, 4, WithInputDType(dt))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)

			// Both given: succeeds.
			_, err = NewDense(chain, 4, WithInputShape(tensor.Shape{3}), WithInputDType(dt))
			require.NoError(t, err)
		})
	}
}

func TestChainInheritance(t *testing.T) {
	chain, rec := newTestChain()

	first, err := NewDense(chain, 8,
		WithInputShape(tensor.Shape{3}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)

	// Second layer omits both and inherits exactly the first layer's
	// published output.
	second, err := NewDense(chain, 2)
	require.NoError(t, err)
	assert.True(t, first.OutputShape().Equal(second.InputShape()))
	assert.Equal(t, first.OutputDType(), second.InputDType())
	assert.Equal(t, 0, rec.count(), "clean inheritance should not warn")
}

func TestChainMismatchWarnsButProceeds(t *testing.T) {
	chain, rec := newTestChain()

	_, err := NewDense(chain, 8,
		WithInputShape(tensor.Shape{3}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)

	// Explicit values disagreeing with the chain warn; the explicit
	// value wins.
	d, err := NewDense(chain, 2,
		WithInputShape(tensor.Shape{5}), WithInputDType(tensor.Float32))
	require.NoError(t, err)
	assert.True(t, rec.contains("input shape is not equal"))
	assert.True(t, rec.contains("input dtype is not equal"))
	assert.True(t, tensor.Shape{5}.Equal(d.InputShape()))
	assert.Equal(t, tensor.Float32, d.InputDType())
}

func TestChainUnsupportedDType(t *testing.T) {
	chain, _ := newTestChain()
	_, err := NewDense(chain, 4,
		WithInputShape(tensor.Shape{3}), WithInputDType(tensor.DType(99)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestOrdinalsIncrease(t *testing.T) {
	chain, _ := newTestChain()
	a, err := NewDense(chain, 4, WithInputShape(tensor.Shape{3}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)
	b, err := NewDense(chain, 4)
	require.NoError(t, err)
	c, err := NewDropout(chain, 0.5)
	require.NoError(t, err)

	assert.Less(t, a.Ordinal(), b.Ordinal())
	assert.Less(t, b.Ordinal(), c.Ordinal())
}

func TestConfigErrorRendering(t *testing.T) {
	chain, _ := newTestChain()
	_, err := NewDense(chain, 0, WithInputShape(tensor.Shape{3}), WithInputDType(tensor.Complex64))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Dense", cfgErr.Layer)
}
