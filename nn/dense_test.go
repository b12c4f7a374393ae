package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saugatkandel/cvnn/tensor"
)

func TestDenseConstruction(t *testing.T) {
	chain, _ := newTestChain()
	d, err := NewDense(chain, 10,
		WithInputShape(tensor.Shape{9}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)

	assert.Equal(t, 10, d.Units())
	assert.True(t, tensor.Shape{10}.Equal(d.OutputShape()))
	assert.Equal(t, tensor.Complex64, d.OutputDType())

	vars := d.TrainableVariables()
	require.Len(t, vars, 2)
	assert.True(t, tensor.Shape{9, 10}.Equal(vars[0].Tensor().Shape()))
	assert.True(t, tensor.Shape{10}.Equal(vars[1].Tensor().Shape()))
	assert.Equal(t, tensor.Complex64, vars[0].Tensor().DType())
}

func TestDenseRejectsSpatialInput(t *testing.T) {
	chain, _ := newTestChain()
	_, err := NewDense(chain, 10,
		WithInputShape(tensor.Shape{3, 3, 2}), WithInputDType(tensor.Complex64))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "Flatten")
}

func TestDenseApplyKnownValues(t *testing.T) {
	chain, _ := newTestChain()
	d, err := NewDense(chain, 2,
		WithInputShape(tensor.Shape{2}), WithInputDType(tensor.Complex64),
		WithWeightInitializer(Zeros{}))
	require.NoError(t, err)

	// With an identity-ish weight matrix and a known bias the output is
	// fully determined.
	w := d.TrainableVariables()[0].Tensor()
	w.Set(1, 0, 0)
	w.Set(complex(0, 1), 1, 1)
	b := d.TrainableVariables()[1].Tensor()
	b.Set(complex(10, 0), 0)
	b.Set(complex(0, 10), 1)

	x, err := tensor.FromComplex(tensor.Shape{1, 2}, []complex64{complex(1, 2), complex(3, 4)})
	require.NoError(t, err)

	got, err := d.Apply(x)
	require.NoError(t, err)
	require.True(t, tensor.Shape{1, 2}.Equal(got.Shape()))
	assert.Equal(t, complex64(complex(11, 2)), got.At(0, 0))
	// (3+4i)*i + 10i = -4+3i+10i
	assert.Equal(t, complex64(complex(-4, 13)), got.At(0, 1))
}

func TestDenseApplyShapeError(t *testing.T) {
	chain, _ := newTestChain()
	d, err := NewDense(chain, 2,
		WithInputShape(tensor.Shape{3}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)

	_, err = d.Apply(tensor.Ones(tensor.Shape{2, 4}, tensor.Complex64))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShape)

	_, err = d.Apply(tensor.Ones(tensor.Shape{3}, tensor.Complex64))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShape)
}

func TestDenseApplyCastWarning(t *testing.T) {
	chain, rec := newTestChain()
	d, err := NewDense(chain, 2,
		WithInputShape(tensor.Shape{3}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)

	_, err = d.Apply(tensor.Ones(tensor.Shape{1, 3}, tensor.Float32))
	require.NoError(t, err)
	assert.True(t, rec.contains("casting input"))
}

func TestDenseAbsPublishesReal(t *testing.T) {
	chain, _ := newTestChain()
	d, err := NewDense(chain, 4,
		WithInputShape(tensor.Shape{3}), WithInputDType(tensor.Complex64),
		WithActivation(Abs))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, d.OutputDType())
	assert.Equal(t, tensor.Float32, chain.LastDType())

	// The next layer inherits the collapsed kind with no warning.
	next, err := NewDense(chain, 2)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, next.InputDType())

	got, err := d.Apply(tensor.Ones(tensor.Shape{2, 3}, tensor.Complex64))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, got.DType())
}

func TestDenseAfterFlatten(t *testing.T) {
	chain, _ := newTestChain()
	_, err := NewFFT2D(chain,
		WithInputShape(tensor.Shape{3, 3, 1}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)
	fl, err := NewFlatten(chain)
	require.NoError(t, err)
	d, err := NewDense(chain, 10)
	require.NoError(t, err)

	flat, err := fl.Apply(tensor.Ones(tensor.Shape{2, 3, 3, 1}, tensor.Complex64))
	require.NoError(t, err)
	got, err := d.Apply(flat)
	require.NoError(t, err)
	assert.True(t, tensor.Shape{2, 10}.Equal(got.Shape()))
	assert.Equal(t, tensor.Complex64, got.DType())
}

func TestDenseCloneIndependence(t *testing.T) {
	chain, _ := newTestChain()
	d, err := NewDense(chain, 2,
		WithInputShape(tensor.Shape{3}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)

	c := d.Clone().(*Dense)
	assert.NotEqual(t, d.Ordinal(), c.Ordinal())

	// Mutating the original's weights must not affect the clone.
	orig := d.TrainableVariables()[0].Tensor().At(0, 0)
	d.TrainableVariables()[0].Tensor().Set(complex(99, 99), 0, 0)
	assert.Equal(t, orig, c.TrainableVariables()[0].Tensor().At(0, 0))
}

func TestDenseRealEquivalent(t *testing.T) {
	chain, _ := newTestChain()
	d, err := NewDense(chain, 5,
		WithInputShape(tensor.Shape{3}), WithInputDType(tensor.Complex64))
	require.NoError(t, err)

	eq := d.RealEquivalent().(*Dense)
	assert.Equal(t, 10, eq.Units())
	assert.True(t, tensor.Shape{6}.Equal(eq.InputShape()))
	assert.Equal(t, tensor.Float32, eq.InputDType())
}
