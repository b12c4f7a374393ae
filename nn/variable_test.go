package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saugatkandel/cvnn/tensor"
)

func TestVariableGradLifecycle(t *testing.T) {
	v := NewVariable("dense0.weight", tensor.Ones(tensor.Shape{2, 2}, tensor.Complex64))
	assert.Equal(t, "dense0.weight", v.Name())
	assert.Nil(t, v.Grad())

	g := tensor.Full(tensor.Shape{2, 2}, complex(0.5, 0), tensor.Complex64)
	v.SetGrad(g)
	assert.Equal(t, g, v.Grad())

	v.ZeroGrad()
	assert.Nil(t, v.Grad())
}

func TestVariableCloneDropsGrad(t *testing.T) {
	v := NewVariable("w", tensor.Ones(tensor.Shape{3}, tensor.Complex64))
	v.SetGrad(tensor.Zeros(tensor.Shape{3}, tensor.Complex64))

	c := v.Clone()
	assert.Nil(t, c.Grad())

	// Fresh storage, not a shared slice.
	v.Tensor().Set(9, 0)
	assert.Equal(t, complex64(1), c.Tensor().At(0))
}
