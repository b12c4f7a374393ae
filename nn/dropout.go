package nn

import (
	"fmt"
	"math/rand"

	"github.com/saugatkandel/cvnn/tensor"
)

// applyDropoutMask draws a single real Bernoulli-derived mask and
// multiplies it into both the real and imaginary lanes of t, so a
// dropped position is exactly zero in both lanes and the complex phase
// at kept positions is preserved. Kept values are scaled by
// 1/(1−rate). A zero rate is the identity.
func applyDropoutMask(t *tensor.Tensor, rate float64) *tensor.Tensor {
	if rate == 0 {
		return t
	}
	keep := float32(1.0 / (1.0 - rate))
	out := t.Clone()
	data := out.Data()
	for i, v := range data {
		//nolint:gosec // math/rand is fine for dropout masks
		if rand.Float64() < rate {
			data[i] = 0
		} else {
			data[i] = v * complex(keep, 0)
		}
	}
	return out
}

// validateDropoutRate rejects rates outside [0, 1).
func validateDropoutRate(layer string, rate float64) error {
	if rate < 0 || rate >= 1 {
		return configErrorf(layer, "dropout rate must be in [0, 1), got %v", rate)
	}
	return nil
}

// Dropout is a parameter-free layer that randomly zeroes elements of
// its input at apply time. One mask is drawn per call and applied
// identically to both complex lanes.
//
// Dropout never changes the element kind or shape, and it can never be
// the first layer of a chain: it accepts no explicit input shape or
// kind, so a prior layer must exist.
type Dropout struct {
	base
	rate float64
}

// NewDropout creates a Dropout layer inheriting shape and kind from
// the chain.
func NewDropout(c *Chain, rate float64) (*Dropout, error) {
	if err := validateDropoutRate("Dropout", rate); err != nil {
		return nil, err
	}
	d := &Dropout{rate: rate}
	if err := d.resolve(c, "Dropout", tensor.InvalidDType, nil); err != nil {
		return nil, err
	}
	d.outputShape = d.inputShape.Clone()
	if err := d.publish(c, "Dropout"); err != nil {
		return nil, err
	}
	return d, nil
}

// Rate returns the configured drop probability.
func (d *Dropout) Rate() float64 { return d.rate }

// Apply draws one mask and multiplies it into both lanes of x.
func (d *Dropout) Apply(x *tensor.Tensor) (*tensor.Tensor, error) {
	return applyDropoutMask(x, d.rate), nil
}

// TrainableVariables returns an empty slice; Dropout owns no
// variables.
func (d *Dropout) TrainableVariables() []*Variable { return nil }

// Clone returns an independent copy with a fresh ordinal.
func (d *Dropout) Clone() Layer {
	c := &Dropout{base: d.base, rate: d.rate}
	c.inputShape = d.inputShape.Clone()
	c.outputShape = d.outputShape.Clone()
	c.ordinal = nextOrdinal()
	return c
}

// RealEquivalent returns a plain clone; Dropout is kind-agnostic.
func (d *Dropout) RealEquivalent() Layer { return d.Clone() }

// Describe returns a human-readable summary.
func (d *Dropout) Describe() string {
	return fmt.Sprintf("Complex Dropout:\n\trate = %v\n", d.rate)
}
