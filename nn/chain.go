package nn

import (
	"log/slog"
	"sync/atomic"

	"github.com/saugatkandel/cvnn/tensor"
)

// ordinalCounter assigns construction order across the whole process.
var ordinalCounter atomic.Int64

func nextOrdinal() int {
	return int(ordinalCounter.Add(1) - 1)
}

// Chain carries the shape/dtype inference state of a layer sequence.
//
// It remembers the output shape and element kind of the most recently
// constructed layer so that subsequent layers can omit both. The first
// layer constructed against a fresh Chain must supply explicit values;
// later layers may supply explicit values, which are checked against
// the inherited ones (a mismatch is a warning, not a failure, and the
// explicit value wins).
//
// A Chain models linear inheritance only; skip connections and
// branching topologies are out of scope. It is not safe for concurrent
// use: one goroutine per Chain, by contract.
type Chain struct {
	logger    *slog.Logger
	lastDType tensor.DType
	lastShape tensor.Shape
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithLogger sets the logger used for warning conditions on this chain
// and on every layer constructed against it.
func WithLogger(l *slog.Logger) ChainOption {
	return func(c *Chain) { c.logger = l }
}

// NewChain creates an empty inference chain.
func NewChain(opts ...ChainOption) *Chain {
	c := &Chain{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Logger returns the chain's warning logger.
func (c *Chain) Logger() *slog.Logger { return c.logger }

// LastDType returns the most recently published element kind, or
// InvalidDType for a fresh chain.
func (c *Chain) LastDType() tensor.DType { return c.lastDType }

// LastShape returns the most recently published output shape, or nil
// for a fresh chain.
func (c *Chain) LastShape() tensor.Shape { return c.lastShape }

// resolveDType resolves a layer's input kind from the explicit value
// and the chain state.
func (c *Chain) resolveDType(layer string, explicit tensor.DType) (tensor.DType, error) {
	if explicit == tensor.InvalidDType {
		if c.lastDType == tensor.InvalidDType {
			return tensor.InvalidDType, configErrorf(layer, "first layer must be given an input dtype")
		}
		return c.lastDType, nil
	}
	if !explicit.Valid() {
		return tensor.InvalidDType, configErrorf(layer, "unsupported input dtype %v", explicit)
	}
	if c.lastDType != tensor.InvalidDType && c.lastDType != explicit {
		c.logger.Warn("input dtype is not equal to last layer's output dtype",
			"layer", layer, "dtype", explicit.String(), "last", c.lastDType.String())
	}
	return explicit, nil
}

// resolveShape resolves a layer's input shape from the explicit value
// and the chain state.
func (c *Chain) resolveShape(layer string, explicit tensor.Shape) (tensor.Shape, error) {
	if explicit == nil {
		if c.lastShape == nil {
			return nil, configErrorf(layer, "first layer must be given an input shape")
		}
		return c.lastShape.Clone(), nil
	}
	if err := explicit.Validate(); err != nil {
		return nil, configErrorf(layer, "invalid input shape %v: %v", explicit, err)
	}
	if c.lastShape != nil && !c.lastShape.Equal(explicit) {
		c.logger.Warn("input shape is not equal to last layer's output shape",
			"layer", layer, "shape", explicit, "last", c.lastShape)
	}
	return explicit.Clone(), nil
}

// publish records a successfully constructed layer's output as the
// chain's inheritance state.
func (c *Chain) publish(dtype tensor.DType, shape tensor.Shape) {
	c.lastDType = dtype
	c.lastShape = shape.Clone()
}
