// Package nn implements complex-valued neural network layers.
//
// The package provides building blocks for networks whose activations
// and weights are genuinely complex numbers:
//   - Layer interface: the unit of computation
//   - Chain: shape/dtype inference context shared by a layer sequence
//   - Dense, Flatten, Dropout: classic layers, complex-aware
//   - FFT2D, Conv2D, FreqConv2D: spatial and frequency-domain layers
//   - Sequential: container for stacking layers
//
// Layers constructed against the same Chain inherit the previous
// layer's output shape and element kind, so only the first layer needs
// explicit input metadata:
//
//	chain := nn.NewChain()
//	flat, _ := nn.NewFlatten(chain)   // fails: first layer needs input
//
//	model := nn.NewSequential()
//	dense, _ := nn.NewDense(model.Chain(), 32,
//	    nn.WithInputShape(tensor.Shape{9}),
//	    nn.WithInputDType(tensor.Complex64))
//	model.Add(dense)
//
// A Chain must only be used from a single goroutine; constructing two
// layer sequences concurrently requires one Chain per sequence.
package nn
