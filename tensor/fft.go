package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FFT2D applies the unnormalized 2-D discrete Fourier transform over
// the two trailing axes of t, once per leading index. The result is
// always Complex64 and is tagged with the Frequency domain.
//
// Only the forward transform is provided; convolution in frequency
// space never needs the inverse here, the surrounding pipeline decides
// when (and whether) to come back to the spatial domain.
func FFT2D(t *Tensor) *Tensor {
	rank := len(t.shape)
	if rank < 2 {
		panic(fmt.Sprintf("tensor: fft2d requires rank >= 2, got shape %v", t.shape))
	}
	h := t.shape[rank-2]
	w := t.shape[rank-1]
	blocks := len(t.data) / (h * w)

	out := Zeros(t.shape, Complex64)
	out.domain = Frequency

	rowFFT := fourier.NewCmplxFFT(w)
	colFFT := fourier.NewCmplxFFT(h)
	row := make([]complex128, w)
	rowCoef := make([]complex128, w)
	col := make([]complex128, h)
	colCoef := make([]complex128, h)

	for b := 0; b < blocks; b++ {
		plane := out.data[b*h*w : (b+1)*h*w]
		src := t.data[b*h*w : (b+1)*h*w]

		// Transform rows.
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				row[c] = complex128(src[r*w+c])
			}
			rowFFT.Coefficients(rowCoef, row)
			for c := 0; c < w; c++ {
				plane[r*w+c] = complex64(rowCoef[c])
			}
		}

		// Transform columns of the row-transformed plane.
		for c := 0; c < w; c++ {
			for r := 0; r < h; r++ {
				col[r] = complex128(plane[r*w+c])
			}
			colFFT.Coefficients(colCoef, col)
			for r := 0; r < h; r++ {
				plane[r*w+c] = complex64(colCoef[r])
			}
		}
	}
	return out
}
