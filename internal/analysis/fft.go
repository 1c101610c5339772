package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT computes the discrete Fourier transform of a real-valued trace, used
// to turn an integration's energy or state history into a frequency-domain
// view (PowerSpectrum). Delegates to the same go-dsp/fft transform
// internal/audio already pulls in for spectral sonification, rather than
// hand-rolling a second Cooley-Tukey implementation.
func FFT(data []float64) []complex128 {
	in := make([]complex128, len(data))
	for i, v := range data {
		in[i] = complex(v, 0)
	}
	return fft.FFT(in)
}

func PowerSpectrum(data []float64) []float64 {
	spectrum := FFT(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}
