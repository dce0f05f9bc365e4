package analysis

import "github.com/mjibson/go-dsp/fft"

// FFT returns the discrete Fourier transform of data.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

// InverseFFT inverts FFT. The result is complex; for the transform of real
// data the imaginary parts are rounding noise.
func InverseFFT(spectrum []complex128) []complex128 {
	return fft.IFFT(spectrum)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Autocorrelation returns rho[0..maxLag] of xs, normalised so rho[0] = 1.
// The series is zero-padded to avoid circular wrap-around. A constant
// series has rho[k] = 0 for k > 0.
func Autocorrelation(xs []float64, maxLag int) []float64 {
	n := len(xs)
	if n == 0 {
		return nil
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)

	padded := make([]float64, nextPow2(2*n))
	for i, x := range xs {
		padded[i] = x - mean
	}

	spectrum := FFT(padded)
	for i, v := range spectrum {
		spectrum[i] = complex(real(v)*real(v)+imag(v)*imag(v), 0)
	}
	acov := InverseFFT(spectrum)

	rho := make([]float64, maxLag+1)
	c0 := real(acov[0])
	if c0 <= 0 {
		rho[0] = 1
		return rho
	}
	for k := range rho {
		rho[k] = real(acov[k]) / c0
	}
	return rho
}
