package xivmath

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTConvolve returns the linear convolution of a and b computed through the
// real FFT, matching direct convolution up to floating point error.
func FFTConvolve(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	n := len(a) + len(b) - 1
	size := nextPow2(n)

	fa := make([]float64, size)
	fb := make([]float64, size)
	copy(fa, a)
	copy(fb, b)

	fft := fourier.NewFFT(size)
	ca := fft.Coefficients(nil, fa)
	cb := fft.Coefficients(nil, fb)
	for i := range ca {
		ca[i] *= cb[i]
	}

	out := fft.Sequence(nil, ca)
	scale := 1 / float64(size)
	out = out[:n]
	for i := range out {
		out[i] *= scale
	}
	return out
}

// SelfConvolve convolves pdf with itself n-1 times, so the result is the
// distribution of a sum of n independent draws. n must be >= 1.
func SelfConvolve(pdf []float64, n int) []float64 {
	out := append([]float64(nil), pdf...)
	for i := 1; i < n; i++ {
		out = FFTConvolve(out, pdf)
	}
	return out
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// CoarsenedBoundaries widens [lower, upper] outward to multiples of step.
func CoarsenedBoundaries(lower, upper float64, step int) (float64, float64) {
	s := float64(step)
	return math.Floor(lower/s) * s, math.Ceil(upper/s) * s
}

// Support returns evenly stepped values from lower to upper inclusive.
func Support(lower, upper float64, step int) []float64 {
	n := int((upper-lower)/float64(step)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = lower + float64(i*step)
	}
	return out
}

// Linspace returns n evenly spaced points over [lower, upper].
func Linspace(lower, upper float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lower
		return out
	}
	step := (upper - lower) / float64(n-1)
	for i := range out {
		out[i] = lower + float64(i)*step
	}
	return out
}

// Trapz integrates y over x with the trapezoid rule.
func Trapz(y, x []float64) float64 {
	var sum float64
	for i := 1; i < len(x); i++ {
		sum += (x[i] - x[i-1]) * (y[i] + y[i-1]) / 2
	}
	return sum
}

// Normalize scales pdf in place so it integrates to 1 over support.
func Normalize(pdf, support []float64) {
	z := Trapz(pdf, support)
	if z == 0 {
		return
	}
	for i := range pdf {
		pdf[i] /= z
	}
}

// Interp linearly interpolates (xs, ys) at the query points. Queries outside
// the range clamp to the boundary values.
func Interp(query, xs, ys []float64) []float64 {
	out := make([]float64, len(query))
	for i, q := range query {
		out[i] = interpOne(q, xs, ys)
	}
	return out
}

func interpOne(q float64, xs, ys []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	if q <= xs[0] {
		return ys[0]
	}
	if q >= xs[len(xs)-1] {
		return ys[len(ys)-1]
	}

	lo, hi := 0, len(xs)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= q {
			lo = mid
		} else {
			hi = mid
		}
	}
	t := (q - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo] + t*(ys[hi]-ys[lo])
}

// PercentileOfValue computes the CDF by cumulative sum and returns the
// percentile (0..1) of the value closest to v on the support.
func PercentileOfValue(v float64, pdf, support []float64) float64 {
	if len(support) < 2 {
		return 0
	}
	dx := support[1] - support[0]

	idx := nearestIndex(v, support)
	var cum float64
	for i := 0; i <= idx; i++ {
		cum += pdf[i] * dx
	}
	return cum
}

// ValueAtPercentile returns the support value whose CDF is closest to p.
func ValueAtPercentile(p float64, pdf, support []float64) float64 {
	if len(support) < 2 {
		return 0
	}
	dx := support[1] - support[0]

	best, bestDiff := 0, math.Inf(1)
	var cum float64
	for i := range support {
		cum += pdf[i] * dx
		if diff := math.Abs(cum - p); diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return support[best]
}

func nearestIndex(v float64, xs []float64) int {
	best, bestDiff := 0, math.Inf(1)
	for i, x := range xs {
		if diff := math.Abs(x - v); diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}
