package features

import "math"

// RollingMean computes the trailing simple moving average over window
// samples. out[i] is NaN until a full window of defined values ends at i;
// a NaN anywhere inside the window makes the output NaN for that index.
func RollingMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// RollingStd computes the trailing sample standard deviation (n-1
// denominator) over window samples, with the same NaN semantics as
// RollingMean.
func RollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 1 || len(values) < window {
		return out
	}
	means := RollingMean(values, window)
	for i := window - 1; i < len(values); i++ {
		if math.IsNaN(means[i]) {
			continue
		}
		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - means[i]
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(window-1))
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
