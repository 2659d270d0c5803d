// Package interp provides fractional interpolation primitives used by
// grain pitch resampling.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (good default)
//
// [ReadHermite] and [ReadLinear] wrap these with edge-clamped fractional
// reads over a sample slice.
package interp

import "math"

// Linear2 interpolates between x0 and x1 at fraction t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// ReadLinear returns the sample at fractional position pos, clamping
// reads beyond the slice edges to the edge samples.
func ReadLinear(samples []float64, pos float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	idx := int(math.Floor(pos))
	frac := pos - float64(idx)

	return Linear2(frac, sampleClamp(samples, idx), sampleClamp(samples, idx+1))
}

// ReadHermite returns the sample at fractional position pos using 4-point
// cubic interpolation, clamping reads beyond the slice edges to the edge
// samples.
func ReadHermite(samples []float64, pos float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	idx := int(math.Floor(pos))
	frac := pos - float64(idx)

	return Hermite4(frac,
		sampleClamp(samples, idx-1),
		sampleClamp(samples, idx),
		sampleClamp(samples, idx+1),
		sampleClamp(samples, idx+2))
}

func sampleClamp(x []float64, idx int) float64 {
	if idx < 0 {
		return x[0]
	}
	if idx >= len(x) {
		return x[len(x)-1]
	}
	return x[idx]
}
