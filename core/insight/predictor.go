package insight

import "math"

// PredictNextGPA extrapolates the next semester's GPA from an ordered GPA
// sequence via ordinary least squares over the semester index.
//   - empty history predicts 0.0
//   - a single semester predicts itself (no trend to fit)
//   - all-equal values yield a flat line (slope 0)
//
// The result is clamped to the grading scale [0, 4] and rounded to 2 decimals.
// Pure function.
func PredictNextGPA(gpas []float64) float64 {
	n := len(gpas)
	if n == 0 {
		return 0.0
	}
	if n == 1 {
		return gpas[0]
	}

	// fit gpa = slope*index + intercept over indices 0..n-1
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range gpas {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	var slope float64
	if denom != 0 {
		slope = (fn*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / fn

	predicted := slope*float64(n) + intercept
	return round2(clamp(predicted, 0, gpaScaleMax))
}

const gpaScaleMax = 4.0

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
