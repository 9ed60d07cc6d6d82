package trainer

import "math"

// sampleSize calculates the statistically sufficient sample size
// for a given dataset size N and significance level (0-100).
func sampleSize(N int, significance byte) int {
	// keep the margin of error positive, 100 would make it zero
	if significance > 99 {
		significance = 99
	}
	z := zScoreFromAlpha(100 - significance)

	// worst-case proportion p = 0.5 for max variability
	p := 0.5
	e := float64(100-significance) * 0.01

	numerator := math.Pow(z, 2) * p * (1 - p)
	denominator := math.Pow(e, 2)

	ss := numerator / denominator

	// finite population correction
	correctedSS := ss * float64(N) / (float64(N) - 1 + ss)

	if int(correctedSS) > N {
		return N
	}
	return int(correctedSS)
}

// zScoreFromAlpha returns the Z-score for a given alpha level
// Common: 90% => 1.645, 95% => 1.96, 99% => 2.576
func zScoreFromAlpha(alpha byte) float64 {
	switch {
	case alpha <= 1:
		return 2.576
	case alpha <= 5:
		return 1.96
	case alpha <= 10:
		return 1.645
	default:
		return 1.96
	}
}
