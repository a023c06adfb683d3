package forecast

import "math"

// Score measures agreement between two forecasts on a 0-100 scale.
// Temperature divergence costs 4 points per degree Celsius, rainfall
// divergence 5 points per millimetre; the result is clamped to [0, 100].
// Score is symmetric in its arguments.
func Score(f1, f2 Forecast) float64 {
	tempDiff := math.Abs(f1.Temperature - f2.Temperature)
	rainDiff := math.Abs(f1.Rainfall - f2.Rainfall)

	score := 100 - (tempDiff*4 + rainDiff*5)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Confidence scores two forecasts and attaches the matching label.
func Confidence(f1, f2 Forecast) ConfidenceResult {
	s := Score(f1, f2)
	return ConfidenceResult{Score: s, Label: LabelFor(s)}
}

// LabelFor maps a score to its confidence band. Band lower bounds are
// inclusive: 85 is High, 60 is Moderate.
func LabelFor(score float64) ConfidenceLabel {
	switch {
	case score >= 85:
		return LabelHigh
	case score >= 60:
		return LabelModerate
	default:
		return LabelLow
	}
}
