package forecast

import (
	"math"
	"sort"
)

// Summarize reduces a batch of forecasts into ranges, the distinct sorted
// condition set, and per-metric uncertainties. An empty batch yields a zero
// Summary; callers guard against that via the under-two-forecasts fallback.
func Summarize(forecasts []Forecast) Summary {
	if len(forecasts) == 0 {
		return Summary{Conditions: []string{}}
	}

	temps := make([]float64, 0, len(forecasts))
	rains := make([]float64, 0, len(forecasts))
	condSet := make(map[string]struct{})

	for _, f := range forecasts {
		temps = append(temps, f.Temperature)
		rains = append(rains, f.Rainfall)
		condSet[f.Condition] = struct{}{}
	}

	conditions := make([]string, 0, len(condSet))
	for c := range condSet {
		conditions = append(conditions, c)
	}
	sort.Strings(conditions)

	return Summary{
		TempRange:       rangeOf(temps),
		RainRange:       rangeOf(rains),
		Conditions:      conditions,
		TempUncertainty: pstdev(temps),
		RainUncertainty: pstdev(rains),
	}
}

func rangeOf(values []float64) Range {
	r := Range{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	return r
}

// pstdev is the population standard deviation, 0 for fewer than two samples.
func pstdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff / float64(len(values)))
}
