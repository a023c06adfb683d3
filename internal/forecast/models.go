package forecast

// Forecast is one provider's normalized prediction for the target window
// (tomorrow at local noon, or the nearest scheme the provider supports).
// All numeric fields are metric: temperature in degrees Celsius, rainfall in
// millimetres over the forecast window, wind speed in metres per second.
// A Forecast is immutable once built and lives for a single request.
type Forecast struct {
	Source      string  `json:"source"`
	Temperature float64 `json:"temp"`
	Rainfall    float64 `json:"rain"`
	WindSpeed   float64 `json:"wind"`
	Condition   string  `json:"condition"`
}

// Location identifies the place a consensus forecast is requested for.
type Location struct {
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone,omitempty"`
}

// ConfidenceLabel buckets a confidence score into a coarse band.
type ConfidenceLabel string

const (
	LabelLow      ConfidenceLabel = "Low"
	LabelModerate ConfidenceLabel = "Moderate"
	LabelHigh     ConfidenceLabel = "High"
)

// ConfidenceResult pairs a 0-100 agreement score with its label.
type ConfidenceResult struct {
	Score float64         `json:"score"`
	Label ConfidenceLabel `json:"label"`
}

// Range is a min/max pair for one metric across the fetched batch.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Summary holds ranges and dispersion statistics over a batch of forecasts.
// Uncertainty fields are the population standard deviation of the metric,
// defined as 0 when the batch has fewer than two samples.
type Summary struct {
	TempRange       Range    `json:"temp_range"`
	RainRange       Range    `json:"rain_range"`
	Conditions      []string `json:"conditions"`
	TempUncertainty float64  `json:"temp_uncertainty"`
	RainUncertainty float64  `json:"rain_uncertainty"`
}

// SeverityResult classifies a single forecast as hazardous. Alert is empty
// when Severe is false.
type SeverityResult struct {
	Severe bool   `json:"severe"`
	Alert  string `json:"alert,omitempty"`
}
