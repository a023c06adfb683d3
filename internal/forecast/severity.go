package forecast

import (
	"fmt"

	"github.com/wakaweather/confidence-meter/internal/common"
)

// DetectSeverity classifies one forecast as hazardous weather. Checks apply
// in order: storm/cyclone condition text, heavy rainfall (>10 mm), strong
// wind (>10 m/s). The first match wins.
func DetectSeverity(condition string, rainfall, windSpeed float64) SeverityResult {
	if common.HasAny(condition, "storm", "cyclone") {
		return SeverityResult{Severe: true, Alert: "Storm or cyclone risk"}
	}
	if rainfall > 10 {
		return SeverityResult{Severe: true, Alert: "Heavy rainfall expected"}
	}
	if windSpeed > 10 {
		return SeverityResult{
			Severe: true,
			Alert:  fmt.Sprintf("Strong winds expected (%.1f m/s)", windSpeed),
		}
	}
	return SeverityResult{}
}
