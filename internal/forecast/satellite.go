package forecast

import "fmt"

// SatelliteLink returns a zoom.earth satellite view centred on the
// coordinates.
func SatelliteLink(lat, lon float64) string {
	return fmt.Sprintf("https://zoom.earth/#view=%v,%v,7z/date=now", lat, lon)
}
