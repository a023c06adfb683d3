package forecast

// emergencyDirectory lists official disaster-management contacts for
// countries with curated entries.
var emergencyDirectory = map[string]map[string]string{
	"Fiji": {
		"NDMO":    "https://ndmo.gov.fj/",
		"Met":     "https://www.met.gov.fj/",
		"Hotline": "+679 331 9250",
	},
}

// EmergencyContacts returns the contact directory for a country, or nil when
// none is curated.
func EmergencyContacts(country string) map[string]string {
	return emergencyDirectory[country]
}
