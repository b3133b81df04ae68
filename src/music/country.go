package music

// Country is a reference row loaded from the countries dataset. Artists are
// linked to it by matching their inferred country code; the rows themselves
// are read-only after import.
type Country struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Code      string  `json:"countryCode"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}
