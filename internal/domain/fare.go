package domain

// Fare constants in whole rupees.
const (
	BaseFare    int64 = 50
	RatePerKm   int64 = 3
	MaximumFare int64 = 5000
)

// RouteEstimate is the routing provider's answer for a source/destination pair.
type RouteEstimate struct {
	DistanceKm   float64 `json:"distance_km"`
	DistanceText string  `json:"distance_text"`
	DurationText string  `json:"duration_text"`
}

// FareQuote is a computed fare for a trip. Quotes are not persisted.
type FareQuote struct {
	Source         string
	Destination    string
	DistanceKm     float64
	DistanceText   string
	DurationText   string
	BaseFare       int64
	RatePerKm      int64
	MaximumFare    int64
	CalculatedFare int64
}
