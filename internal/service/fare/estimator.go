package fare

import (
	"math"

	"github.com/transpo-mobility/fare-engine/internal/domain/models"
)

const (
	earthRadiusKm = 6371.0

	// roadFactor inflates the great-circle distance to approximate urban
	// routing overhead. Gets the estimate within about 25% of a routed
	// distance in the Montreal core, which is enough for pre-booking quotes.
	roadFactor = 1.3

	// avgSpeedKmh is the assumed urban average for deriving duration.
	avgSpeedKmh = 30.0

	// samePointKm: pickups and dropoffs within 10 m are the same point.
	samePointKm = 0.01
)

// Estimator converts a coordinate pair into estimated road distance and trip
// duration. Implementations must be pure, and monotone: a larger straight-line
// distance never yields a smaller estimate. A routing-service implementation
// can replace the haversine one without touching anything downstream.
type Estimator interface {
	Estimate(p1, p2 models.Coordinate) (km float64, min int)
}

// HaversineEstimator estimates from geometry alone, so the engine can run
// without a mapping provider.
type HaversineEstimator struct{}

func NewHaversineEstimator() *HaversineEstimator {
	return &HaversineEstimator{}
}

// Estimate returns the road distance in km (one decimal) and duration in
// whole minutes. Coordinates are assumed validated by the caller.
func (e *HaversineEstimator) Estimate(p1, p2 models.Coordinate) (float64, int) {
	straight := HaversineKm(p1, p2)
	if straight <= samePointKm {
		return 0.0, 0
	}

	km := round1(straight * roadFactor)
	min := int(math.Round(km / avgSpeedKmh * 60))

	return km, min
}

// HaversineKm computes the great-circle distance between two points.
func HaversineKm(p1, p2 models.Coordinate) float64 {
	lat1 := degToRad(p1.Lat)
	lat2 := degToRad(p2.Lat)
	dLat := degToRad(p2.Lat - p1.Lat)
	dLng := degToRad(p2.Lng - p1.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
