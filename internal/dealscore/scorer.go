// Package dealscore computes the cost-benefit of traveling to a cheaper offer.
// All functions are pure and safe for concurrent use.
package dealscore

import (
	"fmt"
	"math"

	"github.com/precivox/engine-go/internal/domain"
)

const (
	earthRadiusKm = 6371

	// DefaultAverageSpeedKmh assumes urban driving.
	DefaultAverageSpeedKmh = 30.0
	// DefaultCostPerKm is the per-kilometer travel cost in currency units.
	DefaultCostPerKm = 0.50

	// Score weights. The four sub-scores are independently capped and sum to 100.
	economyWeight      = 40.0
	distanceWeight     = 30.0
	timeWeight         = 20.0
	availabilityWeight = 10.0

	// Beyond these, the distance and time sub-scores contribute zero.
	idealMaxDistanceKm = 5.0
	idealMaxTravelMin  = 15.0
)

// Options tunes the travel model. Zero values fall back to the defaults.
type Options struct {
	AverageSpeedKmh float64
	CostPerKm       float64
}

func (o Options) withDefaults() Options {
	if o.AverageSpeedKmh <= 0 {
		o.AverageSpeedKmh = DefaultAverageSpeedKmh
	}
	if o.CostPerKm <= 0 {
		o.CostPerKm = DefaultCostPerKm
	}
	return o
}

// Distance returns the great-circle distance in kilometers between two
// coordinates, rounded to one decimal place.
func Distance(a, b domain.Coordinates) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(earthRadiusKm*c*10) / 10
}

func toRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// RouteInfo describes the travel leg between two coordinates.
type RouteInfo struct {
	DistanceKm    float64 `json:"distance_km"`
	TravelTimeMin int     `json:"travel_time_min"`
	TravelCost    float64 `json:"travel_cost"`
}

// Route computes distance, travel time, and travel cost between two points
// under the given travel model.
func Route(a, b domain.Coordinates, opts Options) RouteInfo {
	opts = opts.withDefaults()

	distanceKm := Distance(a, b)
	return RouteInfo{
		DistanceKm:    distanceKm,
		TravelTimeMin: int(math.Round(distanceKm / opts.AverageSpeedKmh * 60)),
		TravelCost:    round2(distanceKm * opts.CostPerKm),
	}
}

// Quote evaluates a destination offer against an origin: travel distance,
// time and cost, net savings, and a 0-100 cost-benefit score with a
// human-readable rationale.
func Quote(origin, dest domain.Coordinates, price, savings float64, available bool, opts Options) domain.DealQuote {
	route := Route(origin, dest, opts)
	distanceKm := route.DistanceKm
	travelTimeMin := route.TravelTimeMin
	travelCost := route.TravelCost
	netSavings := round2(savings - travelCost)

	score := Score(savings, price, distanceKm, travelTimeMin, available)
	category := Categorize(score)

	return domain.DealQuote{
		Origin:        origin,
		Destination:   dest,
		Price:         price,
		Savings:       savings,
		DistanceKm:    distanceKm,
		TravelTimeMin: travelTimeMin,
		TravelCost:    travelCost,
		NetSavings:    netSavings,
		Score:         score,
		Category:      category,
		Rationale:     rationale(category, savings, distanceKm, travelTimeMin, travelCost),
	}
}

// Score computes the weighted cost-benefit score (0-100): economy as a
// fraction of the current price (weight 40, capped), distance under 5 km
// (weight 30), travel time under 15 min (weight 20), availability (weight 10).
func Score(savings, currentPrice, distanceKm float64, travelTimeMin int, available bool) int {
	var economyFraction float64
	if currentPrice > 0 {
		economyFraction = savings / currentPrice
	}
	economyScore := math.Min(economyFraction*economyWeight*100, economyWeight)

	distanceScore := math.Max(0, (idealMaxDistanceKm-distanceKm)/idealMaxDistanceKm) * distanceWeight
	timeScore := math.Max(0, (idealMaxTravelMin-float64(travelTimeMin))/idealMaxTravelMin) * timeWeight

	availabilityScore := 0.0
	if available {
		availabilityScore = availabilityWeight
	}

	return int(math.Round(economyScore + distanceScore + timeScore + availabilityScore))
}

// Categorize buckets a score into a recommendation level.
func Categorize(score int) domain.DealCategory {
	switch {
	case score >= 80:
		return domain.DealExcellent
	case score >= 60:
		return domain.DealGood
	case score >= 40:
		return domain.DealFair
	default:
		return domain.DealNotRecommended
	}
}

func rationale(category domain.DealCategory, savings, distanceKm float64, travelTimeMin int, travelCost float64) string {
	switch category {
	case domain.DealExcellent:
		return fmt.Sprintf("Excellent option! Save $%.2f just %.1f km away (%d min).",
			savings, distanceKm, travelTimeMin)
	case domain.DealGood:
		if distanceKm > 3 {
			return fmt.Sprintf("Good savings of $%.2f, but consider the %.1f km distance.",
				savings, distanceKm)
		}
		return fmt.Sprintf("Good option: save $%.2f at a convenient distance.", savings)
	case domain.DealFair:
		if savings < 1 {
			return fmt.Sprintf("Small saving ($%.2f) vs a %.1f km trip - judge whether it is worth it.",
				savings, distanceKm)
		}
		return fmt.Sprintf("Moderate saving, but factor in the travel time (%d min).", travelTimeMin)
	default:
		if savings < travelCost {
			return fmt.Sprintf("Not recommended: travel cost ($%.2f) exceeds the saving.", travelCost)
		}
		return "Saving too small to justify the trip."
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
