package dealscore

import (
	"testing"

	"github.com/precivox/engine-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

var (
	saoPaulo = domain.Coordinates{Latitude: -23.5505, Longitude: -46.6333}
	rio      = domain.Coordinates{Latitude: -22.9068, Longitude: -43.1729}
)

func TestDistanceZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(saoPaulo, saoPaulo))
}

func TestDistanceSymmetry(t *testing.T) {
	assert.Equal(t, Distance(saoPaulo, rio), Distance(rio, saoPaulo))
}

func TestDistanceKnownCities(t *testing.T) {
	// São Paulo to Rio de Janeiro is roughly 357 km great-circle
	assert.InDelta(t, 357, Distance(saoPaulo, rio), 5)
}

func TestDistanceRoundedToOneDecimal(t *testing.T) {
	d := Distance(domain.Coordinates{}, domain.Coordinates{Longitude: 0.018})
	assert.Equal(t, 2.0, d)
}

func TestScorePerfectDeal(t *testing.T) {
	assert.Equal(t, 100, Score(10, 20, 0, 0, true))
}

func TestScoreUnavailableLosesTenPoints(t *testing.T) {
	available := Score(10, 20, 0, 0, true)
	unavailable := Score(10, 20, 0, 0, false)
	assert.Equal(t, 10, available-unavailable)
}

func TestScoreDistanceCutoff(t *testing.T) {
	near := Score(10, 20, 2.5, 0, true)
	atLimit := Score(10, 20, 5, 0, true)
	beyond := Score(10, 20, 8, 0, true)

	// Half the distance budget keeps half its 30 points; at and beyond
	// the 5 km cutoff the distance contribution is gone
	assert.Equal(t, 15, near-atLimit)
	assert.Equal(t, atLimit, beyond)
}

func TestScoreTimeCutoff(t *testing.T) {
	atLimit := Score(10, 20, 0, 15, true)
	beyond := Score(10, 20, 0, 45, true)
	assert.Equal(t, atLimit, beyond)
}

func TestScoreMonotonicInDistance(t *testing.T) {
	assert.Greater(t, Score(5, 25, 1, 2, true), Score(5, 25, 4, 8, true))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		score int
		want  domain.DealCategory
	}{
		{100, domain.DealExcellent},
		{80, domain.DealExcellent},
		{79, domain.DealGood},
		{60, domain.DealGood},
		{59, domain.DealFair},
		{40, domain.DealFair},
		{39, domain.DealNotRecommended},
		{0, domain.DealNotRecommended},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.score), "score %d", tt.score)
	}
}

func TestRoute(t *testing.T) {
	dest := domain.Coordinates{Longitude: 0.018}
	route := Route(domain.Coordinates{}, dest, Options{})

	assert.Equal(t, 2.0, route.DistanceKm)
	assert.Equal(t, 4, route.TravelTimeMin)
	assert.Equal(t, 1.0, route.TravelCost)
}

func TestQuoteSameLocation(t *testing.T) {
	q := Quote(saoPaulo, saoPaulo, 20, 2, true, Options{})

	assert.Equal(t, 0.0, q.DistanceKm)
	assert.Equal(t, 0, q.TravelTimeMin)
	assert.Equal(t, 0.0, q.TravelCost)
	assert.Equal(t, 2.0, q.NetSavings)
	assert.Equal(t, 100, q.Score)
	assert.Equal(t, domain.DealExcellent, q.Category)
}

func TestQuoteTravelMath(t *testing.T) {
	// ~2 km east along the equator at the default 30 km/h and $0.50/km
	dest := domain.Coordinates{Longitude: 0.018}
	q := Quote(domain.Coordinates{}, dest, 25, 5, true, Options{})

	assert.Equal(t, 2.0, q.DistanceKm)
	assert.Equal(t, 4, q.TravelTimeMin)
	assert.Equal(t, 1.0, q.TravelCost)
	assert.Equal(t, 4.0, q.NetSavings)
	assert.Equal(t, 83, q.Score)
	assert.Equal(t, domain.DealExcellent, q.Category)
	assert.Equal(t, "Excellent option! Save $5.00 just 2.0 km away (4 min).", q.Rationale)
}

func TestQuoteGoodWithDistanceCaveat(t *testing.T) {
	dest := domain.Coordinates{Longitude: 0.036}
	q := Quote(domain.Coordinates{}, dest, 25, 5, true, Options{})

	assert.Equal(t, 4.0, q.DistanceKm)
	assert.Equal(t, 65, q.Score)
	assert.Equal(t, domain.DealGood, q.Category)
	assert.Equal(t, "Good savings of $5.00, but consider the 4.0 km distance.", q.Rationale)
}

func TestQuoteFairMentionsTravelTime(t *testing.T) {
	// 20 km out: distance and time contribute nothing
	dest := domain.Coordinates{Longitude: 0.18}
	q := Quote(domain.Coordinates{}, dest, 100, 20, true, Options{})

	assert.Equal(t, 20.0, q.DistanceKm)
	assert.Equal(t, 40, q.TravelTimeMin)
	assert.Equal(t, 50, q.Score)
	assert.Equal(t, domain.DealFair, q.Category)
	assert.Equal(t, "Moderate saving, but factor in the travel time (40 min).", q.Rationale)
}

func TestQuoteNotRecommendedWhenTravelCostDominates(t *testing.T) {
	dest := domain.Coordinates{Longitude: 0.18}
	q := Quote(domain.Coordinates{}, dest, 100, 0.5, false, Options{})

	assert.Equal(t, 10.0, q.TravelCost)
	assert.Equal(t, domain.DealNotRecommended, q.Category)
	assert.Equal(t, "Not recommended: travel cost ($10.00) exceeds the saving.", q.Rationale)
	assert.Less(t, q.NetSavings, 0.0)
}

func TestQuoteCustomTravelModel(t *testing.T) {
	dest := domain.Coordinates{Longitude: 0.018}
	q := Quote(domain.Coordinates{}, dest, 25, 5, true, Options{
		AverageSpeedKmh: 60,
		CostPerKm:       2,
	})

	assert.Equal(t, 2, q.TravelTimeMin)
	assert.Equal(t, 4.0, q.TravelCost)
	assert.Equal(t, 1.0, q.NetSavings)
}
