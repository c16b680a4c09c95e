package forecast

import (
	"math"

	"github.com/precivox/engine-go/internal/domain"
)

const (
	// minObservations is the hard floor: with less than one week of history
	// no extrapolation is attempted.
	minObservations = 7

	// windowSize is the number of most recent observations averaged.
	windowSize = 7

	confidenceCap      = 0.95
	confidenceRampDays = 30.0

	// zScore95 is the normal z-value for a 95% interval.
	zScore95 = 1.96
)

// Project turns an ordered sales history (oldest first) into a demand
// estimate for the given horizon in days. Pure function; malformed or empty
// input yields the insufficient-data forecast, never an error.
func Project(history []domain.SalesObservation, horizonDays int) domain.DemandForecast {
	if len(history) < minObservations {
		return domain.DemandForecast{
			HorizonDays: horizonDays,
			Method:      domain.MethodInsufficientData,
			SampleSize:  len(history),
		}
	}

	dailyRate := weightedMovingAverage(history, windowSize)
	horizonTotal := int(math.Round(dailyRate * float64(horizonDays)))

	// 95% interval from the population standard deviation of the full history
	margin := populationStdDev(history) * zScore95

	return domain.DemandForecast{
		DailyRate:    dailyRate,
		HorizonDays:  horizonDays,
		HorizonTotal: horizonTotal,
		IntervalLow:  int(math.Max(0, math.Round(float64(horizonTotal)-margin))),
		IntervalHigh: int(math.Round(float64(horizonTotal) + margin)),
		Confidence:   math.Min(confidenceCap, float64(len(history))/confidenceRampDays),
		Method:       domain.MethodWeightedMovingAverage,
		SampleSize:   len(history),
	}
}

// weightedMovingAverage averages the last window observations with linearly
// increasing weights: the i-th sample (1-indexed, oldest to newest) weighs i,
// so the most recent day has window times the influence of the oldest.
func weightedMovingAverage(history []domain.SalesObservation, window int) float64 {
	if window > len(history) {
		window = len(history)
	}
	recent := history[len(history)-window:]

	var weightedSum, weightTotal float64
	for i, obs := range recent {
		weight := float64(i + 1)
		weightedSum += float64(obs.Quantity) * weight
		weightTotal += weight
	}

	return weightedSum / weightTotal
}

// populationStdDev computes the population standard deviation of the
// observation quantities.
func populationStdDev(history []domain.SalesObservation) float64 {
	n := float64(len(history))

	var sum float64
	for _, obs := range history {
		sum += float64(obs.Quantity)
	}
	mean := sum / n

	var variance float64
	for _, obs := range history {
		diff := float64(obs.Quantity) - mean
		variance += diff * diff
	}
	variance /= n

	return math.Sqrt(variance)
}
