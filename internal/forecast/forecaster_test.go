package forecast

import (
	"testing"
	"time"

	"github.com/precivox/engine-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history(quantities ...int) []domain.SalesObservation {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]domain.SalesObservation, len(quantities))
	for i, q := range quantities {
		obs[i] = domain.SalesObservation{
			Date:     start.AddDate(0, 0, i),
			Quantity: q,
		}
	}
	return obs
}

func TestProjectInsufficientData(t *testing.T) {
	f := Project(history(5, 6, 7, 8, 9, 10), 7)

	assert.Equal(t, domain.MethodInsufficientData, f.Method)
	assert.Equal(t, 6, f.SampleSize)
	assert.Zero(t, f.DailyRate)
	assert.Zero(t, f.HorizonTotal)
	assert.Zero(t, f.Confidence)
}

func TestProjectEmptyHistory(t *testing.T) {
	f := Project(nil, 7)

	assert.Equal(t, domain.MethodInsufficientData, f.Method)
	assert.Zero(t, f.SampleSize)
}

func TestProjectWeightedMovingAverage(t *testing.T) {
	// Linearly increasing week: weights 1..7 give exactly 336/28 = 12/day
	f := Project(history(8, 9, 10, 11, 12, 13, 14), 7)

	require.Equal(t, domain.MethodWeightedMovingAverage, f.Method)
	assert.InDelta(t, 12.0, f.DailyRate, 1e-9)
	assert.Equal(t, 84, f.HorizonTotal)
	assert.Equal(t, 7, f.SampleSize)

	// Population stddev of 8..14 is 2, so the 95% margin is 3.92
	assert.Equal(t, 80, f.IntervalLow)
	assert.Equal(t, 88, f.IntervalHigh)
}

func TestProjectFavorsRecentDays(t *testing.T) {
	rising := Project(history(1, 2, 3, 4, 5, 6, 7), 7)
	falling := Project(history(7, 6, 5, 4, 3, 2, 1), 7)

	// Same quantities, opposite order: the recency weighting must separate them
	assert.Greater(t, rising.DailyRate, falling.DailyRate)
	assert.Greater(t, rising.DailyRate, 4.0, "rising trend should project above the plain mean")
	assert.Less(t, falling.DailyRate, 4.0, "falling trend should project below the plain mean")
}

func TestProjectIntervalFloorsAtZero(t *testing.T) {
	// One spike in an otherwise dead week: the margin exceeds the total
	f := Project(history(5, 0, 0, 0, 0, 0, 0), 7)

	assert.Equal(t, 0, f.IntervalLow)
	assert.GreaterOrEqual(t, f.IntervalHigh, f.HorizonTotal)
}

func TestProjectConfidenceRamp(t *testing.T) {
	quantities := make([]int, 15)
	for i := range quantities {
		quantities[i] = 10
	}
	f := Project(history(quantities...), 7)

	assert.InDelta(t, 0.5, f.Confidence, 1e-9)
}

func TestProjectConfidenceCapped(t *testing.T) {
	quantities := make([]int, 60)
	for i := range quantities {
		quantities[i] = 10
	}
	f := Project(history(quantities...), 7)

	assert.InDelta(t, 0.95, f.Confidence, 1e-9)
}

func TestProjectScalesWithHorizon(t *testing.T) {
	h := history(10, 10, 10, 10, 10, 10, 10)

	week := Project(h, 7)
	month := Project(h, 30)

	assert.Equal(t, 70, week.HorizonTotal)
	assert.Equal(t, 300, month.HorizonTotal)
	assert.InDelta(t, week.DailyRate, month.DailyRate, 1e-9)
}
