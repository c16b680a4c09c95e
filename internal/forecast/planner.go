package forecast

import (
	"math"

	"github.com/precivox/engine-go/internal/domain"
)

const (
	// DefaultLeadTimeDays is the replenishment lead time assumed when none
	// is configured for a product.
	DefaultLeadTimeDays = 5

	// safetyFactor is the share of weekly demand held as safety stock.
	safetyFactor = 0.3

	// ABC turnover thresholds: A = fast movers (~top 20%), B = medium (~30%),
	// C = slow movers (~50%).
	classAThreshold = 6.0
	classBThreshold = 3.0
)

// ReorderPoint returns the stock level at which replenishment should be
// triggered: lead-time demand plus a 30%-of-weekly-demand safety buffer.
// A zero daily rate yields 0, which consumers treat as "never flag".
func ReorderPoint(dailyRate float64, leadTimeDays int) int {
	if leadTimeDays <= 0 {
		leadTimeDays = DefaultLeadTimeDays
	}

	leadTimeDemand := dailyRate * float64(leadTimeDays)
	safetyStock := dailyRate * 7 * safetyFactor

	return int(math.Ceil(leadTimeDemand + safetyStock))
}

// SafetyStock returns the buffer quantity held above lead-time demand.
func SafetyStock(dailyRate float64) int {
	return int(math.Ceil(dailyRate * 7 * safetyFactor))
}

// ClassifyABC buckets a product by turnover ratio (period sales divided by
// average inventory).
func ClassifyABC(turnover float64) domain.ABCClass {
	switch {
	case turnover >= classAThreshold:
		return domain.ClassA
	case turnover >= classBThreshold:
		return domain.ClassB
	default:
		return domain.ClassC
	}
}

// Plan assembles the full reorder policy for a product/location pair.
func Plan(dailyRate float64, leadTimeDays int, turnover float64) domain.ReorderPolicy {
	if leadTimeDays <= 0 {
		leadTimeDays = DefaultLeadTimeDays
	}

	return domain.ReorderPolicy{
		ReorderPoint: ReorderPoint(dailyRate, leadTimeDays),
		SafetyStock:  SafetyStock(dailyRate),
		LeadTimeDays: leadTimeDays,
		ABCClass:     ClassifyABC(turnover),
	}
}
