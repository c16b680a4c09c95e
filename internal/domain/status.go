// internal/domain/status.go
package domain

// ForecastMethod identifies how a demand forecast was produced
type ForecastMethod string

const (
	MethodInsufficientData      ForecastMethod = "INSUFFICIENT_DATA"
	MethodWeightedMovingAverage ForecastMethod = "WEIGHTED_MOVING_AVERAGE"
)

// AlertType classifies an alert
type AlertType string

const (
	AlertStockoutRisk AlertType = "STOCKOUT_RISK"
	AlertOpportunity  AlertType = "OPPORTUNITY"
)

// AlertSeverity orders alerts by urgency
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// ABCClass is the Pareto rotation class of a product (A = fast movers)
type ABCClass string

const (
	ClassA ABCClass = "A"
	ClassB ABCClass = "B"
	ClassC ABCClass = "C"
)

// AnalysisStatus is the lifecycle state of a stored analysis record
type AnalysisStatus string

const (
	AnalysisPending  AnalysisStatus = "PENDING"
	AnalysisApproved AnalysisStatus = "APPROVED"
	AnalysisRejected AnalysisStatus = "REJECTED"
	AnalysisExecuted AnalysisStatus = "EXECUTED"
)

// AnalysisTerminalStatuses are the states eligible for age-based cleanup
var AnalysisTerminalStatuses = []AnalysisStatus{AnalysisRejected, AnalysisExecuted}

// DealCategory buckets a deal score into a recommendation level
type DealCategory string

const (
	DealExcellent      DealCategory = "Excellent"
	DealGood           DealCategory = "Good"
	DealFair           DealCategory = "Fair"
	DealNotRecommended DealCategory = "Not Recommended"
)
