// internal/domain/models.go
package domain

import (
	"encoding/json"
	"time"
)

// Organization represents a retail organization (a market chain) being monitored
type Organization struct {
	ID     string `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Active bool   `json:"active" db:"active"`
}

// Location represents a physical store location belonging to an organization
type Location struct {
	ID             string  `json:"id" db:"id"`
	OrganizationID string  `json:"organization_id" db:"organization_id"`
	Name           string  `json:"name" db:"name"`
	Active         bool    `json:"active" db:"active"`
	Latitude       float64 `json:"latitude" db:"latitude"`
	Longitude      float64 `json:"longitude" db:"longitude"`
}

// SalesObservation is one historical demand sample for a (product, location) pair.
// Append-only; the engine never mutates history.
type SalesObservation struct {
	Date     time.Time `json:"date" db:"sale_date"`
	Quantity int       `json:"quantity" db:"quantity"`
}

// DemandForecast is the output of the demand forecaster. Derived, recomputed
// per planning cycle; never stored as a first-class entity.
type DemandForecast struct {
	DailyRate    float64        `json:"daily_rate"`
	HorizonDays  int            `json:"horizon_days"`
	HorizonTotal int            `json:"horizon_total"`
	IntervalLow  int            `json:"interval_low"`
	IntervalHigh int            `json:"interval_high"`
	Confidence   float64        `json:"confidence"`
	Method       ForecastMethod `json:"method"`
	SampleSize   int            `json:"sample_size"`
}

// ReorderPolicy holds the derived replenishment attributes for a product/location pair
type ReorderPolicy struct {
	ReorderPoint int      `json:"reorder_point"`
	SafetyStock  int      `json:"safety_stock"`
	LeadTimeDays int      `json:"lead_time_days"`
	ABCClass     ABCClass `json:"abc_class"`
}

// InventoryPosition is the live stock snapshot for a product at a location.
// Owned by the inventory subsystem; read-only to this engine.
type InventoryPosition struct {
	ProductID      string `json:"product_id" db:"product_id"`
	LocationID     string `json:"location_id" db:"location_id"`
	QuantityOnHand int    `json:"quantity_on_hand" db:"quantity_on_hand"`
}

// StockEntry is an inventory position joined with the product attributes the
// monitor and the planning cycle need.
type StockEntry struct {
	InventoryPosition
	ProductName string `json:"product_name" db:"product_name"`
	// Demand7d/Demand30d are the persisted forecast totals; 0 means no
	// forecast has been computed yet and the product is not monitorable.
	Demand7d     int     `json:"demand_7d" db:"demand_7d"`
	Demand30d    int     `json:"demand_30d" db:"demand_30d"`
	ReorderPoint int     `json:"reorder_point" db:"reorder_point"`
	TurnoverRate float64 `json:"turnover_rate" db:"turnover_rate"`
}

// ForecastFields is the product write-back payload of the planning cycle
type ForecastFields struct {
	Demand7d     int       `json:"demand_7d" db:"demand_7d"`
	Demand30d    int       `json:"demand_30d" db:"demand_30d"`
	ReorderPoint int       `json:"reorder_point" db:"reorder_point"`
	TurnoverRate float64   `json:"turnover_rate" db:"turnover_rate"`
	ABCClass     ABCClass  `json:"abc_class" db:"abc_class"`
	LastAIUpdate time.Time `json:"last_ai_update" db:"last_ai_update"`
}

// Alert is a prioritized, time-bounded notification produced by the monitor
type Alert struct {
	ID                string          `json:"id" db:"id"`
	OrganizationID    string          `json:"organization_id" db:"organization_id"`
	LocationID        string          `json:"location_id" db:"location_id"`
	ProductID         string          `json:"product_id" db:"product_id"`
	Type              AlertType       `json:"type" db:"type"`
	Severity          AlertSeverity   `json:"severity" db:"severity"`
	Title             string          `json:"title" db:"title"`
	Description       string          `json:"description" db:"description"`
	RecommendedAction string          `json:"recommended_action" db:"recommended_action"`
	ActionLink        string          `json:"action_link" db:"action_link"`
	Metadata          json.RawMessage `json:"metadata,omitempty" db:"metadata"`
	Read              bool            `json:"read" db:"read"`
	ReadAt            *time.Time      `json:"read_at,omitempty" db:"read_at"`
	ExpiresAt         *time.Time      `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

// AlertFilter narrows alert queries
type AlertFilter struct {
	OrganizationID string        `json:"organization_id"`
	LocationID     string        `json:"location_id"`
	Type           AlertType     `json:"type"`
	Severity       AlertSeverity `json:"severity"`
	UnreadOnly     bool          `json:"unread_only"`
	Page           int           `json:"page"`
	PageSize       int           `json:"page_size"`
}

// AlertSummary is the unread alert count for one severity
type AlertSummary struct {
	Severity AlertSeverity `json:"severity" db:"severity"`
	Count    int           `json:"count" db:"count"`
}

// Analysis is a stored recommendation produced elsewhere in the platform.
// The monitor only garbage-collects stale rows; it never creates them.
type Analysis struct {
	ID             string         `json:"id" db:"id"`
	OrganizationID string         `json:"organization_id" db:"organization_id"`
	Type           string         `json:"type" db:"type"`
	Status         AnalysisStatus `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty" db:"expires_at"`
}

// Coordinates is a WGS84 latitude/longitude pair
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DealQuote is the computed cost-benefit evaluation of traveling to a cheaper
// offer. Pure value object, never persisted.
type DealQuote struct {
	Origin        Coordinates  `json:"origin"`
	Destination   Coordinates  `json:"destination"`
	Price         float64      `json:"price"`
	Savings       float64      `json:"savings"`
	DistanceKm    float64      `json:"distance_km"`
	TravelTimeMin int          `json:"travel_time_min"`
	TravelCost    float64      `json:"travel_cost"`
	NetSavings    float64      `json:"net_savings"`
	Score         int          `json:"score"`
	Category      DealCategory `json:"category"`
	Rationale     string       `json:"rationale"`
}
