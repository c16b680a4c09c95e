package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/precivox/engine-go/internal/domain"
	"github.com/precivox/engine-go/internal/service"
)

type DealHandler struct {
	service *service.DealService
}

func NewDealHandler(service *service.DealService) *DealHandler {
	return &DealHandler{service: service}
}

type scoreDealRequest struct {
	Origin      *domain.Coordinates `json:"origin" binding:"required"`
	Destination *domain.Coordinates `json:"destination" binding:"required"`
	Price       float64             `json:"price" binding:"required,gt=0"`
	Savings     float64             `json:"savings"`
	Available   *bool               `json:"available"`

	// Optional travel-model overrides
	AverageSpeedKmh float64 `json:"average_speed_kmh"`
	CostPerKm       float64 `json:"cost_per_km"`
}

// ScoreDeal handles POST /api/v1/deals/score
func (h *DealHandler) ScoreDeal(c *gin.Context) {
	var req scoreDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	quote := h.service.ScoreWithTravelModel(*req.Origin, *req.Destination, req.Price, req.Savings,
		available, req.AverageSpeedKmh, req.CostPerKm)
	c.JSON(http.StatusOK, quote)
}
