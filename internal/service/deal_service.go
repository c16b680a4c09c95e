// internal/service/deal_service.go
package service

import (
	"github.com/precivox/engine-go/internal/config"
	"github.com/precivox/engine-go/internal/dealscore"
	"github.com/precivox/engine-go/internal/domain"
)

// DealService evaluates cheaper offers at other locations against the travel
// cost of reaching them. Pure computation; the travel model comes from config.
type DealService struct {
	opts dealscore.Options
}

func NewDealService(cfg config.DealConfig) *DealService {
	return &DealService{
		opts: dealscore.Options{
			AverageSpeedKmh: cfg.AverageSpeedKmh,
			CostPerKm:       cfg.CostPerKm,
		},
	}
}

func (s *DealService) Score(origin, destination domain.Coordinates, price, savings float64, available bool) domain.DealQuote {
	return dealscore.Quote(origin, destination, price, savings, available, s.opts)
}

// ScoreWithTravelModel overrides the configured speed and per-km cost for one
// evaluation. Non-positive overrides keep the configured values.
func (s *DealService) ScoreWithTravelModel(origin, destination domain.Coordinates, price, savings float64,
	available bool, speedKmh, costPerKm float64) domain.DealQuote {

	opts := s.opts
	if speedKmh > 0 {
		opts.AverageSpeedKmh = speedKmh
	}
	if costPerKm > 0 {
		opts.CostPerKm = costPerKm
	}
	return dealscore.Quote(origin, destination, price, savings, available, opts)
}
