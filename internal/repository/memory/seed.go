// internal/repository/memory/seed.go
package memory

import (
	"math"
	"math/rand"
	"time"

	"github.com/precivox/engine-go/internal/domain"
)

const weekendBoost = 1.3

// SeedSyntheticSales generates days of plausible daily history for a
// product/location pair: base quantity with up to 30% noise and a weekend
// uplift. Deterministic for a given seed so demo runs are reproducible.
func (s *Store) SeedSyntheticSales(productID, locationID string, days, baseQty int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	today := time.Now().Truncate(24 * time.Hour)

	obs := make([]domain.SalesObservation, 0, days)
	for i := days; i > 0; i-- {
		date := today.AddDate(0, 0, -i)

		qty := float64(baseQty) * (0.7 + rng.Float64()*0.6)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			qty *= weekendBoost
		}

		obs = append(obs, domain.SalesObservation{
			Date:     date,
			Quantity: int(math.Round(qty)),
		})
	}

	s.AddSales(productID, locationID, obs)
}
