// cmd/monitor/demo.go
package main

import (
	"time"

	"github.com/precivox/engine-go/internal/config"
	"github.com/precivox/engine-go/internal/domain"
	"github.com/precivox/engine-go/internal/monitor"
	"github.com/precivox/engine-go/internal/repository/memory"
	"github.com/precivox/engine-go/internal/service"
	"github.com/urfave/cli/v2"
)

// newDemoCommand wires a full cycle against the in-memory store: seed
// synthetic data, run the planning cycle, run one monitoring cycle, print
// what came out. No database required.
func newDemoCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Run one full cycle against synthetic in-memory data",
		Action: func(c *cli.Context) error {
			store := seedDemoStore()

			planner := service.NewForecastService(store, store, store, cfg.Monitor)
			planReport, err := planner.RefreshOrganization(c.Context, "demo-org")
			if err != nil {
				return err
			}
			if err := printJSON(planReport); err != nil {
				return err
			}

			mon := monitor.New(store, store, store, store, store, nil, cfg.Monitor)
			runReport, err := mon.Run(c.Context)
			if err != nil {
				return err
			}
			if err := printJSON(runReport); err != nil {
				return err
			}

			return printJSON(store.Alerts())
		},
	}
}

func seedDemoStore() *memory.Store {
	store := memory.NewStore()

	store.AddOrganization(domain.Organization{ID: "demo-org", Name: "Demo Market", Active: true})
	store.AddLocation(domain.Location{
		ID:             "loc-centro",
		OrganizationID: "demo-org",
		Name:           "Centro",
		Active:         true,
		Latitude:       -23.5505,
		Longitude:      -46.6333,
	})

	// A healthy position, a near-stockout, and one too new to forecast
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-rice", LocationID: "loc-centro", QuantityOnHand: 120},
		ProductName:       "Rice 5kg",
	})
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-milk", LocationID: "loc-centro", QuantityOnHand: 4},
		ProductName:       "Whole Milk 1L",
	})
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-water", LocationID: "loc-centro", QuantityOnHand: 50},
		ProductName:       "Sparkling Water 500ml",
	})

	store.SeedSyntheticSales("prod-rice", "loc-centro", 30, 12, 1)
	store.SeedSyntheticSales("prod-milk", "loc-centro", 30, 9, 2)

	// Only three days of history: stays below the forecast floor
	today := time.Now().Truncate(24 * time.Hour)
	store.AddSales("prod-water", "loc-centro", []domain.SalesObservation{
		{Date: today.AddDate(0, 0, -3), Quantity: 6},
		{Date: today.AddDate(0, 0, -2), Quantity: 8},
		{Date: today.AddDate(0, 0, -1), Quantity: 7},
	})

	return store
}
