// cmd/monitor/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/precivox/engine-go/internal/cache"
	"github.com/precivox/engine-go/internal/config"
	"github.com/precivox/engine-go/internal/monitor"
	"github.com/precivox/engine-go/internal/repository/postgres"
	"github.com/precivox/engine-go/internal/service"
	"github.com/precivox/engine-go/internal/storage"
	"github.com/precivox/engine-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(dbURL string) (*postgres.DB, error) {
	db, err := sqlx.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return postgres.NewDBFromConn(db), nil
}

func buildMonitor(db *postgres.DB, cfg *config.Config) *monitor.Monitor {
	alertCache, err := cache.NewAlertSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("alert summary cache unavailable, continuing without caching")
		alertCache = cache.NewNoopAlertSummaryCache()
	}

	return monitor.New(
		postgres.NewOrganizationRepository(db),
		postgres.NewLocationRepository(db),
		postgres.NewInventoryRepository(db),
		postgres.NewAlertRepository(db),
		postgres.NewAnalysisRepository(db),
		alertCache,
		cfg.Monitor,
	)
}

func printJSON(v interface{}) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("could not load .env file")
	}
	logger.UseConsoleWriter()

	cfg := config.Load()

	app := &cli.App{
		Name:  "monitor",
		Usage: "Stock monitoring and forecast batch engine",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Execute one monitoring cycle and exit",
				Flags: []cli.Flag{newDBURLFlag()},
				Action: func(c *cli.Context) error {
					db, err := openDB(c.String("db-url"))
					if err != nil {
						return err
					}
					defer db.Close()

					report, err := buildMonitor(db, cfg).Run(c.Context)
					if err != nil {
						return err
					}
					return printJSON(report)
				},
			},
			{
				Name:  "loop",
				Usage: "Run monitoring cycles on an interval until interrupted",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "Time between cycles",
						Value: cfg.Monitor.Interval(),
					},
				},
				Action: func(c *cli.Context) error {
					db, err := openDB(c.String("db-url"))
					if err != nil {
						return err
					}
					defer db.Close()

					var archiver monitor.Archiver
					if cfg.Reports.Enabled {
						archiver, err = storage.NewReportArchive(cfg.Reports)
						if err != nil {
							logger.Log.Warn().Err(err).Msg("report archive unavailable, continuing without archiving")
							archiver = nil
						}
					}

					ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
					defer stop()

					err = buildMonitor(db, cfg).Loop(ctx, c.Duration("interval"), archiver)
					if errors.Is(err, context.Canceled) {
						logger.Log.Info().Msg("monitor loop stopped")
						return nil
					}
					return err
				},
			},
			{
				Name:  "refresh",
				Usage: "Run the demand planning cycle (forecasts, reorder points, ABC classes)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "org",
						Usage: "Organization ID to refresh; all active organizations when omitted",
					},
				},
				Action: func(c *cli.Context) error {
					db, err := openDB(c.String("db-url"))
					if err != nil {
						return err
					}
					defer db.Close()

					svc := service.NewForecastService(
						postgres.NewInventoryRepository(db),
						postgres.NewSalesHistoryRepository(db),
						postgres.NewProductRepository(db),
						cfg.Monitor,
					)

					orgIDs := []string{c.String("org")}
					if orgIDs[0] == "" {
						orgs, err := postgres.NewOrganizationRepository(db).ListActive(c.Context)
						if err != nil {
							return fmt.Errorf("failed to enumerate organizations: %w", err)
						}
						orgIDs = orgIDs[:0]
						for _, org := range orgs {
							orgIDs = append(orgIDs, org.ID)
						}
					}

					for _, id := range orgIDs {
						report, err := svc.RefreshOrganization(c.Context, id)
						if err != nil {
							return err
						}
						if err := printJSON(report); err != nil {
							return err
						}
					}
					return nil
				},
			},
			newDemoCommand(cfg),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("monitor command failed")
	}
}
