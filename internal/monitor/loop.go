// internal/monitor/loop.go
package monitor

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Archiver persists a run report somewhere durable. The object-storage
// implementation lives in internal/storage; a nil archiver disables it.
type Archiver interface {
	ArchiveReport(ctx context.Context, report *RunReport) error
}

// Loop runs an immediate cycle and then one per interval until the context is
// cancelled. Ticks that land while a run is still in flight are dropped by
// the ticker, so runs never overlap. Run failures are logged; the loop keeps
// going.
func (m *Monitor) Loop(ctx context.Context, interval time.Duration, archiver Archiver) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := m.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("monitor run failed")
		} else if archiver != nil {
			if err := archiver.ArchiveReport(ctx, report); err != nil {
				log.Warn().Err(err).Msg("failed to archive run report")
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
