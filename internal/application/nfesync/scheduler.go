package nfesync

import (
	"context"
	"time"
)

// RunPeriodic ejecuta SyncWindow cada interval hasta que ctx se cancele.
// La primera corrida ocurre tras el primer tick.
func (o *Orchestrator) RunPeriodic(ctx context.Context, interval time.Duration, daysBack int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	o.log.Info().Dur("intervalo", interval).Int("dias", daysBack).Msg("sync periódico activo")
	for {
		select {
		case <-ctx.Done():
			o.log.Info().Msg("sync periódico detenido")
			return
		case <-ticker.C:
			report := o.SyncWindow(ctx, daysBack)
			if report.Failed {
				o.log.Warn().Str("erro", report.FatalError).Msg("corrida periódica fallida")
			}
		}
	}
}
