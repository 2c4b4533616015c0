package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/opme-consignado/internal/application/nfesync"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/lock"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/maino"
)

var syncDays int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sincroniza las NF-e emitidas en Maino",
	Long: `Lista en Maino las NF-e emitidas en los últimos --dias, descarga cada XML y
lo carga. Las fallas por nota quedan en "erros"; una falla del listado termina
con error.

Requiere MAINO_BASE_URL y MAINO_API_KEY. Con REDIS_ADDR usa el mismo lock que la API.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().IntVar(&syncDays, "dias", 0, "Días hacia atrás (1..90, default SYNC_DEFAULT_DAYS)")
}

func runSync(cmd *cobra.Command, args []string) error {
	deps, err := openDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer deps.Close()

	cfg := deps.cfg
	if !cfg.Maino.Enabled() {
		return fmt.Errorf("MAINO_BASE_URL y MAINO_API_KEY son obligatorios")
	}
	days := syncDays
	if days == 0 {
		days = cfg.Sync.DefaultDays
	}
	if days < 1 || days > 90 {
		return fmt.Errorf("--dias debe estar entre 1 y 90, recibido %d", days)
	}

	client := maino.NewClient(maino.Config{
		BaseURL:    cfg.Maino.BaseURL,
		APIKey:     cfg.Maino.APIKey,
		Timeout:    cfg.Maino.Timeout(),
		MaxRetries: cfg.Maino.MaxRetries,
	}, deps.log)

	var opts []nfesync.Option
	if cfg.Redis.Addr != "" {
		rdb, err := lock.NewRedisClient(cmd.Context(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		opts = append(opts, nfesync.WithLocker(lock.NewRedisLocker(rdb), cfg.Sync.LockTTL()))
	}

	report := nfesync.NewOrchestrator(client, deps.ingest, deps.log, opts...).SyncWindow(cmd.Context(), days)

	if outputFormat == "table" {
		rows := [][]string{
			{"ENCONTRADAS", "PROCESSADAS", "SAÍDA", "ENTRADA", "DUPLICADAS", "ERROS"},
			{itoa(report.Found), itoa(report.Processed), itoa(report.Outbound), itoa(report.Inbound), itoa(report.Duplicates), itoa(len(report.Errors))},
		}
		if err := printTable(rows); err != nil {
			return err
		}
		for _, e := range report.Errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	} else if err := printJSON(report); err != nil {
		return err
	}

	if report.Failed {
		return fmt.Errorf("sync fallido: %s", report.FatalError)
	}
	return nil
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }

// contextWithTimeout deriva del contexto del comando (Background si no hay).
func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}
