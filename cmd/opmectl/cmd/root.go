package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/opme-consignado/internal/application/consignment"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/nfe"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/postgres"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/report"
	"github.com/jhoicas/opme-consignado/pkg/config"
	"github.com/jhoicas/opme-consignado/pkg/logger"
)

var (
	version = "1.0.0"

	// Flags globales
	verbose      bool
	outputFormat string

	// out destino de la salida de los comandos (tests lo reemplazan).
	out io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "opmectl",
	Short: "Herramientas de línea de comandos del estoque consignado OPME",
	Long: `opmectl opera sobre la misma base que la API: interpreta y carga NF-e,
sincroniza con Maino y consulta el saldo de consignación.

Ejemplos:
  # Ver el contenido de una NF-e sin tocar la base
  opmectl parse nota.xml

  # Cargar un directorio de XML
  opmectl ingest notas/

  # Sincronizar los últimos 15 días
  opmectl sync --dias 15

  # Saldo de un cliente en tabla
  opmectl balance --cliente 98765432000100 -f table`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute ejecuta el comando raíz; Ctrl+C cancela el contexto de los comandos.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Logs detallados en stderr")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Formato de salida (json, table)")
}

// runtimeDeps dependencias compartidas por los comandos que usan la base.
type runtimeDeps struct {
	cfg     *config.Config
	log     *logger.Logger
	pool    *pgxpool.Pool
	ingest  *consignment.IngestNFeUseCase
	balance *consignment.BalanceUseCase
	reports *consignment.ReportUseCase
}

func (d *runtimeDeps) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

// newLogger logs a stderr; sin --verbose solo advertencias y errores.
func newLogger() *logger.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})
}

// openDeps carga la configuración, aplica migraciones y abre el pool.
func openDeps(ctx context.Context) (*runtimeDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := newLogger()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	balance := consignment.NewBalanceUseCase(postgres.NewMovementRepository(pool))
	return &runtimeDeps{
		cfg:     cfg,
		log:     log,
		pool:    pool,
		ingest:  consignment.NewIngestNFeUseCase(postgres.NewTxRunner(pool), nfe.NewParser(), log),
		balance: balance,
		reports: consignment.NewReportUseCase(balance, report.NewGenerator()),
	}, nil
}

// collectFiles expande globs y directorios a la lista de archivos .xml.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("patrón inválido %s: %w", arg, err)
		}
		if len(matches) == 0 {
			matches = []string{arg}
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				return nil, fmt.Errorf("archivo no encontrado: %s", m)
			}
			if !info.IsDir() {
				files = append(files, m)
				continue
			}
			err = filepath.WalkDir(m, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isXML(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return files, nil
}

func isXML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}
