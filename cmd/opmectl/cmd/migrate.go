package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/opme-consignado/internal/infrastructure/postgres"
	"github.com/jhoicas/opme-consignado/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones de la base",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return err
		}
		fmt.Fprintln(out, "migraciones aplicadas")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
