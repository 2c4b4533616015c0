package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgnfe "github.com/jhoicas/opme-consignado/pkg/nfe"
)

var (
	balanceClient string
	balancePDF    string
	balanceXLSX   string
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Saldo de consignación por cliente, producto y lote",
	Long: `Calcula el saldo (5102/6102 menos 5405/6405) desde los movimientos guardados.

Ejemplos:
  opmectl balance
  opmectl balance --cliente 98.765.432/0001-00 -f table
  opmectl balance --pdf saldo.pdf --xlsx saldo.xlsx`,
	Args: cobra.NoArgs,
	RunE: runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().StringVar(&balanceClient, "cliente", "", "CNPJ/CPF del cliente (con o sin máscara)")
	balanceCmd.Flags().StringVar(&balancePDF, "pdf", "", "Escribe el reporte PDF en esta ruta")
	balanceCmd.Flags().StringVar(&balanceXLSX, "xlsx", "", "Escribe la planilla XLSX en esta ruta")
}

func runBalance(cmd *cobra.Command, args []string) error {
	client := pkgnfe.OnlyDigits(balanceClient)
	if balanceClient != "" && !pkgnfe.IsTaxID(client) {
		return fmt.Errorf("--cliente inválido: %q", balanceClient)
	}

	deps, err := openDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer deps.Close()

	ctx := cmd.Context()
	if balancePDF != "" {
		b, err := deps.reports.SummaryPDF(ctx, client)
		if err != nil {
			return err
		}
		if err := os.WriteFile(balancePDF, b, 0o644); err != nil {
			return err
		}
	}
	if balanceXLSX != "" {
		b, err := deps.reports.SummaryXLSX(ctx, client)
		if err != nil {
			return err
		}
		if err := os.WriteFile(balanceXLSX, b, 0o644); err != nil {
			return err
		}
	}

	entries, err := deps.balance.Balance(ctx, client)
	if err != nil {
		return err
	}
	if outputFormat != "table" {
		return printJSON(entries)
	}
	rows := [][]string{{"CLIENTE", "PRODUTO", "DESCRIÇÃO", "LOTE", "SALDO"}}
	for _, e := range entries {
		rows = append(rows, []string{e.RecipientTaxID, e.ProductCode, e.ProductDescription, e.LotID, e.Balance.String()})
	}
	return printTable(rows)
}
