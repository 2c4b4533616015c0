package consignment

import (
	"context"
	"fmt"
	"time"
)

// ReportUseCase exporta el saldo a PDF o XLSX.
type ReportUseCase struct {
	balance   *BalanceUseCase
	generator BalanceReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(balance *BalanceUseCase, generator BalanceReportGenerator) *ReportUseCase {
	return &ReportUseCase{balance: balance, generator: generator, now: time.Now}
}

// SummaryPDF PDF del saldo; recipientTaxID vacío = todos los clientes.
func (uc *ReportUseCase) SummaryPDF(ctx context.Context, recipientTaxID string) ([]byte, error) {
	entries, err := uc.balance.Balance(ctx, recipientTaxID)
	if err != nil {
		return nil, err
	}
	b, err := uc.generator.BalancePDF(ctx, entries, recipientTaxID, uc.now())
	if err != nil {
		return nil, fmt.Errorf("generar pdf de saldo: %w", err)
	}
	return b, nil
}

// SummaryXLSX planilla del saldo.
func (uc *ReportUseCase) SummaryXLSX(ctx context.Context, recipientTaxID string) ([]byte, error) {
	entries, err := uc.balance.Balance(ctx, recipientTaxID)
	if err != nil {
		return nil, err
	}
	b, err := uc.generator.BalanceXLSX(ctx, entries, uc.now())
	if err != nil {
		return nil, fmt.Errorf("generar xlsx de saldo: %w", err)
	}
	return b, nil
}

// ClientMovementsXLSX planilla de movimientos de un cliente.
func (uc *ReportUseCase) ClientMovementsXLSX(ctx context.Context, recipientTaxID string) ([]byte, error) {
	views, err := uc.balance.ByClient(ctx, recipientTaxID)
	if err != nil {
		return nil, err
	}
	b, err := uc.generator.MovementsXLSX(ctx, views)
	if err != nil {
		return nil, fmt.Errorf("generar xlsx de movimientos: %w", err)
	}
	return b, nil
}
