package consignment

import (
	"context"

	"github.com/jhoicas/opme-consignado/internal/domain"
	domconsignment "github.com/jhoicas/opme-consignado/internal/domain/consignment"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	"github.com/jhoicas/opme-consignado/internal/domain/repository"
)

// BalanceUseCase consultas de saldo de consignación. Siempre recalcula desde los movimientos.
type BalanceUseCase struct {
	movRepo repository.MovementRepository
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(movRepo repository.MovementRepository) *BalanceUseCase {
	return &BalanceUseCase{movRepo: movRepo}
}

// Balance saldo por cliente/producto/lote. recipientTaxID vacío = todos los clientes.
func (uc *BalanceUseCase) Balance(ctx context.Context, recipientTaxID string) ([]entity.BalanceEntry, error) {
	movs, err := uc.load(ctx, recipientTaxID)
	if err != nil {
		return nil, err
	}
	return domconsignment.Entries(domconsignment.Aggregate(movs, recipientTaxID)), nil
}

// Summary resumen de estoque consignado de todos los clientes.
func (uc *BalanceUseCase) Summary(ctx context.Context) ([]entity.BalanceEntry, error) {
	return uc.Balance(ctx, "")
}

// ByProduct movimientos de un producto en todos los clientes.
func (uc *BalanceUseCase) ByProduct(ctx context.Context, productCode string) ([]entity.MovementView, error) {
	if productCode == "" {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.load(ctx, "")
	if err != nil {
		return nil, err
	}
	return domconsignment.FilterByProduct(movs, productCode), nil
}

// ByClient movimientos de un cliente.
func (uc *BalanceUseCase) ByClient(ctx context.Context, recipientTaxID string) ([]entity.MovementView, error) {
	if recipientTaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.load(ctx, recipientTaxID)
	if err != nil {
		return nil, err
	}
	return domconsignment.FilterByRecipient(movs, recipientTaxID), nil
}

// Movements listado plano de movimientos, con la cantidad de lote tal como vino en el XML.
func (uc *BalanceUseCase) Movements(ctx context.Context, recipientTaxID string) ([]entity.StoredMovement, error) {
	return uc.load(ctx, recipientTaxID)
}

func (uc *BalanceUseCase) load(ctx context.Context, recipientTaxID string) ([]entity.StoredMovement, error) {
	movs, err := uc.movRepo.AllMovements(ctx, recipientTaxID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "all_movements", Cause: err}
	}
	return movs, nil
}
