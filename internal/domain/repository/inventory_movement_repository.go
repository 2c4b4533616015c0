package repository

import (
	"context"

	"github.com/jhoicas/opme-consignado/internal/domain/entity"
)

// MovementRepository lee la proyección cabecera + ítem que alimenta los saldos.
type MovementRepository interface {
	// AllMovements devuelve todos los movimientos; recipientTaxID vacío = sin filtro.
	AllMovements(ctx context.Context, recipientTaxID string) ([]entity.StoredMovement, error)
}
