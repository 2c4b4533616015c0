package repository

import (
	"context"

	"github.com/jhoicas/opme-consignado/internal/domain/entity"
)

// NFeRepository define el puerto de persistencia para cabeceras e ítems de NF-e.
type NFeRepository interface {
	// FindHeaderByNumber devuelve (nil, nil) si la NF-e no existe.
	FindHeaderByNumber(ctx context.Context, number string) (*entity.NFe, error)
	CreateHeader(ctx context.Context, nfe *entity.NFe) error
	CreateItem(ctx context.Context, item *entity.NFeItem) error
}
