package consignment

import (
	"context"
	"time"

	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	"github.com/jhoicas/opme-consignado/internal/domain/repository"
)

// NFeTxRunner ejecuta una función dentro de una transacción con el repo de NF-e atado a ella.
// Si fn retorna error se hace rollback; en otro caso commit.
type NFeTxRunner interface {
	RunNFe(ctx context.Context, fn func(nfeRepo repository.NFeRepository) error) error
}

// NFeParser convierte el XML crudo en una NF-e estructurada.
type NFeParser interface {
	Parse(raw []byte) (*entity.NFe, error)
}

// BalanceReportGenerator genera los archivos exportables del saldo.
type BalanceReportGenerator interface {
	BalancePDF(ctx context.Context, entries []entity.BalanceEntry, recipientFilter string, generatedAt time.Time) ([]byte, error)
	BalanceXLSX(ctx context.Context, entries []entity.BalanceEntry, generatedAt time.Time) ([]byte, error)
	MovementsXLSX(ctx context.Context, views []entity.MovementView) ([]byte, error)
}
