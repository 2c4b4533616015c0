package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	"github.com/jhoicas/opme-consignado/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo lee la proyección cabecera + ítem sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// AllMovements devuelve todos los movimientos ordenados por fecha y número.
// recipientTaxID vacío = todos los clientes.
func (r *MovementRepo) AllMovements(ctx context.Context, recipientTaxID string) ([]entity.StoredMovement, error) {
	query := `
		SELECT h.numero, h.data_emissao, h.cnpj_destinatario, h.nome_destinatario,
		       i.codigo_produto, i.descricao_produto, i.cfop, i.quantidade, i.lote, i.quantidade_lote
		FROM nfe_item i
		JOIN nfe_header h ON h.id = i.nfe_id`
	var args []any
	if recipientTaxID != "" {
		query += ` WHERE h.cnpj_destinatario = $1`
		args = append(args, recipientTaxID)
	}
	query += ` ORDER BY h.data_emissao, h.numero, i.posicao`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]entity.StoredMovement, 0)
	for rows.Next() {
		var m entity.StoredMovement
		if err := rows.Scan(&m.NFeNumber, &m.IssueDate, &m.RecipientTaxID, &m.RecipientName,
			&m.ProductCode, &m.ProductDescription, &m.CFOP, &m.Quantity, &m.LotID, &m.LotQuantity); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
