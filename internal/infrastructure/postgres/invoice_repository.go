package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/opme-consignado/internal/domain"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	"github.com/jhoicas/opme-consignado/internal/domain/repository"
)

var _ repository.NFeRepository = (*NFeRepo)(nil)

// NFeRepo implementación de NFeRepository (usable con pool o tx).
type NFeRepo struct {
	q Querier
}

// NewNFeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNFeRepository(q Querier) *NFeRepo {
	return &NFeRepo{q: q}
}

// FindHeaderByNumber busca la cabecera por número; (nil, nil) si no existe.
func (r *NFeRepo) FindHeaderByNumber(ctx context.Context, number string) (*entity.NFe, error) {
	const query = `
		SELECT id, numero, chave_acesso, data_emissao, cnpj_emitente, nome_emitente,
		       cnpj_destinatario, nome_destinatario, xml_digest, created_at
		FROM nfe_header WHERE numero = $1`
	var n entity.NFe
	var accessKey, digest *string
	err := r.q.QueryRow(ctx, query, number).Scan(
		&n.ID, &n.Number, &accessKey, &n.IssueDate, &n.IssuerTaxID, &n.IssuerName,
		&n.RecipientTaxID, &n.RecipientName, &digest, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nfe header: %w", err)
	}
	n.AccessKey = derefStr(accessKey)
	n.XMLDigest = derefStr(digest)
	return &n, nil
}

// CreateHeader persiste la cabecera. Un número repetido devuelve domain.ErrDuplicate.
func (r *NFeRepo) CreateHeader(ctx context.Context, n *entity.NFe) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	const query = `
		INSERT INTO nfe_header (id, numero, chave_acesso, data_emissao, cnpj_emitente, nome_emitente,
		                        cnpj_destinatario, nome_destinatario, xml_digest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.Number, nullIfEmpty(n.AccessKey), n.IssueDate, n.IssuerTaxID, n.IssuerName,
		n.RecipientTaxID, n.RecipientName, nullIfEmpty(n.XMLDigest), n.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("nfe %s already exists: %w", n.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert nfe header: %w", err)
	}
	return nil
}

// CreateItem persiste una línea; NFeID debe apuntar a una cabecera de la misma transacción.
func (r *NFeRepo) CreateItem(ctx context.Context, item *entity.NFeItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO nfe_item (id, nfe_id, posicao, codigo_produto, descricao_produto, cfop, unidade,
		                      quantidade, valor_unitario, lote, quantidade_lote)
		VALUES ($1, $2, (SELECT COUNT(*) + 1 FROM nfe_item WHERE nfe_id = $2), $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.NFeID, item.ProductCode, item.ProductDescription, item.CFOP, item.Unit,
		item.Quantity, item.UnitValue, item.LotID, item.LotQuantity,
	)
	if err != nil {
		return fmt.Errorf("insert nfe item: %w", err)
	}
	return nil
}
