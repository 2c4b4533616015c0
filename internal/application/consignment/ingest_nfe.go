package consignment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jhoicas/opme-consignado/internal/domain"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	"github.com/jhoicas/opme-consignado/internal/domain/repository"
	"github.com/jhoicas/opme-consignado/pkg/logger"
)

// IngestResult resultado de la ingesta. Created=false significa que el número ya existía
// y no se escribió nada.
type IngestResult struct {
	Created bool
	Number  string
	NFe     *entity.NFe
}

// IngestNFeUseCase registra NF-e de consignación: a lo sumo una vez por número,
// cabecera y líneas en una sola transacción.
type IngestNFeUseCase struct {
	txRunner NFeTxRunner
	parser   NFeParser
	log      *logger.Logger
}

// NewIngestNFeUseCase construye el caso de uso.
func NewIngestNFeUseCase(txRunner NFeTxRunner, parser NFeParser, log *logger.Logger) *IngestNFeUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &IngestNFeUseCase{txRunner: txRunner, parser: parser, log: log.Component("ingest")}
}

// UploadXML interpreta el XML y lo ingiere. Un XML inválido devuelve *domain.MalformedInputError
// sin tocar el almacenamiento.
func (uc *IngestNFeUseCase) UploadXML(ctx context.Context, raw []byte) (IngestResult, error) {
	inv, err := uc.parser.Parse(raw)
	if err != nil {
		uc.log.Warn().Err(err).Msg("xml de nfe rechazado")
		return IngestResult{}, err
	}
	return uc.Ingest(ctx, inv)
}

// Ingest persiste la NF-e si su número no existe. Cualquier falla de escritura revierte
// la transacción completa y se devuelve como *domain.PersistenceError.
func (uc *IngestNFeUseCase) Ingest(ctx context.Context, inv *entity.NFe) (IngestResult, error) {
	if inv == nil || inv.Number == "" {
		return IngestResult{}, domain.ErrInvalidInput
	}
	res := IngestResult{Number: inv.Number, NFe: inv}

	// Las escrituras trabajan sobre copias: la NF-e recibida no se modifica.
	header := *inv
	header.ID = uuid.New().String()
	header.Items = nil

	duplicate := false
	err := uc.txRunner.RunNFe(ctx, func(nfeRepo repository.NFeRepository) error {
		existing, err := nfeRepo.FindHeaderByNumber(ctx, inv.Number)
		if err != nil {
			return err
		}
		if existing != nil {
			duplicate = true
			return nil
		}

		if err := nfeRepo.CreateHeader(ctx, &header); err != nil {
			return err
		}
		for _, it := range inv.Items {
			item := it
			item.ID = ""
			item.NFeID = header.ID
			if err := nfeRepo.CreateItem(ctx, &item); err != nil {
				return err
			}
		}
		return nil
	})

	switch {
	case err == nil && duplicate:
		uc.log.Warn().Str("numero", inv.Number).Msg("nfe ya registrada, se ignora")
		return res, nil
	case err == nil:
		res.Created = true
		uc.log.Info().
			Str("numero", inv.Number).
			Str("cnpj_destinatario", inv.RecipientTaxID).
			Int("itens", len(inv.Items)).
			Msg("nfe registrada")
		return res, nil
	case errors.Is(err, domain.ErrDuplicate):
		// Otra carga concurrente insertó el mismo número entre la consulta y el insert.
		uc.log.Warn().Str("numero", inv.Number).Msg("nfe insertada concurrentemente, se ignora")
		return res, nil
	default:
		uc.log.Error().Err(err).Str("numero", inv.Number).Msg("falla al registrar nfe, rollback")
		return IngestResult{}, &domain.PersistenceError{Op: "ingest_nfe", Cause: err}
	}
}
