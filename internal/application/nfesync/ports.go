package nfesync

import (
	"context"
	"time"

	"github.com/jhoicas/opme-consignado/internal/application/consignment"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
)

// InvoiceIssuer servicio remoto de emisión de NF-e (Maino).
type InvoiceIssuer interface {
	// ListIssued lista las notas emitidas en [start, end], en el orden del emisor.
	ListIssued(ctx context.Context, start, end time.Time) ([]entity.IssuedNFeRef, error)
	// FetchXML descarga el XML autorizado de una nota.
	FetchXML(ctx context.Context, accessKey string) ([]byte, error)
}

// Ingester ingiere el XML descargado por el mismo camino que el upload manual.
type Ingester interface {
	UploadXML(ctx context.Context, raw []byte) (consignment.IngestResult, error)
}

// Locker garantiza una sola corrida de sincronización a la vez.
// Acquire devuelve domain.ErrSyncInProgress si otra corrida tiene el lock.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}
