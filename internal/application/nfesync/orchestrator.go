// Package nfesync sincroniza las NF-e emitidas en el servicio remoto con el registro local.
package nfesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/opme-consignado/internal/domain"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	"github.com/jhoicas/opme-consignado/pkg/logger"
)

// LockKey clave del lock distribuido de la sincronización.
const LockKey = "opme:nfesync:lock"

// Orchestrator ejecuta una corrida de sincronización:
//
//	Lock → Listado del emisor → por nota: descarga XML → ingesta → tally entrada/saída
//
// El listado es la única falla fatal; cualquier error por nota se registra en el
// reporte y la corrida sigue con la siguiente.
type Orchestrator struct {
	issuer   InvoiceIssuer
	ingester Ingester
	locker   Locker // opcional
	lockTTL  time.Duration
	now      func() time.Time
	log      *logger.Logger
}

// Option configura el orquestador.
type Option func(*Orchestrator)

// WithLocker activa el lock de corrida única.
func WithLocker(l Locker, ttl time.Duration) Option {
	return func(o *Orchestrator) {
		o.locker = l
		o.lockTTL = ttl
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator construye el orquestador con sus dependencias.
func NewOrchestrator(issuer InvoiceIssuer, ingester Ingester, log *logger.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = logger.Nop()
	}
	o := &Orchestrator{
		issuer:   issuer,
		ingester: ingester,
		lockTTL:  10 * time.Minute,
		now:      time.Now,
		log:      log.Component("nfesync"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SyncWindow sincroniza las notas emitidas en los últimos daysBack días. Siempre devuelve
// un reporte; Failed=true indica que no se pudo listar y no se procesó ninguna nota.
func (o *Orchestrator) SyncWindow(ctx context.Context, daysBack int) *entity.SyncReport {
	end := o.now()
	report := &entity.SyncReport{
		WindowStart: end.AddDate(0, 0, -daysBack),
		WindowEnd:   end,
		Errors:      []string{},
		StartedAt:   end,
	}
	defer func() { report.FinishedAt = o.now() }()

	if daysBack < 1 {
		o.fail(report, fmt.Errorf("%w: dias deve ser >= 1, recebido %d", domain.ErrInvalidInput, daysBack))
		return report
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 0. Lock de corrida única (si está configurado)
	// ═══════════════════════════════════════════════════════════════════════════
	if o.locker != nil {
		release, err := o.locker.Acquire(ctx, LockKey, o.lockTTL)
		if err != nil {
			if errors.Is(err, domain.ErrSyncInProgress) {
				report.InProgress = true
				err = fmt.Errorf("sync já em execução: %w", err)
			}
			o.fail(report, err)
			return report
		}
		defer func() {
			if rErr := release(context.Background()); rErr != nil {
				o.log.Warn().Err(rErr).Msg("no se pudo liberar el lock de sync")
			}
		}()
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 1. Listado de notas emitidas en la ventana (fatal si falla)
	// ═══════════════════════════════════════════════════════════════════════════
	refs, err := o.issuer.ListIssued(ctx, report.WindowStart, report.WindowEnd)
	if err != nil {
		o.fail(report, fmt.Errorf("listar nfes emitidas: %w", err))
		return report
	}
	report.Found = len(refs)
	o.log.Info().
		Int("nfes_encontradas", report.Found).
		Time("inicio", report.WindowStart).
		Time("fim", report.WindowEnd).
		Msg("listado del emisor obtenido")

	// ═══════════════════════════════════════════════════════════════════════════
	// 2. Por nota, en el orden del listado: descarga → ingesta → tally
	// ═══════════════════════════════════════════════════════════════════════════
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			report.AddError(fmt.Sprintf("sync cancelado antes de processar %d nfes: %v", len(refs)-i, err))
			break
		}
		o.processOne(ctx, ref, report)
	}

	o.log.Info().
		Int("nfes_encontradas", report.Found).
		Int("nfes_processadas", report.Processed).
		Int("nfes_saida", report.Outbound).
		Int("nfes_entrada", report.Inbound).
		Int("erros", len(report.Errors)).
		Msg("sync finalizado")
	return report
}

func (o *Orchestrator) processOne(ctx context.Context, ref entity.IssuedNFeRef, report *entity.SyncReport) {
	if ref.AccessKey == "" {
		report.AddError(fmt.Sprintf("nfe %s: chave de acesso ausente", ref.Number))
		return
	}

	raw, err := o.issuer.FetchXML(ctx, ref.AccessKey)
	if err != nil {
		o.log.Warn().Err(err).Str("chave", ref.AccessKey).Msg("falla al descargar xml")
		report.AddError(fmt.Sprintf("%s: falha ao baixar XML: %v", ref.AccessKey, err))
		return
	}

	res, err := o.ingester.UploadXML(ctx, raw)
	if err != nil {
		o.log.Warn().Err(err).Str("chave", ref.AccessKey).Msg("falla al ingerir xml")
		report.AddError(fmt.Sprintf("%s: %v", ref.AccessKey, err))
		return
	}

	report.Processed++
	if !res.Created {
		report.Duplicates++
	}

	cfop := ref.CFOP
	if cfop == "" {
		cfop = res.NFe.LeadingCFOP()
	}
	if isOutboundCFOP(cfop) {
		report.Outbound++
	} else {
		report.Inbound++
	}
}

// isOutboundCFOP: CFOP iniciado en 5 (estadual) o 6 (interestadual) es saída.
func isOutboundCFOP(cfop string) bool {
	return cfop != "" && (cfop[0] == '5' || cfop[0] == '6')
}

func (o *Orchestrator) fail(report *entity.SyncReport, err error) {
	report.Failed = true
	report.FatalError = err.Error()
	o.log.Error().Err(err).Msg("sync abortado")
}
