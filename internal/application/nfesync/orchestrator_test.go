package nfesync_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/opme-consignado/internal/application/consignment"
	"github.com/jhoicas/opme-consignado/internal/application/nfesync"
	"github.com/jhoicas/opme-consignado/internal/domain"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type fakeIssuer struct {
	refs      []entity.IssuedNFeRef
	listErr   error
	fetchErrs map[string]error

	mu          sync.Mutex
	fetched     []string
	listedStart time.Time
	listedEnd   time.Time
}

func (f *fakeIssuer) ListIssued(ctx context.Context, start, end time.Time) ([]entity.IssuedNFeRef, error) {
	f.listedStart, f.listedEnd = start, end
	return f.refs, f.listErr
}

func (f *fakeIssuer) FetchXML(ctx context.Context, accessKey string) ([]byte, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, accessKey)
	f.mu.Unlock()
	if err := f.fetchErrs[accessKey]; err != nil {
		return nil, err
	}
	return []byte(accessKey), nil
}

// fakeIngester usa el "XML" (la chave) para decidir el resultado.
type fakeIngester struct {
	cfop       map[string]string
	duplicates map[string]bool
	errs       map[string]error
	calls      int
}

func (f *fakeIngester) UploadXML(ctx context.Context, raw []byte) (consignment.IngestResult, error) {
	f.calls++
	key := string(raw)
	if err := f.errs[key]; err != nil {
		return consignment.IngestResult{}, err
	}
	cfop := f.cfop[key]
	if cfop == "" {
		cfop = "5102"
	}
	n := &entity.NFe{Number: key, Items: []entity.NFeItem{{CFOP: cfop}}}
	return consignment.IngestResult{Created: !f.duplicates[key], Number: key, NFe: n}, nil
}

type fakeLocker struct {
	busy     bool
	released bool
	key      string
	ttl      time.Duration
}

func (l *fakeLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	l.key, l.ttl = key, ttl
	if l.busy {
		return nil, domain.ErrSyncInProgress
	}
	return func(context.Context) error { l.released = true; return nil }, nil
}

func refs(keys ...string) []entity.IssuedNFeRef {
	out := make([]entity.IssuedNFeRef, len(keys))
	for i, k := range keys {
		out[i] = entity.IssuedNFeRef{AccessKey: k, Number: k}
	}
	return out
}

func newOrchestrator(issuer nfesync.InvoiceIssuer, ing nfesync.Ingester, opts ...nfesync.Option) *nfesync.Orchestrator {
	opts = append([]nfesync.Option{nfesync.WithClock(func() time.Time { return fixedNow })}, opts...)
	return nfesync.NewOrchestrator(issuer, ing, nil, opts...)
}

func TestSyncWindow_FallaParcialEnDescarga(t *testing.T) {
	issuer := &fakeIssuer{
		refs:      refs("K1", "K2", "K3"),
		fetchErrs: map[string]error{"K2": &domain.ServiceError{Op: "fetch_xml", StatusCode: 500, Cause: errors.New("boom")}},
	}
	ing := &fakeIngester{}

	report := newOrchestrator(issuer, ing).SyncWindow(context.Background(), 7)

	assert.False(t, report.Failed)
	assert.Equal(t, 3, report.Found)
	assert.Equal(t, 2, report.Processed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "K2")
	assert.Equal(t, []string{"K1", "K2", "K3"}, issuer.fetched, "orden del listado, sin abortar")
	assert.Equal(t, 2, ing.calls)
	assert.Equal(t, report.Processed, report.Outbound+report.Inbound)
}

func TestSyncWindow_FallaDeListadoEsFatal(t *testing.T) {
	issuer := &fakeIssuer{listErr: &domain.ServiceError{Op: "list_issued", StatusCode: 503, Cause: errors.New("indisponível")}}
	ing := &fakeIngester{}

	report := newOrchestrator(issuer, ing).SyncWindow(context.Background(), 7)

	assert.True(t, report.Failed)
	assert.Contains(t, report.FatalError, "503")
	assert.Empty(t, issuer.fetched, "no se descarga nada")
	assert.Equal(t, 0, ing.calls)
	assert.Equal(t, 0, report.Found)
	assert.Equal(t, 0, report.Processed)
}

func TestSyncWindow_Ventana(t *testing.T) {
	issuer := &fakeIssuer{}
	report := newOrchestrator(issuer, &fakeIngester{}).SyncWindow(context.Background(), 7)

	assert.Equal(t, fixedNow, issuer.listedEnd)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), issuer.listedStart)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), report.WindowStart)
	assert.NotNil(t, report.Errors, "erros se serializa como lista vacía")
	assert.Equal(t, 0, report.Found)
}

func TestSyncWindow_SinChaveDeAcceso(t *testing.T) {
	list := refs("K1", "")
	list[1].Number = "4321"
	issuer := &fakeIssuer{refs: list}

	report := newOrchestrator(issuer, &fakeIngester{}).SyncWindow(context.Background(), 1)

	assert.Equal(t, 2, report.Found)
	assert.Equal(t, 1, report.Processed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "4321")
	assert.Equal(t, []string{"K1"}, issuer.fetched)
}

func TestSyncWindow_ErrorDeIngesta(t *testing.T) {
	issuer := &fakeIssuer{refs: refs("K1", "K2")}
	ing := &fakeIngester{errs: map[string]error{
		"K1": domain.NewMalformedInputError("ide/nNF", "campo obligatorio ausente", nil),
	}}

	report := newOrchestrator(issuer, ing).SyncWindow(context.Background(), 3)

	assert.Equal(t, 1, report.Processed)
	require.Len(t, report.Errors, 1)
	assert.True(t, strings.HasPrefix(report.Errors[0], "K1: "))
	assert.Contains(t, report.Errors[0], "ide/nNF")
}

func TestSyncWindow_TallyPorDireccion(t *testing.T) {
	list := refs("K1", "K2", "K3", "K4")
	list[3].CFOP = "1202" // el CFOP del listado tiene prioridad
	issuer := &fakeIssuer{refs: list}
	ing := &fakeIngester{cfop: map[string]string{
		"K1": "5102",
		"K2": "6405",
		"K3": "1102",
		"K4": "5102",
	}}

	report := newOrchestrator(issuer, ing).SyncWindow(context.Background(), 30)

	assert.Equal(t, 4, report.Processed)
	assert.Equal(t, 2, report.Outbound)
	assert.Equal(t, 2, report.Inbound)
}

func TestSyncWindow_DuplicadosCuentanComoProcesados(t *testing.T) {
	issuer := &fakeIssuer{refs: refs("K1", "K2")}
	ing := &fakeIngester{duplicates: map[string]bool{"K2": true}}

	report := newOrchestrator(issuer, ing).SyncWindow(context.Background(), 7)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Duplicates)
	assert.Empty(t, report.Errors)
}

func TestSyncWindow_LockOcupado(t *testing.T) {
	issuer := &fakeIssuer{refs: refs("K1")}
	locker := &fakeLocker{busy: true}

	report := newOrchestrator(issuer, &fakeIngester{}, nfesync.WithLocker(locker, time.Minute)).
		SyncWindow(context.Background(), 7)

	assert.True(t, report.Failed)
	assert.Contains(t, report.FatalError, "sync já em execução")
	assert.True(t, report.InProgress)
	assert.Empty(t, issuer.fetched)
	assert.Equal(t, nfesync.LockKey, locker.key)
}

func TestSyncWindow_LiberaElLock(t *testing.T) {
	locker := &fakeLocker{}
	report := newOrchestrator(&fakeIssuer{refs: refs("K1")}, &fakeIngester{}, nfesync.WithLocker(locker, 5*time.Minute)).
		SyncWindow(context.Background(), 7)

	assert.False(t, report.Failed)
	assert.True(t, locker.released)
	assert.Equal(t, 5*time.Minute, locker.ttl)
}

func TestSyncWindow_DiasInvalidos(t *testing.T) {
	issuer := &fakeIssuer{refs: refs("K1")}
	report := newOrchestrator(issuer, &fakeIngester{}).SyncWindow(context.Background(), 0)

	assert.True(t, report.Failed)
	assert.Empty(t, issuer.fetched)
}

func TestSyncWindow_ContextoCancelado(t *testing.T) {
	issuer := &fakeIssuer{refs: refs("K1", "K2")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := newOrchestrator(issuer, &fakeIngester{}).SyncWindow(ctx, 7)

	assert.Equal(t, 2, report.Found)
	assert.Equal(t, 0, report.Processed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "cancelado")
}
