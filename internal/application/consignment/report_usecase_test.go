package consignment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/opme-consignado/internal/application/consignment"
	"github.com/jhoicas/opme-consignado/internal/domain"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
)

type recordingGenerator struct {
	entries []entity.BalanceEntry
	views   []entity.MovementView
	filter  string
	err     error
}

func (g *recordingGenerator) BalancePDF(ctx context.Context, entries []entity.BalanceEntry, filter string, _ time.Time) ([]byte, error) {
	g.entries, g.filter = entries, filter
	return []byte("%PDF"), g.err
}

func (g *recordingGenerator) BalanceXLSX(ctx context.Context, entries []entity.BalanceEntry, _ time.Time) ([]byte, error) {
	g.entries = entries
	return []byte("PK"), g.err
}

func (g *recordingGenerator) MovementsXLSX(ctx context.Context, views []entity.MovementView) ([]byte, error) {
	g.views = views
	return []byte("PK"), g.err
}

func TestReport_SummaryPDF(t *testing.T) {
	gen := &recordingGenerator{}
	uc := consignment.NewReportUseCase(consignment.NewBalanceUseCase(fixtureMovements()), gen)

	b, err := uc.SummaryPDF(context.Background(), "222")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b))
	assert.Equal(t, "222", gen.filter)
	assert.Len(t, gen.entries, 2)
}

func TestReport_SummaryXLSX(t *testing.T) {
	gen := &recordingGenerator{}
	uc := consignment.NewReportUseCase(consignment.NewBalanceUseCase(fixtureMovements()), gen)

	_, err := uc.SummaryXLSX(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, gen.entries, 3)
}

func TestReport_ClientMovementsXLSX(t *testing.T) {
	gen := &recordingGenerator{}
	uc := consignment.NewReportUseCase(consignment.NewBalanceUseCase(fixtureMovements()), gen)

	_, err := uc.ClientMovementsXLSX(context.Background(), "111")
	require.NoError(t, err)
	assert.Len(t, gen.views, 2)

	_, err = uc.ClientMovementsXLSX(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReport_ErrorDelGenerador(t *testing.T) {
	gen := &recordingGenerator{err: errors.New("fuente no encontrada")}
	uc := consignment.NewReportUseCase(consignment.NewBalanceUseCase(fixtureMovements()), gen)

	_, err := uc.SummaryPDF(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuente no encontrada")
}
