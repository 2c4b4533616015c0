package consignment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/opme-consignado/internal/application/consignment"
	"github.com/jhoicas/opme-consignado/internal/domain"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
)

func sampleNFe(number string, lines int) *entity.NFe {
	n := &entity.NFe{
		Number:         number,
		IssueDate:      time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		IssuerTaxID:    "12345678000199",
		IssuerName:     "Fornecedor",
		RecipientTaxID: "98765432000100",
		RecipientName:  "Hospital",
	}
	for i := 0; i < lines; i++ {
		n.Items = append(n.Items, entity.NFeItem{
			ProductCode: "P" + string(rune('A'+i)),
			CFOP:        "5102",
			Quantity:    decimal.NewFromInt(int64(i + 1)),
			UnitValue:   decimal.RequireFromString("12.50"),
		})
	}
	return n
}

func TestIngest_NuevaNFe(t *testing.T) {
	store := newMemStore()
	uc := consignment.NewIngestNFeUseCase(store, nil, nil)

	in := sampleNFe("1234", 3)
	res, err := uc.Ingest(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, "1234", res.Number)
	assert.Len(t, store.headers, 1)
	assert.Equal(t, 3, store.itemCount(), "cabecera + todas las líneas")
	for _, it := range store.items {
		assert.Equal(t, store.headers["1234"].ID, it.NFeID)
	}
	assert.Empty(t, in.ID, "la NF-e de entrada no se modifica")
}

func TestIngest_DuplicadoNoEscribe(t *testing.T) {
	store := newMemStore()
	uc := consignment.NewIngestNFeUseCase(store, nil, nil)

	_, err := uc.Ingest(context.Background(), sampleNFe("1234", 2))
	require.NoError(t, err)
	writesAfterFirst := store.writes

	res, err := uc.Ingest(context.Background(), sampleNFe("1234", 5))
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, writesAfterFirst, store.writes, "cero escrituras en el duplicado")
	assert.Equal(t, 2, store.itemCount(), "el contenido original se mantiene")
}

func TestIngest_FallaEnLineaHaceRollback(t *testing.T) {
	store := newMemStore()
	store.failItemAt = 2
	uc := consignment.NewIngestNFeUseCase(store, nil, nil)

	res, err := uc.Ingest(context.Background(), sampleNFe("77", 3))
	require.Error(t, err)
	assert.False(t, res.Created)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
	var pErr *domain.PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "ingest_nfe", pErr.Op)

	assert.Empty(t, store.headers, "ni cabecera ni líneas quedan visibles")
	assert.Equal(t, 0, store.itemCount())

	// El número sigue libre: un reintento exitoso lo registra.
	store.failItemAt = 0
	res, err = uc.Ingest(context.Background(), sampleNFe("77", 3))
	require.NoError(t, err)
	assert.True(t, res.Created)
}

func TestIngest_FallaDeConsulta(t *testing.T) {
	store := newMemStore()
	store.findErr = errors.New("connection refused")
	uc := consignment.NewIngestNFeUseCase(store, nil, nil)

	_, err := uc.Ingest(context.Background(), sampleNFe("1", 1))
	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.Equal(t, 0, store.writes)
}

func TestIngest_CargaConcurrenteDelMismoNumero(t *testing.T) {
	store := newMemStore()
	store.raceNumber = "900"
	uc := consignment.NewIngestNFeUseCase(store, nil, nil)

	res, err := uc.Ingest(context.Background(), sampleNFe("900", 1))
	require.NoError(t, err, "la violación de unicidad se trata como duplicado")
	assert.False(t, res.Created)
	assert.Equal(t, 0, store.itemCount())
}

func TestIngest_EntradaInvalida(t *testing.T) {
	uc := consignment.NewIngestNFeUseCase(newMemStore(), nil, nil)

	_, err := uc.Ingest(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Ingest(context.Background(), &entity.NFe{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadXML_Malformado(t *testing.T) {
	store := newMemStore()
	parseErr := domain.NewMalformedInputError("ide/nNF", "campo obligatorio ausente", nil)
	uc := consignment.NewIngestNFeUseCase(store, stubParser{err: parseErr}, nil)

	_, err := uc.UploadXML(context.Background(), []byte("<NFe/>"))
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))
	assert.Equal(t, 0, store.writes, "sin escrituras con XML inválido")
}

func TestUploadXML_Ok(t *testing.T) {
	store := newMemStore()
	uc := consignment.NewIngestNFeUseCase(store, stubParser{nfe: sampleNFe("55", 2)}, nil)

	res, err := uc.UploadXML(context.Background(), []byte("<NFe/>"))
	require.NoError(t, err)
	assert.True(t, res.Created)
	require.NotNil(t, res.NFe)
	assert.Equal(t, "5102", res.NFe.LeadingCFOP())
}
