package nfe_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/opme-consignado/internal/domain"
	nfeparser "github.com/jhoicas/opme-consignado/internal/infrastructure/nfe"
)

func readTestFile(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// minimalNFe arma un documento con una línea; replace permite quitar o alterar campos.
func minimalNFe(replace ...string) []byte {
	doc := `<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe Id="NFe1">` +
		`<ide><nNF>55</nNF><dhEmi>2024-02-01T08:00:00-03:00</dhEmi></ide>` +
		`<emit><CNPJ>12345678000199</CNPJ><xNome>Fornecedor</xNome></emit>` +
		`<dest><CNPJ>98765432000100</CNPJ><xNome>Hospital</xNome></dest>` +
		`<det nItem="1"><prod><cProd>001</cProd><xProd>Parafuso</xProd><CFOP>5102</CFOP>` +
		`<uCom>UN</uCom><qCom>1</qCom><vUnCom>2.00</vUnCom></prod></det>` +
		`</infNFe></NFe>`
	for i := 0; i+1 < len(replace); i += 2 {
		doc = strings.Replace(doc, replace[i], replace[i+1], 1)
	}
	return []byte(doc)
}

func requireMalformed(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedInput), "debe ser MalformedInputError: %v", err)
	var mErr *domain.MalformedInputError
	require.ErrorAs(t, err, &mErr)
	if field != "" {
		assert.Equal(t, field, mErr.Field)
	}
}

func TestParse_NFeProcCompleta(t *testing.T) {
	inv, err := nfeparser.NewParser().Parse(readTestFile(t, "nfeproc_consignacao.xml"))
	require.NoError(t, err)

	assert.Equal(t, "1234", inv.Number)
	assert.Equal(t, "35240112345678000199550010000012341000012345", inv.AccessKey)
	assert.Equal(t, "2024-01-10", inv.IssueDate.Format("2006-01-02"))
	assert.Equal(t, "12345678000199", inv.IssuerTaxID, "CNPJ normalizado a dígitos")
	assert.Equal(t, "Fornecedor OPME Ltda", inv.IssuerName)
	assert.Equal(t, "98765432000100", inv.RecipientTaxID)
	assert.Equal(t, "Hospital Santa Cruz", inv.RecipientName)
	assert.Len(t, inv.XMLDigest, 64)

	require.Len(t, inv.Items, 3, "una línea por det")

	first := inv.Items[0]
	assert.Equal(t, "001", first.ProductCode)
	assert.Equal(t, "Parafuso cortical 3.5mm", first.ProductDescription)
	assert.Equal(t, "5102", first.CFOP)
	assert.Equal(t, "UN", first.Unit)
	assert.True(t, first.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, first.UnitValue.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, "12.50", first.UnitValue.StringFixed(2))
	assert.Equal(t, "LOTE001", first.LotID)
	assert.True(t, first.LotQuantity.Equal(decimal.NewFromInt(10)))

	second := inv.Items[1]
	assert.Equal(t, "1530.1999", second.UnitValue.String(), "sin redondeo binario")
	assert.Equal(t, "", second.LotID, "sin rastro el lote es vacío")
	assert.True(t, second.LotQuantity.IsZero())

	third := inv.Items[2]
	assert.Equal(t, "H-77", third.LotID)
	assert.True(t, third.LotQuantity.IsZero(), "qLote ausente = 0")
	assert.Equal(t, "0.1", third.UnitValue.String())
}

func TestParse_LeiauteLegado(t *testing.T) {
	inv, err := nfeparser.NewParser().Parse(readTestFile(t, "nfe_legado.xml"))
	require.NoError(t, err)

	assert.Equal(t, "7", inv.Number)
	assert.Equal(t, "2010-01-05", inv.IssueDate.Format("2006-01-02"))
	assert.Equal(t, "12345678901", inv.RecipientTaxID, "CPF cuando no hay CNPJ")
	assert.Equal(t, "35100112345678000199550010000000071000000070", inv.AccessKey, "chave desde infNFe@Id")
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "MED-1", inv.Items[0].LotID)
	assert.Equal(t, "1", inv.Items[0].LotQuantity.String())
}

func TestParse_ISO88591(t *testing.T) {
	raw := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?>`),
		minimalNFe("<xNome>Hospital</xNome>", "<xNome>Cl\xednica S\xe3o Jos\xe9</xNome>")...)

	inv, err := nfeparser.NewParser().Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Clínica São José", inv.RecipientName)
}

func TestParse_CamposDeCabeceraObligatorios(t *testing.T) {
	tests := []struct {
		name  string
		doc   []byte
		field string
	}{
		{"sin nNF", minimalNFe("<nNF>55</nNF>", ""), "ide/nNF"},
		{"sin fecha", minimalNFe("<dhEmi>2024-02-01T08:00:00-03:00</dhEmi>", ""), "ide/dhEmi"},
		{"fecha inválida", minimalNFe("2024-02-01T08:00:00-03:00", "ayer"), "ide/dhEmi"},
		{"sin CNPJ emitente", minimalNFe("<CNPJ>12345678000199</CNPJ>", ""), "emit/CNPJ"},
		{"sin nombre emitente", minimalNFe("<xNome>Fornecedor</xNome>", ""), "emit/xNome"},
		{"sin CNPJ destinatario", minimalNFe("<CNPJ>98765432000100</CNPJ>", ""), "dest/CNPJ"},
		{"sin nombre destinatario", minimalNFe("<xNome>Hospital</xNome>", ""), "dest/xNome"},
		{"sin infNFe", []byte(`<NFe><outro/></NFe>`), "infNFe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := nfeparser.NewParser().Parse(tt.doc)
			assert.Nil(t, inv, "no se devuelve NF-e parcial")
			requireMalformed(t, err, tt.field)
		})
	}
}

func TestParse_CamposDeLineaObligatorios(t *testing.T) {
	tests := []struct {
		name  string
		doc   []byte
		field string
	}{
		{"sin cProd", minimalNFe("<cProd>001</cProd>", ""), "det[1]/prod/cProd"},
		{"sin CFOP", minimalNFe("<CFOP>5102</CFOP>", ""), "det[1]/prod/CFOP"},
		{"CFOP de 3 dígitos", minimalNFe("<CFOP>5102</CFOP>", "<CFOP>510</CFOP>"), "det[1]/prod/CFOP"},
		{"CFOP con dígitos no ASCII", minimalNFe("<CFOP>5102</CFOP>", "<CFOP>٥١</CFOP>"), "det[1]/prod/CFOP"},
		{"sin qCom", minimalNFe("<qCom>1</qCom>", ""), "det[1]/prod/qCom"},
		{"qCom no decimal", minimalNFe("<qCom>1</qCom>", "<qCom>uno</qCom>"), "det[1]/prod/qCom"},
		{"qCom negativa", minimalNFe("<qCom>1</qCom>", "<qCom>-1</qCom>"), "det[1]/prod/qCom"},
		{"sin vUnCom", minimalNFe("<vUnCom>2.00</vUnCom>", ""), "det[1]/prod/vUnCom"},
		{"qLote negativa", minimalNFe("<vUnCom>2.00</vUnCom>", "<vUnCom>2.00</vUnCom><rastro><nLote>L1</nLote><qLote>-5</qLote></rastro>"), "det[1]/prod/rastro/qLote"},
		{"qLote no decimal", minimalNFe("<vUnCom>2.00</vUnCom>", "<vUnCom>2.00</vUnCom><med><nLote>L1</nLote><qLote>x</qLote></med>"), "det[1]/prod/med/qLote"},
		{"sin líneas", minimalNFe(`<det nItem="1"><prod><cProd>001</cProd><xProd>Parafuso</xProd><CFOP>5102</CFOP><uCom>UN</uCom><qCom>1</qCom><vUnCom>2.00</vUnCom></prod></det>`, ""), "det"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := nfeparser.NewParser().Parse(tt.doc)
			assert.Nil(t, inv)
			requireMalformed(t, err, tt.field)
		})
	}
}

func TestParse_XMLInvalido(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte("   "), []byte("<NFe><infNFe>"), []byte("no es xml")} {
		inv, err := nfeparser.NewParser().Parse(raw)
		assert.Nil(t, inv)
		requireMalformed(t, err, "")
	}
}

func TestParse_DigestDeterministico(t *testing.T) {
	p := nfeparser.NewParser()
	a, err := p.Parse(minimalNFe())
	require.NoError(t, err)
	b, err := p.Parse(minimalNFe())
	require.NoError(t, err)
	assert.Equal(t, a.XMLDigest, b.XMLDigest)

	c, err := p.Parse(minimalNFe("<nNF>55</nNF>", "<nNF>56</nNF>"))
	require.NoError(t, err)
	assert.NotEqual(t, a.XMLDigest, c.XMLDigest)
}
