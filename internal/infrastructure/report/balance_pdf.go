// Package report genera los reportes del saldo de consignación (PDF y planilla XLSX).
//
// Layout de la página A4 del PDF:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación + filtro de cliente    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  por cliente: Nombre + CNPJ                                  │
//	│    TABLA: Código | Descripción | Lote | Saldo                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de claves y saldos negativos                  │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/opme-consignado/internal/application/consignment"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNegative = &props.Color{Red: 180, Green: 20, Blue: 20}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ consignment.BalanceReportGenerator = (*Generator)(nil)

// Generator implementa consignment.BalanceReportGenerator (Maroto v2 + excelize).
type Generator struct{}

// NewGenerator construye el generador.
func NewGenerator() *Generator { return &Generator{} }

// BalancePDF genera el PDF del saldo y devuelve sus bytes. entries debe venir ordenado
// (consignment.Entries); las claves de un mismo cliente quedan agrupadas.
func (g *Generator) BalancePDF(_ context.Context, entries []entity.BalanceEntry, recipientFilter string, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Saldo de estoque consignado OPME", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(recipientFilter, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(entries) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhum movimento de consignação encontrado.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}

	negatives := 0
	for i := 0; i < len(entries); {
		j := i
		for j < len(entries) && entries[j].RecipientTaxID == entries[i].RecipientTaxID &&
			entries[j].RecipientName == entries[i].RecipientName {
			j++
		}
		m.AddRows(clientRow(entries[i]))
		m.AddRows(tableHeaderRow())
		for _, e := range entries[i:j] {
			if e.Balance.IsNegative() {
				negatives++
			}
			m.AddRows(tableDetailRow(e))
		}
		m.AddRows(line.NewRow(3))
		i = j
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(entries), negatives))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(recipientFilter string, generatedAt time.Time) core.Row {
	scope := "Todos os clientes"
	if recipientFilter != "" {
		scope = "Cliente: " + formatTaxID(recipientFilter)
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("SALDO DE ESTOQUE CONSIGNADO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(scope, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Gerado em", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func clientRow(e entity.BalanceEntry) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s   |   CNPJ/CPF: %s",
			nonEmpty(e.RecipientName, "-"), formatTaxID(e.RecipientTaxID)),
			props.Text{Style: fontstyle.Bold, Size: 10, Top: 3, Color: colorPrimary}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Código", 2, align.Left),
		h("Descrição do produto", 6, align.Left),
		h("Lote", 2, align.Left),
		h("Saldo", 2, align.Right),
	)
}

func tableDetailRow(e entity.BalanceEntry) core.Row {
	qty := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
	if e.Balance.IsNegative() {
		qty.Color = colorNegative
		qty.Style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(e.ProductCode, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(6).Add(text.New(nonEmpty(e.ProductDescription, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(nonEmpty(e.LotID, "sem lote"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
		col.New(2).Add(text.New(formatQty(e.Balance), qty)),
	)
}

func footerRow(total, negatives int) core.Row {
	msg := fmt.Sprintf("%d saldos listados", total)
	if negatives > 0 {
		msg += fmt.Sprintf("   |   %d com saldo negativo (baixas acima do consignado)", negatives)
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}
