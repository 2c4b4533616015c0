package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/opme-consignado/internal/domain/entity"
)

const (
	balanceSheet  = "Saldo"
	movementSheet = "Movimentos"
)

var balanceHeadings = []string{"CNPJ Cliente", "Cliente", "Código", "Descrição", "Lote", "Saldo"}

// BalanceXLSX genera la planilla del saldo. Las cantidades se escriben como números.
func (g *Generator) BalanceXLSX(_ context.Context, entries []entity.BalanceEntry, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", balanceSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range balanceHeadings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(balanceSheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	if err := f.SetCellStyle(balanceSheet, "A1", "F1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for i, e := range entries {
		rowNo := i + 2
		values := []any{e.RecipientTaxID, e.RecipientName, e.ProductCode, e.ProductDescription, e.LotID, e.Balance.InexactFloat64()}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowNo)
			if err := f.SetCellValue(balanceSheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: fila %d: %w", rowNo, err)
			}
		}
	}

	footer, _ := excelize.CoordinatesToCellName(1, len(entries)+3)
	_ = f.SetCellValue(balanceSheet, footer, "Gerado em "+generatedAt.Format("02/01/2006 15:04"))

	_ = f.SetColWidth(balanceSheet, "A", "A", 18)
	_ = f.SetColWidth(balanceSheet, "B", "B", 36)
	_ = f.SetColWidth(balanceSheet, "D", "D", 48)
	_ = f.SetPanes(balanceSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

var movementHeadings = []string{"NF", "Emissão", "CNPJ Cliente", "Cliente", "Código", "Descrição", "CFOP", "Quantidade", "Lote"}

// MovementsXLSX planilla de la vista de detalle (por producto o por cliente).
func (g *Generator) MovementsXLSX(_ context.Context, views []entity.MovementView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", movementSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for i, h := range movementHeadings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(movementSheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	for i, v := range views {
		rowNo := i + 2
		values := []any{v.NFeNumber, v.IssueDate.Format("2006-01-02"), v.RecipientTaxID, v.RecipientName,
			v.ProductCode, v.ProductDescription, v.CFOP, v.Quantity.InexactFloat64(), v.LotID}
		for c, val := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowNo)
			if err := f.SetCellValue(movementSheet, cell, val); err != nil {
				return nil, fmt.Errorf("xlsx: fila %d: %w", rowNo, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
