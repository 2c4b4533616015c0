// Package consignment implementa el cálculo de saldo de consignación OPME (servicio de dominio puro).
package consignment

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	"github.com/jhoicas/opme-consignado/pkg/nfe"
)

// Direction clasificación de un CFOP respecto al consignatario.
type Direction int

const (
	DirectionIgnored Direction = iota
	DirectionInbound
	DirectionOutbound
)

func (d Direction) String() string {
	switch d {
	case DirectionInbound:
		return "entrada"
	case DirectionOutbound:
		return "saida"
	}
	return "ignorado"
}

// ClassifyCFOP: 5102/6102 entran al consignatario, 5405/6405 salen. Cualquier otro código no afecta el saldo.
func ClassifyCFOP(code string) Direction {
	switch code {
	case nfe.CFOPEntradaEstadual, nfe.CFOPEntradaInterestadual:
		return DirectionInbound
	case nfe.CFOPSaidaEstadual, nfe.CFOPSaidaInterestadual:
		return DirectionOutbound
	default:
		return DirectionIgnored
	}
}

// Aggregate pliega los movimientos en un saldo con signo por (cliente, producto, lote).
// recipientTaxID vacío = todos los clientes. Devuelve un mapa nuevo en cada llamada;
// la suma es conmutativa, el orden de entrada no altera el resultado.
// Saldos cero o negativos se reportan tal cual.
func Aggregate(movements []entity.StoredMovement, recipientTaxID string) map[entity.BalanceKey]decimal.Decimal {
	balance := make(map[entity.BalanceKey]decimal.Decimal)
	for _, m := range movements {
		if recipientTaxID != "" && m.RecipientTaxID != recipientTaxID {
			continue
		}
		dir := ClassifyCFOP(m.CFOP)
		if dir == DirectionIgnored {
			continue
		}
		key := KeyOf(m)
		acc := balance[key] // cero si la clave no existía
		if dir == DirectionInbound {
			balance[key] = acc.Add(m.Quantity)
		} else {
			balance[key] = acc.Sub(m.Quantity)
		}
	}
	return balance
}

// KeyOf construye la clave de saldo de un movimiento.
func KeyOf(m entity.StoredMovement) entity.BalanceKey {
	return entity.BalanceKey{
		RecipientTaxID:     m.RecipientTaxID,
		RecipientName:      m.RecipientName,
		ProductCode:        m.ProductCode,
		ProductDescription: m.ProductDescription,
		LotID:              m.LotID,
	}
}

// Entries convierte el mapa de saldos en una lista ordenada por cliente, producto y lote.
func Entries(balance map[entity.BalanceKey]decimal.Decimal) []entity.BalanceEntry {
	out := make([]entity.BalanceEntry, 0, len(balance))
	for k, v := range balance {
		out = append(out, entity.BalanceEntry{
			RecipientTaxID:     k.RecipientTaxID,
			RecipientName:      k.RecipientName,
			ProductCode:        k.ProductCode,
			ProductDescription: k.ProductDescription,
			LotID:              k.LotID,
			Balance:            v,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.RecipientTaxID != b.RecipientTaxID {
			return a.RecipientTaxID < b.RecipientTaxID
		}
		if a.RecipientName != b.RecipientName {
			return a.RecipientName < b.RecipientName
		}
		if a.ProductCode != b.ProductCode {
			return a.ProductCode < b.ProductCode
		}
		if a.ProductDescription != b.ProductDescription {
			return a.ProductDescription < b.ProductDescription
		}
		return a.LotID < b.LotID
	})
	return out
}

// FilterByProduct devuelve la vista de detalle de los movimientos de un producto.
func FilterByProduct(movements []entity.StoredMovement, productCode string) []entity.MovementView {
	out := make([]entity.MovementView, 0)
	for _, m := range movements {
		if m.ProductCode == productCode {
			out = append(out, viewOf(m))
		}
	}
	return out
}

// FilterByRecipient devuelve la vista de detalle de los movimientos de un cliente.
func FilterByRecipient(movements []entity.StoredMovement, recipientTaxID string) []entity.MovementView {
	out := make([]entity.MovementView, 0)
	for _, m := range movements {
		if m.RecipientTaxID == recipientTaxID {
			out = append(out, viewOf(m))
		}
	}
	return out
}

// DisplayQuantity: la cantidad del lote manda cuando es > 0 (solo para visualización, nunca para el signo del saldo).
func DisplayQuantity(m entity.StoredMovement) decimal.Decimal {
	if m.LotQuantity.GreaterThan(decimal.Zero) {
		return m.LotQuantity
	}
	return m.Quantity
}

func viewOf(m entity.StoredMovement) entity.MovementView {
	return entity.MovementView{
		NFeNumber:          m.NFeNumber,
		IssueDate:          m.IssueDate,
		RecipientTaxID:     m.RecipientTaxID,
		RecipientName:      m.RecipientName,
		ProductCode:        m.ProductCode,
		ProductDescription: m.ProductDescription,
		CFOP:               m.CFOP,
		Quantity:           DisplayQuantity(m),
		LotID:              m.LotID,
	}
}
