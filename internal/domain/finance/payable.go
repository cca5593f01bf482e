package finance

import (
	"time"

	"mochini/internal/core/entity"
	"mochini/internal/core/id"
	"mochini/internal/core/types"
)

// PurchaseItem is one product position of a purchase invoice. Quantities are
// what entered the warehouse; deleting the purchase reverses them.
type PurchaseItem struct {
	ProductID id.ID       `json:"productId"`
	Quantity  int         `json:"quantity"`
	Price     types.Money `json:"price"`
}

// Payable is one cuenta por pagar: a supplier invoice, optionally carrying
// the inventory items it brought in.
type Payable struct {
	entity.Base

	ProveedorID      id.ID          `json:"proveedor_id"`
	Descripcion      string         `json:"descripcion,omitempty"`
	Monto            types.Money    `json:"monto"`
	Pagado           types.Money    `json:"pagado"`
	FechaVencimiento time.Time      `json:"fecha_vencimiento"`
	Estado           string         `json:"estado"`
	FacturaRef       string         `json:"facturaRef,omitempty"`
	Items            []PurchaseItem `json:"items,omitempty"`
	Warehouse        string         `json:"warehouse,omitempty"`
	Pagos            []PaymentRef   `json:"pagos,omitempty"`
}

// Saldo returns the outstanding amount, monto minus pagado.
func (p *Payable) Saldo() types.Money {
	return p.Monto.Sub(p.Pagado)
}

// ApplyPayment increases pagado and appends the payment reference. Estado
// flips to Pagado once the remainder is within tolerance, Parcial otherwise.
func (p *Payable) ApplyPayment(ref PaymentRef) {
	p.Pagado = p.Pagado.Add(ref.Monto)
	p.Pagos = append(p.Pagos, ref)
	if types.IsSettled(p.Saldo()) {
		p.Pagado = p.Monto
		p.Estado = EstadoPagado
	} else {
		p.Estado = EstadoParcial
	}
}

// Overdue reports whether the invoice is unpaid past its due date.
func (p *Payable) Overdue(now time.Time) bool {
	if p.Estado == EstadoPagado || p.Estado == EstadoCancelado {
		return false
	}
	return now.After(p.FechaVencimiento)
}
