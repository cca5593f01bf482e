// Package sales holds orders, their status machine and the client catalog.
package sales

import (
	"context"
	"time"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
	"mochini/internal/core/id"
	"mochini/internal/core/types"
)

// Payment methods accepted on an order.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTarjeta       = "tarjeta"
	MetodoTransferencia = "transferencia"
	MetodoCredito       = "credito"
)

// OrderLine is one product position on an order. Name and price are copied
// at sale time so later catalog edits do not rewrite history.
type OrderLine struct {
	ProductoID     id.ID       `json:"productoId"`
	Nombre         string      `json:"nombre"`
	Cantidad       int         `json:"cantidad"`
	PrecioUnitario types.Money `json:"precioUnitario"`
	Almacen        string      `json:"almacen"`
}

// Subtotal returns cantidad * precioUnitario.
func (l OrderLine) Subtotal() types.Money {
	return l.PrecioUnitario.Mul(types.MoneyFromInt(int64(l.Cantidad)))
}

// Order is one sale, either a credit order or a POS cash sale.
type Order struct {
	entity.Base

	ClienteID  id.ID       `json:"clienteId"`
	Fecha      time.Time   `json:"fecha"`
	Productos  []OrderLine `json:"productos"`
	Total      types.Money `json:"total"`
	Estado     Status      `json:"estado"`
	MetodoPago string      `json:"metodoPago,omitempty"`
}

// Validate checks the order's internal invariants.
func (o *Order) Validate(ctx context.Context) error {
	if id.IsNil(o.ClienteID) {
		return apperror.NewValidation("order requires a client").WithDetail("field", "clienteId")
	}
	if len(o.Productos) == 0 {
		return apperror.NewValidation("order requires at least one line").WithDetail("field", "productos")
	}
	for i, line := range o.Productos {
		if id.IsNil(line.ProductoID) {
			return apperror.NewValidation("order line requires a product").WithDetail("line", i)
		}
		if line.Cantidad <= 0 {
			return apperror.NewValidation("order line quantity must be positive").
				WithDetail("line", i).
				WithDetail("cantidad", line.Cantidad)
		}
		if line.PrecioUnitario.IsNegative() {
			return apperror.NewValidation("order line price cannot be negative").WithDetail("line", i)
		}
	}
	return nil
}

// ComputeTotal restores the invariant total == sum(line subtotals).
func (o *Order) ComputeTotal() {
	total := types.Zero()
	for _, line := range o.Productos {
		total = total.Add(line.Subtotal())
	}
	o.Total = total
}
