package finance

import (
	"time"

	"mochini/internal/core/entity"
	"mochini/internal/core/id"
	"mochini/internal/core/types"
)

// PaymentRef records one payment applied to a ledger document, pointing at
// the bank transaction that moved the money.
type PaymentRef struct {
	TransaccionID id.ID       `json:"transaccion_id"`
	Monto         types.Money `json:"monto"`
	Fecha         time.Time   `json:"fecha"`
}

// Receivable is one cuenta por cobrar: money a client owes for a credit
// order.
type Receivable struct {
	entity.Base

	ClienteID        id.ID        `json:"clienteId"`
	PedidoID         id.ID        `json:"pedidoId"`
	MontoTotal       types.Money  `json:"montoTotal"`
	SaldoPendiente   types.Money  `json:"saldoPendiente"`
	FechaEmision     time.Time    `json:"fechaEmision"`
	FechaVencimiento time.Time    `json:"fechaVencimiento"`
	Estado           string       `json:"estado"`
	Pagos            []PaymentRef `json:"pagos,omitempty"`
}

// ApplyPayment reduces the outstanding balance and appends the payment
// reference. Estado flips to Pagado once the remainder is within tolerance,
// Parcial otherwise.
func (r *Receivable) ApplyPayment(ref PaymentRef) {
	r.SaldoPendiente = r.SaldoPendiente.Sub(ref.Monto)
	r.Pagos = append(r.Pagos, ref)
	if types.IsSettled(r.SaldoPendiente) {
		r.SaldoPendiente = types.Zero()
		r.Estado = EstadoPagado
	} else {
		r.Estado = EstadoParcial
	}
}

// Overdue reports whether the document is unpaid past its due date.
func (r *Receivable) Overdue(now time.Time) bool {
	if r.Estado == EstadoPagado || r.Estado == EstadoCancelado {
		return false
	}
	return now.After(r.FechaVencimiento)
}
