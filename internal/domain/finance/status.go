// Package finance holds bank accounts, financial transactions and the
// receivable/payable ledgers derived from sales and purchases.
package finance

// Ledger document states shared by receivables and payables.
const (
	EstadoPendiente = "Pendiente"
	EstadoParcial   = "Parcial"
	EstadoPagado    = "Pagado"
	EstadoVencido   = "Vencido"
	EstadoCancelado = "Cancelado"
)
