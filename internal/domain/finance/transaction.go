package finance

import (
	"context"
	"time"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
	"mochini/internal/core/id"
	"mochini/internal/core/types"
)

// Transaction directions.
const (
	TipoIngreso = "ingreso"
	TipoEgreso  = "egreso"
)

// Relation types linking a transaction back to its source document.
const (
	RelacionPedido = "pedido"
	RelacionCompra = "compra"
	RelacionCobro  = "cobro"
	RelacionPago   = "pago"
	RelacionNomina = "nomina"
)

// Transaction is one money movement on a bank account.
type Transaction struct {
	entity.Base

	CuentaID     id.ID       `json:"cuentaId"`
	Tipo         string      `json:"tipo"`
	Importe      types.Money `json:"importe"`
	Fecha        time.Time   `json:"fecha"`
	Descripcion  string      `json:"descripcion,omitempty"`
	Categoria    string      `json:"categoria,omitempty"`
	RelacionID   id.ID       `json:"relacionId,omitempty"`
	RelacionTipo string      `json:"relacionTipo,omitempty"`
}

// Validate checks the transaction's internal invariants.
func (t *Transaction) Validate(ctx context.Context) error {
	if id.IsNil(t.CuentaID) {
		return apperror.NewValidation("transaction requires an account").WithDetail("field", "cuentaId")
	}
	if t.Tipo != TipoIngreso && t.Tipo != TipoEgreso {
		return apperror.NewValidation("transaction tipo must be ingreso or egreso").
			WithDetail("tipo", t.Tipo)
	}
	if !t.Importe.IsPositive() {
		return apperror.NewValidation("transaction amount must be positive").
			WithDetail("importe", t.Importe)
	}
	return nil
}
