package hr

import (
	"time"

	"mochini/internal/core/entity"
	"mochini/internal/core/id"
	"mochini/internal/core/types"
)

// PayrollLine is one employee's pay within a payroll run.
type PayrollLine struct {
	EmpleadoID  id.ID       `json:"empleadoId"`
	Nombre      string      `json:"nombre"`
	DiasPagados int         `json:"diasPagados"`
	Monto       types.Money `json:"monto"`
}

// Payroll is one pay period run.
type Payroll struct {
	entity.Base

	PeriodoInicio time.Time     `json:"periodoInicio"`
	PeriodoFin    time.Time     `json:"periodoFin"`
	Lineas        []PayrollLine `json:"lineas"`
	Total         types.Money   `json:"total"`
	Pagada        bool          `json:"pagada"`
}

// ComputeTotal restores the invariant total == sum(line amounts).
func (p *Payroll) ComputeTotal() {
	total := types.Zero()
	for _, line := range p.Lineas {
		total = total.Add(line.Monto)
	}
	p.Total = total
}
