// Package hr holds employees, attendance records and payroll runs.
package hr

import (
	"context"
	"time"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
	"mochini/internal/core/types"
)

// Employee is one person on the payroll.
type Employee struct {
	entity.Base

	Nombre        string      `json:"nombre"`
	Puesto        string      `json:"puesto,omitempty"`
	SalarioDiario types.Money `json:"salarioDiario"`
	FechaIngreso  time.Time   `json:"fechaIngreso,omitempty"`
	Activo        bool        `json:"activo"`
}

// Validate checks the employee's internal invariants.
func (e *Employee) Validate(ctx context.Context) error {
	if e.Nombre == "" {
		return apperror.NewValidation("employee name is required").WithDetail("field", "nombre")
	}
	if e.SalarioDiario.IsNegative() {
		return apperror.NewValidation("daily salary cannot be negative")
	}
	return nil
}
