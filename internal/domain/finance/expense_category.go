package finance

import (
	"context"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
)

// ExpenseCategory labels manual egreso transactions (rent, payroll, services).
type ExpenseCategory struct {
	entity.Base

	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

func (c *ExpenseCategory) Validate(ctx context.Context) error {
	if c.Nombre == "" {
		return apperror.NewValidation("expense category name is required").WithDetail("field", "nombre")
	}
	return nil
}
