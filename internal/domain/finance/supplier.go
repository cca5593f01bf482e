package finance

import (
	"context"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
)

// Supplier is one provider the business buys from.
type Supplier struct {
	entity.Base

	Nombre   string `json:"nombre"`
	Contacto string `json:"contacto,omitempty"`
	Telefono string `json:"telefono,omitempty"`
	Email    string `json:"email,omitempty"`
	RFC      string `json:"rfc,omitempty"`
}

// Validate checks the supplier's internal invariants.
func (s *Supplier) Validate(ctx context.Context) error {
	if s.Nombre == "" {
		return apperror.NewValidation("supplier name is required").WithDetail("field", "nombre")
	}
	return nil
}
