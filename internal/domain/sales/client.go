package sales

import (
	"context"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
	"mochini/internal/domain/inventory"
)

// Client is one customer of the business.
type Client struct {
	entity.Base

	Nombre      string `json:"nombre"`
	Telefono    string `json:"telefono,omitempty"`
	Email       string `json:"email,omitempty"`
	Direccion   string `json:"direccion,omitempty"`
	ListaPrecio string `json:"listaPrecio,omitempty"`
	DiasCredito int    `json:"diasCredito,omitempty"`
}

// Validate checks the client's internal invariants.
func (c *Client) Validate(ctx context.Context) error {
	if c.Nombre == "" {
		return apperror.NewValidation("client name is required").WithDetail("field", "nombre")
	}
	if c.DiasCredito < 0 {
		return apperror.NewValidation("credit days cannot be negative").
			WithDetail("diasCredito", c.DiasCredito)
	}
	return nil
}

// PriceList returns the client's price list, defaulting to menudeo.
func (c *Client) PriceList() string {
	if c.ListaPrecio == "" {
		return inventory.PriceListMenudeo
	}
	return c.ListaPrecio
}
