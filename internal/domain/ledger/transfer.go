package ledger

import (
	"context"
	"fmt"
	"time"

	"mochini/internal/core/apperror"
	"mochini/internal/core/id"
	"mochini/internal/domain/inventory"
	"mochini/pkg/logger"
)

// TransferStock moves quantity between two warehouses of one product. The
// caller authorizes with a PIN belonging to any active user; the matched
// user is stamped on the movement and the audit record. Total existencias is
// unchanged by construction.
func (s *Service) TransferStock(ctx context.Context, productID id.ID, from, to string, quantity int, pin string) (*inventory.Transfer, error) {
	if from == to {
		return nil, apperror.NewValidation("source and destination warehouse must differ").
			WithDetail("warehouse", from)
	}
	if quantity <= 0 {
		return nil, apperror.NewValidation("transfer quantity must be positive").
			WithDetail("quantity", quantity)
	}

	authorizer, err := s.users.AuthorizePIN(ctx, pin)
	if err != nil {
		return nil, err
	}

	var transfer *inventory.Transfer
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if available := p.StockIn(from); available < quantity {
			return apperror.NewInsufficientStock(p.Nombre, from, quantity, available)
		}

		now := time.Now().UTC()
		p.AdjustStock(from, -quantity)
		p.AdjustStock(to, quantity)
		p.LogMovement(inventory.Movement{
			Fecha:    now,
			Tipo:     inventory.MovementTraspaso,
			Cantidad: quantity,
			Usuario:  authorizer.Nombre,
			Notas:    fmt.Sprintf("De %s a %s", from, to),
		})
		if _, err := s.products.Update(ctx, p); err != nil {
			return err
		}

		transfer = &inventory.Transfer{
			ProductID:   p.ID,
			ProductName: p.Nombre,
			From:        from,
			To:          to,
			Quantity:    quantity,
			Date:        now,
			User:        authorizer.Nombre,
		}
		if _, err := s.transfers.Add(ctx, transfer); err != nil {
			return err
		}

		logger.Info(ctx, "stock transferred",
			"product", p.ID, "from", from, "to", to, "quantity", quantity, "by", authorizer.Nombre)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}
