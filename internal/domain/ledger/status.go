package ledger

import (
	"context"
	"fmt"
	"time"

	"mochini/internal/core/appctx"
	"mochini/internal/core/id"
	"mochini/internal/core/types"
	"mochini/internal/domain/finance"
	"mochini/internal/domain/inventory"
	"mochini/internal/domain/sales"
	"mochini/pkg/logger"
)

// StatusChangeOptions tunes side effects of a status change.
type StatusChangeOptions struct {
	// VoidReceivable cancels the order's open receivable in the same
	// transaction when the order is cancelled or returned. Off by default:
	// historically the receivable stayed collectible.
	VoidReceivable bool
}

// ChangeOrderStatus moves an order along the status machine. Transitions out
// of a stock-holding state into Cancelado or Devuelto give the reserved
// inventory back to its warehouses with a reversal movement; every other
// allowed transition only relabels the order.
func (s *Service) ChangeOrderStatus(ctx context.Context, orderID id.ID, newStatus sales.Status, opts StatusChangeOptions) (*sales.Order, error) {
	var order *sales.Order
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := sales.CheckTransition(order.Estado, newStatus); err != nil {
			return err
		}

		if sales.RestoresStock(order.Estado, newStatus) {
			if err := s.restoreOrderStock(ctx, order, newStatus); err != nil {
				return err
			}
			if opts.VoidReceivable {
				if err := s.voidOrderReceivable(ctx, order.ID); err != nil {
					return err
				}
			}
		}

		previous := order.Estado
		order.Estado = newStatus
		if order, err = s.orders.Update(ctx, order); err != nil {
			return err
		}
		logger.Info(ctx, "order status changed",
			"order", order.ID, "from", previous, "to", newStatus)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) restoreOrderStock(ctx context.Context, order *sales.Order, newStatus sales.Status) error {
	movType := inventory.MovementCancelacion
	if newStatus == sales.StatusDevuelto {
		movType = inventory.MovementDevolucion
	}

	user := appctx.UserName(ctx)
	now := time.Now().UTC()
	for _, line := range order.Productos {
		p, err := s.products.GetByID(ctx, line.ProductoID)
		if err != nil {
			return err
		}
		p.AdjustStock(line.Almacen, line.Cantidad)
		p.LogMovement(inventory.Movement{
			Fecha:    now,
			Tipo:     movType,
			Cantidad: line.Cantidad,
			Usuario:  user,
			Notas:    fmt.Sprintf("Pedido %s", order.ID),
		})
		if _, err := s.products.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) voidOrderReceivable(ctx context.Context, orderID id.ID) error {
	all, err := s.receivables.List(ctx)
	if err != nil {
		return err
	}
	for _, cxc := range all {
		if cxc.PedidoID != orderID || cxc.Estado == finance.EstadoPagado || cxc.Estado == finance.EstadoCancelado {
			continue
		}
		cxc.SaldoPendiente = types.Zero()
		cxc.Estado = finance.EstadoCancelado
		if _, err := s.receivables.Update(ctx, cxc); err != nil {
			return err
		}
	}
	return nil
}
