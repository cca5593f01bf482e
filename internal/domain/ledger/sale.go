package ledger

import (
	"context"
	"fmt"
	"time"

	"mochini/internal/core/apperror"
	"mochini/internal/core/appctx"
	"mochini/internal/core/id"
	"mochini/internal/domain/finance"
	"mochini/internal/domain/inventory"
	"mochini/internal/domain/sales"
	"mochini/pkg/logger"
)

type stockKey struct {
	product   id.ID
	warehouse string
}

// takeSaleStock validates every line against current stock, then decrements
// and logs one "Venta" movement per line. All preconditions are checked
// before the first write.
func (s *Service) takeSaleStock(ctx context.Context, order *sales.Order, now time.Time) error {
	byID := make(map[id.ID]*inventory.Product, len(order.Productos))
	required := make(map[stockKey]int, len(order.Productos))

	for _, line := range order.Productos {
		if _, ok := byID[line.ProductoID]; !ok {
			p, err := s.products.GetByID(ctx, line.ProductoID)
			if err != nil {
				return err
			}
			byID[line.ProductoID] = p
		}
		required[stockKey{line.ProductoID, line.Almacen}] += line.Cantidad
	}

	for key, qty := range required {
		p := byID[key.product]
		if available := p.StockIn(key.warehouse); available < qty {
			return apperror.NewInsufficientStock(p.Nombre, key.warehouse, qty, available)
		}
	}

	user := appctx.UserName(ctx)
	for _, line := range order.Productos {
		p := byID[line.ProductoID]
		p.AdjustStock(line.Almacen, -line.Cantidad)
		p.LogMovement(inventory.Movement{
			Fecha:    now,
			Tipo:     inventory.MovementVenta,
			Cantidad: -line.Cantidad,
			Usuario:  user,
			Notas:    fmt.Sprintf("Pedido %s", order.ID),
		})
	}
	for _, p := range byID {
		if _, err := s.products.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordCreditSale registers a credit order: stock out of every line's
// warehouse plus one receivable due diasCredito days after the sale date.
// The order enters the stock-holding state "En Proceso".
func (s *Service) RecordCreditSale(ctx context.Context, order *sales.Order, diasCredito int) (*finance.Receivable, error) {
	if err := order.Validate(ctx); err != nil {
		return nil, err
	}
	if diasCredito < 0 {
		return nil, apperror.NewValidation("credit days cannot be negative").
			WithDetail("diasCredito", diasCredito)
	}
	order.ComputeTotal()
	if order.Fecha.IsZero() {
		order.Fecha = time.Now().UTC()
	}
	order.Estado = sales.StatusEnProceso
	if order.MetodoPago == "" {
		order.MetodoPago = sales.MetodoCredito
	}

	var cxc *finance.Receivable
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.clients.GetByID(ctx, order.ClienteID); err != nil {
			return err
		}
		if _, err := s.orders.Add(ctx, order); err != nil {
			return err
		}
		if err := s.takeSaleStock(ctx, order, order.Fecha); err != nil {
			return err
		}

		cxc = &finance.Receivable{
			ClienteID:        order.ClienteID,
			PedidoID:         order.ID,
			MontoTotal:       order.Total,
			SaldoPendiente:   order.Total,
			FechaEmision:     order.Fecha,
			FechaVencimiento: order.Fecha.AddDate(0, 0, diasCredito),
			Estado:           finance.EstadoPendiente,
		}
		if _, err := s.receivables.Add(ctx, cxc); err != nil {
			return err
		}

		logger.Info(ctx, "credit sale recorded",
			"order", order.ID, "client", order.ClienteID, "total", order.Total)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cxc, nil
}

// RecordCashSale registers a POS sale paid on the spot: stock out, the
// target account's balance up by the total, and one ingreso transaction
// linked to the order. The order is created directly as "Entregado".
// The account is required; there is no implicit cash-drawer fallback.
func (s *Service) RecordCashSale(ctx context.Context, order *sales.Order, accountID id.ID) (*finance.Transaction, error) {
	if err := order.Validate(ctx); err != nil {
		return nil, err
	}
	if id.IsNil(accountID) {
		return nil, apperror.NewValidation("cash sale requires a target account").
			WithDetail("field", "accountID")
	}
	order.ComputeTotal()
	if order.Fecha.IsZero() {
		order.Fecha = time.Now().UTC()
	}
	order.Estado = sales.StatusEntregado
	if order.MetodoPago == "" {
		order.MetodoPago = sales.MetodoEfectivo
	}

	var txn *finance.Transaction
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		account, err := s.accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if _, err := s.orders.Add(ctx, order); err != nil {
			return err
		}
		if err := s.takeSaleStock(ctx, order, order.Fecha); err != nil {
			return err
		}

		account.Deposit(order.Total)
		if _, err := s.accounts.Update(ctx, account); err != nil {
			return err
		}

		txn = &finance.Transaction{
			CuentaID:     accountID,
			Tipo:         finance.TipoIngreso,
			Importe:      order.Total,
			Fecha:        order.Fecha,
			Descripcion:  fmt.Sprintf("Venta POS pedido %s", order.ID),
			Categoria:    "Venta",
			RelacionID:   order.ID,
			RelacionTipo: finance.RelacionPedido,
		}
		if err := txn.Validate(ctx); err != nil {
			return err
		}
		if _, err := s.transactions.Add(ctx, txn); err != nil {
			return err
		}

		logger.Info(ctx, "cash sale recorded",
			"order", order.ID, "account", accountID, "total", order.Total)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
