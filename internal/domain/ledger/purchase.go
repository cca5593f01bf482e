package ledger

import (
	"context"
	"fmt"
	"time"

	"mochini/internal/core/apperror"
	"mochini/internal/core/appctx"
	"mochini/internal/core/id"
	"mochini/internal/core/types"
	"mochini/internal/domain/finance"
	"mochini/internal/domain/inventory"
	"mochini/pkg/logger"
)

// PurchaseInput describes one supplier invoice to register.
type PurchaseInput struct {
	ProveedorID id.ID
	Descripcion string
	FacturaRef  string
	Items       []finance.PurchaseItem
	Warehouse   string
	Fecha       time.Time

	// Contado marks the invoice as paid on receipt, debiting AccountID for
	// the full amount. Credit purchases leave PlazoDias to pay.
	Contado   bool
	AccountID id.ID
	PlazoDias int
}

func (in *PurchaseInput) validate(ctx context.Context) error {
	if id.IsNil(in.ProveedorID) {
		return apperror.NewValidation("purchase requires a supplier").WithDetail("field", "proveedorId")
	}
	if len(in.Items) == 0 {
		return apperror.NewValidation("purchase requires at least one item").WithDetail("field", "items")
	}
	for i, item := range in.Items {
		if id.IsNil(item.ProductID) {
			return apperror.NewValidation("purchase item requires a product").WithDetail("item", i)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("purchase item quantity must be positive").
				WithDetail("item", i).
				WithDetail("quantity", item.Quantity)
		}
		if item.Price.IsNegative() {
			return apperror.NewValidation("purchase item price cannot be negative").WithDetail("item", i)
		}
	}
	if in.Warehouse == "" {
		return apperror.NewValidation("purchase requires a destination warehouse").WithDetail("field", "warehouse")
	}
	if in.Contado && id.IsNil(in.AccountID) {
		return apperror.NewValidation("cash purchase requires a paying account").WithDetail("field", "accountID")
	}
	if !in.Contado && in.PlazoDias < 0 {
		return apperror.NewValidation("payment term cannot be negative").WithDetail("plazoDias", in.PlazoDias)
	}
	return nil
}

func (in *PurchaseInput) total() types.Money {
	total := types.Zero()
	for _, item := range in.Items {
		total = total.Add(item.Price.Mul(types.MoneyFromInt(int64(item.Quantity))))
	}
	return total
}

// RecordPurchase registers a supplier invoice: stock into the destination
// warehouse, one payable, and for cash invoices the immediate payment with
// its egreso transaction.
func (s *Service) RecordPurchase(ctx context.Context, in PurchaseInput) (*finance.Payable, error) {
	if err := in.validate(ctx); err != nil {
		return nil, err
	}
	if in.Fecha.IsZero() {
		in.Fecha = time.Now().UTC()
	}
	total := in.total()

	var cxp *finance.Payable
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.suppliers.GetByID(ctx, in.ProveedorID); err != nil {
			return err
		}

		user := appctx.UserName(ctx)
		for _, item := range in.Items {
			p, err := s.products.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			p.AdjustStock(in.Warehouse, item.Quantity)
			p.LogMovement(inventory.Movement{
				Fecha:    in.Fecha,
				Tipo:     inventory.MovementCompra,
				Cantidad: item.Quantity,
				Usuario:  user,
				Notas:    fmt.Sprintf("Factura %s", in.FacturaRef),
			})
			if _, err := s.products.Update(ctx, p); err != nil {
				return err
			}
		}

		cxp = &finance.Payable{
			ProveedorID: in.ProveedorID,
			Descripcion: in.Descripcion,
			Monto:       total,
			Pagado:      types.Zero(),
			Estado:      finance.EstadoPendiente,
			FacturaRef:  in.FacturaRef,
			Items:       in.Items,
			Warehouse:   in.Warehouse,
		}
		if in.Contado {
			cxp.FechaVencimiento = in.Fecha
		} else {
			cxp.FechaVencimiento = in.Fecha.AddDate(0, 0, in.PlazoDias)
		}

		added, err := s.payables.Add(ctx, cxp)
		if err != nil {
			return err
		}
		cxp = added

		if in.Contado {
			account, err := s.accounts.GetByID(ctx, in.AccountID)
			if err != nil {
				return err
			}
			account.Withdraw(total)
			if _, err := s.accounts.Update(ctx, account); err != nil {
				return err
			}

			txn := &finance.Transaction{
				CuentaID:     in.AccountID,
				Tipo:         finance.TipoEgreso,
				Importe:      total,
				Fecha:        in.Fecha,
				Descripcion:  fmt.Sprintf("Pago de factura #%s", in.FacturaRef),
				Categoria:    "Compras",
				RelacionID:   cxp.ID,
				RelacionTipo: finance.RelacionCompra,
			}
			if err := txn.Validate(ctx); err != nil {
				return err
			}
			if _, err := s.transactions.Add(ctx, txn); err != nil {
				return err
			}

			cxp.Pagado = total
			cxp.Estado = finance.EstadoPagado
			cxp.Pagos = []finance.PaymentRef{{
				TransaccionID: txn.ID,
				Monto:         total,
				Fecha:         in.Fecha,
			}}
			cxp, err = s.payables.Update(ctx, cxp)
			if err != nil {
				return err
			}
		}

		logger.Info(ctx, "purchase recorded",
			"payable", cxp.ID, "supplier", in.ProveedorID, "total", total, "contado", in.Contado)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cxp, nil
}

// DeletePurchase reverses a registered invoice completely: inventory back
// out (floored at zero, with a negative reversal movement), every recorded
// payment refunded to its account with the transaction removed, and finally
// the payable itself deleted.
func (s *Service) DeletePurchase(ctx context.Context, payableID id.ID) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		cxp, err := s.payables.GetByID(ctx, payableID)
		if err != nil {
			return err
		}

		user := appctx.UserName(ctx)
		now := time.Now().UTC()
		for _, item := range cxp.Items {
			p, err := s.products.GetByID(ctx, item.ProductID)
			if err != nil {
				if apperror.IsNotFound(err) {
					// Product deleted since the purchase; nothing to reverse.
					continue
				}
				return err
			}
			removed := item.Quantity
			if available := p.StockIn(cxp.Warehouse); available < removed {
				removed = available
			}
			p.AdjustStock(cxp.Warehouse, -removed)
			p.LogMovement(inventory.Movement{
				Fecha:    now,
				Tipo:     inventory.MovementAnulacion,
				Cantidad: -removed,
				Usuario:  user,
				Notas:    fmt.Sprintf("Factura %s", cxp.FacturaRef),
			})
			if _, err := s.products.Update(ctx, p); err != nil {
				return err
			}
		}

		for _, pago := range cxp.Pagos {
			txn, err := s.transactions.GetByID(ctx, pago.TransaccionID)
			if err != nil {
				if apperror.IsNotFound(err) {
					continue
				}
				return err
			}
			account, err := s.accounts.GetByID(ctx, txn.CuentaID)
			if err != nil {
				return err
			}
			account.Deposit(txn.Importe)
			if _, err := s.accounts.Update(ctx, account); err != nil {
				return err
			}
			if err := s.transactions.Remove(ctx, txn.ID); err != nil {
				return err
			}
		}

		if err := s.payables.Remove(ctx, cxp.ID); err != nil {
			return err
		}
		logger.Info(ctx, "purchase deleted", "payable", cxp.ID, "supplier", cxp.ProveedorID)
		return nil
	})
}
