package ledger

import (
	"context"
	"fmt"
	"time"

	"mochini/internal/core/apperror"
	"mochini/internal/core/id"
	"mochini/internal/core/types"
	"mochini/internal/domain/finance"
	"mochini/pkg/logger"
)

func validatePaymentAmount(amount, saldo types.Money) error {
	if !amount.IsPositive() {
		return apperror.NewValidation("payment amount must be positive").
			WithDetail("amount", amount)
	}
	if types.ExceedsBalance(amount, saldo) {
		return apperror.NewValidation("payment exceeds outstanding balance").
			WithDetail("amount", amount).
			WithDetail("saldo", saldo)
	}
	return nil
}

// RegisterReceivablePayment applies a client payment to a receivable: the
// outstanding balance drops, the account balance rises, and one ingreso
// transaction links the two. Over-payment beyond the rounding tolerance is
// rejected before anything is written.
func (s *Service) RegisterReceivablePayment(ctx context.Context, receivableID, accountID id.ID, amount types.Money, fecha time.Time) (*finance.Transaction, error) {
	if fecha.IsZero() {
		fecha = time.Now().UTC()
	}

	var txn *finance.Transaction
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		cxc, err := s.receivables.GetByID(ctx, receivableID)
		if err != nil {
			return err
		}
		if err := validatePaymentAmount(amount, cxc.SaldoPendiente); err != nil {
			return err
		}
		account, err := s.accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		txn = &finance.Transaction{
			CuentaID:     accountID,
			Tipo:         finance.TipoIngreso,
			Importe:      amount,
			Fecha:        fecha,
			Descripcion:  fmt.Sprintf("Cobro de cliente, pedido %s", cxc.PedidoID),
			Categoria:    "Cobranza",
			RelacionID:   cxc.ID,
			RelacionTipo: finance.RelacionCobro,
		}
		if _, err := s.transactions.Add(ctx, txn); err != nil {
			return err
		}

		cxc.ApplyPayment(finance.PaymentRef{TransaccionID: txn.ID, Monto: amount, Fecha: fecha})
		if _, err := s.receivables.Update(ctx, cxc); err != nil {
			return err
		}

		account.Deposit(amount)
		if _, err := s.accounts.Update(ctx, account); err != nil {
			return err
		}

		logger.Info(ctx, "receivable payment registered",
			"receivable", cxc.ID, "account", accountID, "amount", amount, "estado", cxc.Estado)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// RegisterPayablePayment applies a payment to a supplier invoice: pagado
// rises, the account balance drops, and one egreso transaction links the
// two. Over-payment beyond the rounding tolerance is rejected.
func (s *Service) RegisterPayablePayment(ctx context.Context, payableID, accountID id.ID, amount types.Money, fecha time.Time) (*finance.Transaction, error) {
	if fecha.IsZero() {
		fecha = time.Now().UTC()
	}

	var txn *finance.Transaction
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		cxp, err := s.payables.GetByID(ctx, payableID)
		if err != nil {
			return err
		}
		if err := validatePaymentAmount(amount, cxp.Saldo()); err != nil {
			return err
		}
		account, err := s.accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		txn = &finance.Transaction{
			CuentaID:     accountID,
			Tipo:         finance.TipoEgreso,
			Importe:      amount,
			Fecha:        fecha,
			Descripcion:  fmt.Sprintf("Pago de factura #%s", cxp.FacturaRef),
			Categoria:    "Compras",
			RelacionID:   cxp.ID,
			RelacionTipo: finance.RelacionPago,
		}
		if _, err := s.transactions.Add(ctx, txn); err != nil {
			return err
		}

		cxp.ApplyPayment(finance.PaymentRef{TransaccionID: txn.ID, Monto: amount, Fecha: fecha})
		if _, err := s.payables.Update(ctx, cxp); err != nil {
			return err
		}

		account.Withdraw(amount)
		if _, err := s.accounts.Update(ctx, account); err != nil {
			return err
		}

		logger.Info(ctx, "payable payment registered",
			"payable", cxp.ID, "account", accountID, "amount", amount, "estado", cxp.Estado)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
