package finance

import (
	"context"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
	"mochini/internal/core/types"
)

// BankAccount is one cash or bank account whose balance moves with every
// ingreso/egreso transaction.
type BankAccount struct {
	entity.Base

	Nombre       string      `json:"nombre"`
	NombreBanco  string      `json:"nombre_banco,omitempty"`
	Tipo         string      `json:"tipo,omitempty"`
	Saldo        types.Money `json:"saldoActual"`
	NumeroCuenta string      `json:"numeroCuenta,omitempty"`
}

// Validate checks the account's internal invariants.
func (a *BankAccount) Validate(ctx context.Context) error {
	if a.Nombre == "" {
		return apperror.NewValidation("account name is required").WithDetail("field", "nombre")
	}
	return nil
}

// Deposit increases the balance.
func (a *BankAccount) Deposit(amount types.Money) {
	a.Saldo = a.Saldo.Add(amount)
}

// Withdraw decreases the balance. Accounts are allowed to go negative; the
// ledger records reality, it does not block it.
func (a *BankAccount) Withdraw(amount types.Money) {
	a.Saldo = a.Saldo.Sub(amount)
}
