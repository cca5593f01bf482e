// Package ledger implements the cross-entity business rules: sales,
// purchases, payments, order status changes and stock transfers. Every
// operation validates all of its effects first, then applies them inside a
// single storage transaction, so a failed step leaves nothing half-written.
package ledger

import (
	"mochini/internal/core/tx"
	"mochini/internal/domain"
	"mochini/internal/domain/finance"
	"mochini/internal/domain/inventory"
	"mochini/internal/domain/sales"
	"mochini/internal/domain/users"
	"mochini/internal/storage/sqlite"
)

// Service coordinates multi-collection updates.
type Service struct {
	txm tx.Manager

	products     *domain.Repository[*inventory.Product]
	transfers    *domain.Repository[*inventory.Transfer]
	clients      *domain.Repository[*sales.Client]
	orders       *domain.Repository[*sales.Order]
	receivables  *domain.Repository[*finance.Receivable]
	payables     *domain.Repository[*finance.Payable]
	accounts     *domain.Repository[*finance.BankAccount]
	transactions *domain.Repository[*finance.Transaction]
	suppliers    *domain.Repository[*finance.Supplier]

	users *users.Service
}

// NewService wires the ledger over one store.
func NewService(store *sqlite.Store, txm tx.Manager, userSvc *users.Service) *Service {
	return &Service{
		txm:          txm,
		products:     domain.NewRepository[*inventory.Product](store, domain.CollectionProducts),
		transfers:    domain.NewRepository[*inventory.Transfer](store, domain.CollectionTransfers),
		clients:      domain.NewRepository[*sales.Client](store, domain.CollectionClients),
		orders:       domain.NewRepository[*sales.Order](store, domain.CollectionOrders),
		receivables:  domain.NewRepository[*finance.Receivable](store, domain.CollectionReceivables),
		payables:     domain.NewRepository[*finance.Payable](store, domain.CollectionPayables),
		accounts:     domain.NewRepository[*finance.BankAccount](store, domain.CollectionAccounts),
		transactions: domain.NewRepository[*finance.Transaction](store, domain.CollectionTransactions),
		suppliers:    domain.NewRepository[*finance.Supplier](store, domain.CollectionSuppliers),
		users:        userSvc,
	}
}

// Orders exposes the order repository for read models and tests.
func (s *Service) Orders() *domain.Repository[*sales.Order] { return s.orders }

// Products exposes the product repository.
func (s *Service) Products() *domain.Repository[*inventory.Product] { return s.products }

// Clients exposes the client repository.
func (s *Service) Clients() *domain.Repository[*sales.Client] { return s.clients }

// Receivables exposes the receivable repository.
func (s *Service) Receivables() *domain.Repository[*finance.Receivable] { return s.receivables }

// Payables exposes the payable repository.
func (s *Service) Payables() *domain.Repository[*finance.Payable] { return s.payables }

// Accounts exposes the bank account repository.
func (s *Service) Accounts() *domain.Repository[*finance.BankAccount] { return s.accounts }

// Transactions exposes the financial transaction repository.
func (s *Service) Transactions() *domain.Repository[*finance.Transaction] { return s.transactions }

// Transfers exposes the stock transfer repository.
func (s *Service) Transfers() *domain.Repository[*inventory.Transfer] { return s.transfers }

// Suppliers exposes the supplier repository.
func (s *Service) Suppliers() *domain.Repository[*finance.Supplier] { return s.suppliers }
