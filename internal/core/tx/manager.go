// Package tx provides transaction management abstractions.
// This package defines the interface that decouples domain logic from the
// storage implementation, following the Dependency Inversion Principle.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
// Implementations handle BEGIN, COMMIT, ROLLBACK, and nested reuse.
//
// Every multi-entity ledger rule runs inside RunInTransaction so its writes
// apply together or not at all.
type Manager interface {
	// RunInTransaction executes fn within a store transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
