package sqlite

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mochini/internal/core/apperror"
	"mochini/internal/core/tx"
	"mochini/pkg/logger"
)

var tracer = otel.Tracer("mochini/storage")

// Compile-time check that TxManager implements tx.Manager.
var _ tx.Manager = (*TxManager)(nil)

// TxManager manages store transactions. Nested calls reuse the transaction
// already carried in context.
type TxManager struct {
	db *sql.DB
}

// NewTxManager creates a transaction manager over a store.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{db: store.DB()}
}

// txKey is the context key for the active transaction.
type txKey struct{}

func txFromContext(ctx context.Context) *sql.Tx {
	if t, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return t
	}
	return nil
}

// RunInTransaction executes fn within a transaction.
// If a transaction already exists in ctx, it is reused.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "store.transaction",
		trace.WithAttributes(attribute.String("db.system", "sqlite")))
	defer span.End()

	if existing := txFromContext(ctx); existing != nil {
		return fn(ctx)
	}

	t, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return apperror.NewStorage("begin transaction", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		span.RecordError(err)
		if rbErr := t.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			logger.Error(ctx, "transaction rollback failed", "error", rbErr)
		}
		return err
	}

	if err := t.Commit(); err != nil {
		span.RecordError(err)
		return apperror.NewStorage("commit transaction", err)
	}
	return nil
}
