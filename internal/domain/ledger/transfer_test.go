package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mochini/internal/core/apperror"
	"mochini/internal/domain/inventory"
)

func TestTransferStock(t *testing.T) {
	f := newFixture(t)
	f.addUserWithPIN(t, "Sofía", "4321", true)
	ctx := context.Background()

	transfer, err := f.svc.TransferStock(ctx, f.product.ID,
		inventory.WarehouseTienda, inventory.WarehouseBodega, 4, "4321")
	require.NoError(t, err)

	p := f.reloadProduct(t)
	assert.Equal(t, 6, p.StockIn(inventory.WarehouseTienda))
	assert.Equal(t, 4, p.StockIn(inventory.WarehouseBodega))
	assert.Equal(t, 10, p.Existencias)

	last := p.Movimientos[len(p.Movimientos)-1]
	assert.Equal(t, inventory.MovementTraspaso, last.Tipo)
	assert.Equal(t, "Sofía", last.Usuario)

	assert.Equal(t, f.product.ID, transfer.ProductID)
	assert.Equal(t, "Sofía", transfer.User)
	records, err := f.svc.Transfers().List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestTransferStockRejectsSameWarehouse(t *testing.T) {
	f := newFixture(t)
	f.addUserWithPIN(t, "Sofía", "4321", true)

	_, err := f.svc.TransferStock(context.Background(), f.product.ID,
		inventory.WarehouseTienda, inventory.WarehouseTienda, 2, "4321")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestTransferStockRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)
	f.addUserWithPIN(t, "Sofía", "4321", true)

	for _, qty := range []int{0, -3} {
		_, err := f.svc.TransferStock(context.Background(), f.product.ID,
			inventory.WarehouseTienda, inventory.WarehouseBodega, qty, "4321")
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	}
}

func TestTransferStockRejectsInsufficientSource(t *testing.T) {
	f := newFixture(t)
	f.addUserWithPIN(t, "Sofía", "4321", true)
	ctx := context.Background()

	_, err := f.svc.TransferStock(ctx, f.product.ID,
		inventory.WarehouseTienda, inventory.WarehouseBodega, 11, "4321")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	// Untouched on failure.
	p := f.reloadProduct(t)
	assert.Equal(t, 10, p.StockIn(inventory.WarehouseTienda))
	assert.Equal(t, 0, p.StockIn(inventory.WarehouseBodega))
	records, err := f.svc.Transfers().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTransferStockRejectsBadPIN(t *testing.T) {
	f := newFixture(t)
	f.addUserWithPIN(t, "Sofía", "4321", true)

	_, err := f.svc.TransferStock(context.Background(), f.product.ID,
		inventory.WarehouseTienda, inventory.WarehouseBodega, 2, "9999")
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestTransferStockRejectsInactiveUserPIN(t *testing.T) {
	f := newFixture(t)
	f.addUserWithPIN(t, "Baja", "8888", false)

	_, err := f.svc.TransferStock(context.Background(), f.product.ID,
		inventory.WarehouseTienda, inventory.WarehouseBodega, 2, "8888")
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))
}
