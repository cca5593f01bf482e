package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mochini/internal/core/apperror"
	"mochini/internal/core/types"
	"mochini/internal/domain/finance"
	"mochini/internal/domain/inventory"
	"mochini/internal/domain/sales"
)

func TestCancelOrderRestoresStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.orderFor(4)
	_, err := f.svc.RecordCreditSale(ctx, order, 15)
	require.NoError(t, err)
	assert.Equal(t, 6, f.reloadProduct(t).StockIn(inventory.WarehouseTienda))

	updated, err := f.svc.ChangeOrderStatus(ctx, order.ID, sales.StatusCancelado, StatusChangeOptions{})
	require.NoError(t, err)
	assert.Equal(t, sales.StatusCancelado, updated.Estado)

	p := f.reloadProduct(t)
	assert.Equal(t, 10, p.StockIn(inventory.WarehouseTienda))
	last := p.Movimientos[len(p.Movimientos)-1]
	assert.Equal(t, inventory.MovementCancelacion, last.Tipo)
	assert.Equal(t, 4, last.Cantidad)

	// Default policy keeps the receivable collectible.
	cxcs, err := f.svc.Receivables().List(ctx)
	require.NoError(t, err)
	require.Len(t, cxcs, 1)
	assert.Equal(t, finance.EstadoPendiente, cxcs[0].Estado)
}

func TestCancelOrderVoidingReceivable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.orderFor(4)
	_, err := f.svc.RecordCreditSale(ctx, order, 15)
	require.NoError(t, err)

	_, err = f.svc.ChangeOrderStatus(ctx, order.ID, sales.StatusCancelado,
		StatusChangeOptions{VoidReceivable: true})
	require.NoError(t, err)

	assert.Equal(t, 10, f.reloadProduct(t).StockIn(inventory.WarehouseTienda))
	cxcs, err := f.svc.Receivables().List(ctx)
	require.NoError(t, err)
	require.Len(t, cxcs, 1)
	assert.Equal(t, finance.EstadoCancelado, cxcs[0].Estado)
	assert.True(t, cxcs[0].SaldoPendiente.IsZero())
}

func TestReturnDeliveredOrderRestoresStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.orderFor(2)
	_, err := f.svc.RecordCashSale(ctx, order, f.account.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, f.reloadProduct(t).StockIn(inventory.WarehouseTienda))

	updated, err := f.svc.ChangeOrderStatus(ctx, order.ID, sales.StatusDevuelto, StatusChangeOptions{})
	require.NoError(t, err)
	assert.Equal(t, sales.StatusDevuelto, updated.Estado)

	p := f.reloadProduct(t)
	assert.Equal(t, 10, p.StockIn(inventory.WarehouseTienda))
	last := p.Movimientos[len(p.Movimientos)-1]
	assert.Equal(t, inventory.MovementDevolucion, last.Tipo)
}

func TestRelabelTransitionLeavesStockAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.orderFor(3)
	_, err := f.svc.RecordCreditSale(ctx, order, 15)
	require.NoError(t, err)

	_, err = f.svc.ChangeOrderStatus(ctx, order.ID, sales.StatusEnviado, StatusChangeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 7, f.reloadProduct(t).StockIn(inventory.WarehouseTienda))

	_, err = f.svc.ChangeOrderStatus(ctx, order.ID, sales.StatusEntregado, StatusChangeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 7, f.reloadProduct(t).StockIn(inventory.WarehouseTienda))
}

func TestTerminalStateRejectsFurtherTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.orderFor(1)
	_, err := f.svc.RecordCreditSale(ctx, order, 15)
	require.NoError(t, err)

	_, err = f.svc.ChangeOrderStatus(ctx, order.ID, sales.StatusCancelado, StatusChangeOptions{})
	require.NoError(t, err)

	_, err = f.svc.ChangeOrderStatus(ctx, order.ID, sales.StatusEnProceso, StatusChangeOptions{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	// Double-cancel must not restore stock twice.
	_, err = f.svc.ChangeOrderStatus(ctx, order.ID, sales.StatusCancelado, StatusChangeOptions{})
	require.Error(t, err)
	assert.Equal(t, 10, f.reloadProduct(t).StockIn(inventory.WarehouseTienda))
}

func TestSaleCancelRoundTripRestoresSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before := f.reloadProduct(t)

	order := f.orderFor(5)
	_, err := f.svc.RecordCreditSale(ctx, order, 15)
	require.NoError(t, err)

	_, err = f.svc.ChangeOrderStatus(ctx, order.ID, sales.StatusCancelado, StatusChangeOptions{})
	require.NoError(t, err)

	after := f.reloadProduct(t)
	assert.Equal(t, before.StockPorAlmacen, after.StockPorAlmacen)
	assert.Equal(t, before.Existencias, after.Existencias)
	assert.True(t, f.reloadAccount(t).Saldo.Equal(types.MustMoney("100")))
}
