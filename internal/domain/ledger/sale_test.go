package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mochini/internal/core/apperror"
	"mochini/internal/core/id"
	"mochini/internal/core/types"
	"mochini/internal/domain/finance"
	"mochini/internal/domain/inventory"
	"mochini/internal/domain/sales"
)

func TestRecordCreditSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.orderFor(3)
	cxc, err := f.svc.RecordCreditSale(ctx, order, 15)
	require.NoError(t, err)

	assert.Equal(t, sales.StatusEnProceso, order.Estado)
	assert.True(t, order.Total.Equal(types.MustMoney("150")))

	p := f.reloadProduct(t)
	assert.Equal(t, 7, p.StockIn(inventory.WarehouseTienda))
	assert.Equal(t, 7, p.Existencias)
	require.NotEmpty(t, p.Movimientos)
	last := p.Movimientos[len(p.Movimientos)-1]
	assert.Equal(t, inventory.MovementVenta, last.Tipo)
	assert.Equal(t, -3, last.Cantidad)

	assert.Equal(t, order.ID, cxc.PedidoID)
	assert.True(t, cxc.MontoTotal.Equal(types.MustMoney("150")))
	assert.True(t, cxc.SaldoPendiente.Equal(types.MustMoney("150")))
	assert.Equal(t, finance.EstadoPendiente, cxc.Estado)
	assert.Equal(t, cxc.FechaEmision.AddDate(0, 0, 15), cxc.FechaVencimiento)
}

func TestRecordCreditSaleInsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordCreditSale(ctx, f.orderFor(11), 15)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	// Nothing moved: no order, no receivable, stock intact.
	p := f.reloadProduct(t)
	assert.Equal(t, 10, p.StockIn(inventory.WarehouseTienda))
	orders, err := f.svc.Orders().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	cxcs, err := f.svc.Receivables().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cxcs)
}

func TestRecordCreditSaleChecksAggregateQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Two lines of 6 from the same warehouse exceed the 10 on hand even
	// though each line alone fits.
	order := f.orderFor(6)
	order.Productos = append(order.Productos, order.Productos[0])

	_, err := f.svc.RecordCreditSale(ctx, order, 15)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 10, f.reloadProduct(t).StockIn(inventory.WarehouseTienda))
}

func TestRecordCreditSaleUnknownClient(t *testing.T) {
	f := newFixture(t)

	order := f.orderFor(1)
	order.ClienteID = id.New()
	_, err := f.svc.RecordCreditSale(context.Background(), order, 15)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecordCashSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.orderFor(3)
	txn, err := f.svc.RecordCashSale(ctx, order, f.account.ID)
	require.NoError(t, err)

	// Sell 3 of 10 at 50: stock 10 -> 7, account 100 -> 250.
	assert.Equal(t, sales.StatusEntregado, order.Estado)
	assert.Equal(t, 7, f.reloadProduct(t).StockIn(inventory.WarehouseTienda))
	assert.True(t, f.reloadAccount(t).Saldo.Equal(types.MustMoney("250")))

	txns, err := f.svc.Transactions().List(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, finance.TipoIngreso, txns[0].Tipo)
	assert.True(t, txns[0].Importe.Equal(types.MustMoney("150")))
	assert.Equal(t, order.ID, txns[0].RelacionID)
	assert.Equal(t, finance.RelacionPedido, txns[0].RelacionTipo)
	assert.Equal(t, txn.ID, txns[0].ID)

	// Cash sales produce no receivable.
	cxcs, err := f.svc.Receivables().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cxcs)
}

func TestRecordCashSaleRequiresAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RecordCashSale(context.Background(), f.orderFor(1), id.Nil())
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRecordCashSaleUnknownAccountLeavesNothingBehind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordCashSale(ctx, f.orderFor(1), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	orders, err := f.svc.Orders().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 10, f.reloadProduct(t).StockIn(inventory.WarehouseTienda))
}
