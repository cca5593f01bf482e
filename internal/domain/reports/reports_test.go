package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mochini/internal/core/entity"
	"mochini/internal/core/id"
	"mochini/internal/core/types"
	"mochini/internal/domain/finance"
	"mochini/internal/domain/inventory"
	"mochini/internal/domain/sales"
)

func TestClientBalances(t *testing.T) {
	ana := &sales.Client{Base: entity.NewBase(), Nombre: "Ana"}
	beto := &sales.Client{Base: entity.NewBase(), Nombre: "Beto"}
	carla := &sales.Client{Base: entity.NewBase(), Nombre: "Carla"}

	receivables := []*finance.Receivable{
		{Base: entity.NewBase(), ClienteID: ana.ID, SaldoPendiente: types.MustMoney("100"), Estado: finance.EstadoPendiente},
		{Base: entity.NewBase(), ClienteID: ana.ID, SaldoPendiente: types.MustMoney("50"), Estado: finance.EstadoParcial},
		{Base: entity.NewBase(), ClienteID: beto.ID, SaldoPendiente: types.MustMoney("300"), Estado: finance.EstadoVencido},
		// Settled and voided documents never count.
		{Base: entity.NewBase(), ClienteID: carla.ID, SaldoPendiente: types.Zero(), Estado: finance.EstadoPagado},
		{Base: entity.NewBase(), ClienteID: carla.ID, SaldoPendiente: types.MustMoney("80"), Estado: finance.EstadoCancelado},
	}

	balances := ClientBalances([]*sales.Client{ana, beto, carla}, receivables)
	require.Len(t, balances, 2)
	assert.Equal(t, "Beto", balances[0].Nombre)
	assert.True(t, balances[0].Saldo.Equal(types.MustMoney("300")))
	assert.Equal(t, "Ana", balances[1].Nombre)
	assert.True(t, balances[1].Saldo.Equal(types.MustMoney("150")))
}

func TestSupplierBalances(t *testing.T) {
	prov := &finance.Supplier{Base: entity.NewBase(), Nombre: "Textiles MX"}
	payables := []*finance.Payable{
		{Base: entity.NewBase(), ProveedorID: prov.ID, Monto: types.MustMoney("500"), Pagado: types.MustMoney("200"), Estado: finance.EstadoParcial},
		{Base: entity.NewBase(), ProveedorID: prov.ID, Monto: types.MustMoney("100"), Pagado: types.MustMoney("100"), Estado: finance.EstadoPagado},
	}

	balances := SupplierBalances([]*finance.Supplier{prov}, payables)
	require.Len(t, balances, 1)
	assert.True(t, balances[0].Saldo.Equal(types.MustMoney("300")))
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(
		[]*finance.Receivable{
			{Base: entity.NewBase(), SaldoPendiente: types.MustMoney("150"), Estado: finance.EstadoPendiente},
			{Base: entity.NewBase(), SaldoPendiente: types.MustMoney("999"), Estado: finance.EstadoPagado},
		},
		[]*finance.Payable{
			{Base: entity.NewBase(), Monto: types.MustMoney("200"), Pagado: types.MustMoney("50"), Estado: finance.EstadoParcial},
		},
		[]*finance.BankAccount{
			{Base: entity.NewBase(), Nombre: "Caja", Saldo: types.MustMoney("1000")},
			{Base: entity.NewBase(), Nombre: "Banco", Saldo: types.MustMoney("-200")},
		},
	)
	assert.True(t, totals.PorCobrar.Equal(types.MustMoney("150")))
	assert.True(t, totals.PorPagar.Equal(types.MustMoney("150")))
	assert.True(t, totals.EnBancos.Equal(types.MustMoney("800")))
}

func TestLowStockAndOutOfStock(t *testing.T) {
	products := []*inventory.Product{
		{Base: entity.NewBase(), Nombre: "A", Existencias: 0},
		{Base: entity.NewBase(), Nombre: "B", Existencias: 2},
		{Base: entity.NewBase(), Nombre: "C", Existencias: 5},
		{Base: entity.NewBase(), Nombre: "D", Existencias: 50},
	}

	low := LowStock(products, 5)
	require.Len(t, low, 2)
	assert.Equal(t, "B", low[0].Nombre)
	assert.Equal(t, "C", low[1].Nombre)

	out := OutOfStock(products)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Nombre)
}

func TestBestSellersSkipsCancelledOrders(t *testing.T) {
	camisa := id.New()
	gorra := id.New()

	orders := []*sales.Order{
		{Base: entity.NewBase(), Estado: sales.StatusEntregado, Productos: []sales.OrderLine{
			{ProductoID: camisa, Nombre: "Camisa", Cantidad: 3, PrecioUnitario: types.MustMoney("100")},
			{ProductoID: gorra, Nombre: "Gorra", Cantidad: 1, PrecioUnitario: types.MustMoney("80")},
		}},
		{Base: entity.NewBase(), Estado: sales.StatusEnProceso, Productos: []sales.OrderLine{
			{ProductoID: gorra, Nombre: "Gorra", Cantidad: 5, PrecioUnitario: types.MustMoney("80")},
		}},
		{Base: entity.NewBase(), Estado: sales.StatusCancelado, Productos: []sales.OrderLine{
			{ProductoID: camisa, Nombre: "Camisa", Cantidad: 99, PrecioUnitario: types.MustMoney("100")},
		}},
	}

	ranking := BestSellers(orders, 0)
	require.Len(t, ranking, 2)
	assert.Equal(t, "Gorra", ranking[0].Nombre)
	assert.Equal(t, 6, ranking[0].Cantidad)
	assert.True(t, ranking[0].Importe.Equal(types.MustMoney("480")))
	assert.Equal(t, "Camisa", ranking[1].Nombre)
	assert.Equal(t, 3, ranking[1].Cantidad)

	top1 := BestSellers(orders, 1)
	require.Len(t, top1, 1)
	assert.Equal(t, "Gorra", top1[0].Nombre)
}

func TestMonthlyCashflow(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	transactions := []*finance.Transaction{
		{Base: entity.NewBase(), Tipo: finance.TipoIngreso, Importe: types.MustMoney("100"), Fecha: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{Base: entity.NewBase(), Tipo: finance.TipoIngreso, Importe: types.MustMoney("200"), Fecha: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{Base: entity.NewBase(), Tipo: finance.TipoEgreso, Importe: types.MustMoney("75"), Fecha: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)},
		// Outside the window.
		{Base: entity.NewBase(), Tipo: finance.TipoIngreso, Importe: types.MustMoney("999"), Fecha: time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)},
	}

	buckets := MonthlyCashflow(transactions, 3, now)
	require.Len(t, buckets, 3)
	assert.Equal(t, "2026-01", buckets[0].Mes)
	assert.True(t, buckets[0].Ingresos.Equal(types.MustMoney("100")))
	assert.Equal(t, "2026-02", buckets[1].Mes)
	assert.True(t, buckets[1].Ingresos.IsZero())
	assert.True(t, buckets[1].Egresos.IsZero())
	assert.Equal(t, "2026-03", buckets[2].Mes)
	assert.True(t, buckets[2].Ingresos.Equal(types.MustMoney("200")))
	assert.True(t, buckets[2].Egresos.Equal(types.MustMoney("75")))

	assert.Nil(t, MonthlyCashflow(transactions, 0, now))
}
