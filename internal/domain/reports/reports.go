// Package reports derives read models from collection snapshots. Every
// function is pure: same snapshot in, same report out, no side effects.
package reports

import (
	"sort"
	"time"

	"mochini/internal/core/id"
	"mochini/internal/core/types"
	"mochini/internal/domain/finance"
	"mochini/internal/domain/inventory"
	"mochini/internal/domain/sales"
)

// Balance is one counterpart's outstanding total.
type Balance struct {
	ID     id.ID       `json:"id"`
	Nombre string      `json:"nombre"`
	Saldo  types.Money `json:"saldo"`
}

// ClientBalances sums the unpaid receivable balance per client, largest
// first. Clients with nothing outstanding are omitted.
func ClientBalances(clients []*sales.Client, receivables []*finance.Receivable) []Balance {
	names := make(map[id.ID]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Nombre
	}

	totals := make(map[id.ID]types.Money)
	for _, cxc := range receivables {
		if cxc.Estado == finance.EstadoPagado || cxc.Estado == finance.EstadoCancelado {
			continue
		}
		totals[cxc.ClienteID] = totals[cxc.ClienteID].Add(cxc.SaldoPendiente)
	}
	return sortedBalances(totals, names)
}

// SupplierBalances sums the unpaid payable balance per supplier, largest
// first.
func SupplierBalances(suppliers []*finance.Supplier, payables []*finance.Payable) []Balance {
	names := make(map[id.ID]string, len(suppliers))
	for _, s := range suppliers {
		names[s.ID] = s.Nombre
	}

	totals := make(map[id.ID]types.Money)
	for _, cxp := range payables {
		if cxp.Estado == finance.EstadoPagado || cxp.Estado == finance.EstadoCancelado {
			continue
		}
		totals[cxp.ProveedorID] = totals[cxp.ProveedorID].Add(cxp.Saldo())
	}
	return sortedBalances(totals, names)
}

func sortedBalances(totals map[id.ID]types.Money, names map[id.ID]string) []Balance {
	out := make([]Balance, 0, len(totals))
	for counterpartID, saldo := range totals {
		if types.IsSettled(saldo) {
			continue
		}
		out = append(out, Balance{ID: counterpartID, Nombre: names[counterpartID], Saldo: saldo})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Saldo.Equal(out[j].Saldo) {
			return out[i].Saldo.GreaterThan(out[j].Saldo)
		}
		return out[i].Nombre < out[j].Nombre
	})
	return out
}

// Totals is the aggregate financial position.
type Totals struct {
	PorCobrar types.Money `json:"porCobrar"`
	PorPagar  types.Money `json:"porPagar"`
	EnBancos  types.Money `json:"enBancos"`
}

// ComputeTotals sums the open receivables, open payables and bank balances.
func ComputeTotals(receivables []*finance.Receivable, payables []*finance.Payable, accounts []*finance.BankAccount) Totals {
	t := Totals{PorCobrar: types.Zero(), PorPagar: types.Zero(), EnBancos: types.Zero()}
	for _, cxc := range receivables {
		if cxc.Estado == finance.EstadoPagado || cxc.Estado == finance.EstadoCancelado {
			continue
		}
		t.PorCobrar = t.PorCobrar.Add(cxc.SaldoPendiente)
	}
	for _, cxp := range payables {
		if cxp.Estado == finance.EstadoPagado || cxp.Estado == finance.EstadoCancelado {
			continue
		}
		t.PorPagar = t.PorPagar.Add(cxp.Saldo())
	}
	for _, a := range accounts {
		t.EnBancos = t.EnBancos.Add(a.Saldo)
	}
	return t
}

// LowStock returns products at or below the threshold but not sold out,
// scarcest first.
func LowStock(products []*inventory.Product, threshold int) []*inventory.Product {
	var out []*inventory.Product
	for _, p := range products {
		if p.Existencias > 0 && p.Existencias <= threshold {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Existencias < out[j].Existencias
	})
	return out
}

// OutOfStock returns products with nothing on hand anywhere.
func OutOfStock(products []*inventory.Product) []*inventory.Product {
	var out []*inventory.Product
	for _, p := range products {
		if p.Existencias == 0 {
			out = append(out, p)
		}
	}
	return out
}

// ProductSales is one product's sold quantity and revenue.
type ProductSales struct {
	ProductoID id.ID       `json:"productoId"`
	Nombre     string      `json:"nombre"`
	Cantidad   int         `json:"cantidad"`
	Importe    types.Money `json:"importe"`
}

// BestSellers ranks products by quantity sold over non-cancelled orders.
// limit <= 0 returns the full ranking.
func BestSellers(orders []*sales.Order, limit int) []ProductSales {
	byProduct := make(map[id.ID]*ProductSales)
	for _, o := range orders {
		if o.Estado == sales.StatusCancelado {
			continue
		}
		for _, line := range o.Productos {
			ps, ok := byProduct[line.ProductoID]
			if !ok {
				ps = &ProductSales{ProductoID: line.ProductoID, Nombre: line.Nombre, Importe: types.Zero()}
				byProduct[line.ProductoID] = ps
			}
			ps.Cantidad += line.Cantidad
			ps.Importe = ps.Importe.Add(line.Subtotal())
		}
	}

	out := make([]ProductSales, 0, len(byProduct))
	for _, ps := range byProduct {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cantidad != out[j].Cantidad {
			return out[i].Cantidad > out[j].Cantidad
		}
		return out[i].Nombre < out[j].Nombre
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MonthBucket is one calendar month's money in and out.
type MonthBucket struct {
	Mes      string      `json:"mes"` // "2006-01"
	Ingresos types.Money `json:"ingresos"`
	Egresos  types.Money `json:"egresos"`
}

// MonthlyCashflow buckets transactions by calendar month over the trailing
// window ending at now. Months with no activity still appear, zeroed.
func MonthlyCashflow(transactions []*finance.Transaction, months int, now time.Time) []MonthBucket {
	if months <= 0 {
		return nil
	}

	buckets := make([]MonthBucket, months)
	index := make(map[string]int, months)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	for i := 0; i < months; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		buckets[i] = MonthBucket{Mes: key, Ingresos: types.Zero(), Egresos: types.Zero()}
		index[key] = i
	}

	for _, txn := range transactions {
		i, ok := index[txn.Fecha.Format("2006-01")]
		if !ok {
			continue
		}
		switch txn.Tipo {
		case finance.TipoIngreso:
			buckets[i].Ingresos = buckets[i].Ingresos.Add(txn.Importe)
		case finance.TipoEgreso:
			buckets[i].Egresos = buckets[i].Egresos.Add(txn.Importe)
		}
	}
	return buckets
}
