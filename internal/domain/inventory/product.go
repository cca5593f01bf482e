// Package inventory provides the Product catalog: per-warehouse stock, price
// lists, pack/variant configuration and the append-only movement log.
package inventory

import (
	"context"
	"time"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
	"mochini/internal/core/types"
)

// Warehouse names. Stock is tracked per warehouse; existencias is the
// redundant total recomputed on every mutation.
const (
	WarehouseOficina = "oficina"
	WarehouseBodega  = "bodega"
	WarehouseTienda  = "tienda"
)

// Warehouses lists the known warehouse names.
func Warehouses() []string {
	return []string{WarehouseOficina, WarehouseBodega, WarehouseTienda}
}

// Price list ids. Each client is assigned one; it selects which column of a
// product's precios applies to their orders.
const (
	PriceListMenudeo      = "menudeo"
	PriceListMayoreo      = "mayoreo"
	PriceListDistribuidor = "distribuidor"
)

// PriceLists returns the known price list ids in column order.
func PriceLists() []string {
	return []string{PriceListMenudeo, PriceListMayoreo, PriceListDistribuidor}
}

// Movement types recorded on the product log.
const (
	MovementVenta       = "Venta"
	MovementCompra      = "Compra"
	MovementTraspaso    = "Traspaso"
	MovementAjuste      = "Ajuste"
	MovementCancelacion = "Cancelación"
	MovementDevolucion  = "Devolución"
	MovementAnulacion   = "Anulación de Compra"
)

// Movement is one entry of the append-only inventory audit log.
type Movement struct {
	Fecha    time.Time `json:"fecha"`
	Tipo     string    `json:"tipo"`
	Cantidad int       `json:"cantidad"`
	Usuario  string    `json:"usuario"`
	Notas    string    `json:"notas,omitempty"`
}

// Variant is one color/size combination of a product.
type Variant struct {
	Color string `json:"color"`
	Talla string `json:"talla"`
}

// Pack describes one packaging level (piece, assorted pack, box).
type Pack struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Type     string `json:"type"` // "piece" or "assorted"
}

// SubSKU identifies one packaging/variant combination of a base product.
type SubSKU struct {
	Variant  Variant `json:"variant"`
	Pack     string  `json:"pack"`
	SubSKU   string  `json:"subSku"`
	Quantity int     `json:"quantity"`
}

// Product is one catalog entry.
type Product struct {
	entity.Base

	Nombre          string                 `json:"nombre"`
	SKU             string                 `json:"sku"`
	ImageURL        string                 `json:"imageUrl,omitempty"`
	Precios         map[string]types.Money `json:"precios,omitempty"`
	PrecioCompra    types.Money            `json:"precio_compra,omitempty"`
	StockPorAlmacen map[string]int         `json:"stockPorAlmacen,omitempty"`
	Existencias     int                    `json:"existencias"`
	Movimientos     []Movement             `json:"movimientos,omitempty"`
	Variants        []Variant              `json:"variants,omitempty"`
	PackConfig      map[string]Pack        `json:"packConfig,omitempty"`
	SubSKUs         []SubSKU               `json:"subSkus,omitempty"`
}

// Validate checks the product's internal invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Nombre == "" {
		return apperror.NewValidation("product name is required").WithDetail("field", "nombre")
	}
	if p.SKU == "" {
		return apperror.NewValidation("product sku is required").WithDetail("field", "sku")
	}
	for warehouse, qty := range p.StockPorAlmacen {
		if qty < 0 {
			return apperror.NewValidation("stock cannot be negative").
				WithDetail("warehouse", warehouse).
				WithDetail("quantity", qty)
		}
	}
	return nil
}

// StockIn returns the quantity on hand in one warehouse.
func (p *Product) StockIn(warehouse string) int {
	return p.StockPorAlmacen[warehouse]
}

// SetStock writes one warehouse's quantity, merging key-by-key, and
// recomputes existencias. Other warehouses are untouched.
func (p *Product) SetStock(warehouse string, qty int) {
	if p.StockPorAlmacen == nil {
		p.StockPorAlmacen = make(map[string]int)
	}
	p.StockPorAlmacen[warehouse] = qty
	p.RecomputeExistencias()
}

// AdjustStock applies a delta to one warehouse and recomputes existencias.
func (p *Product) AdjustStock(warehouse string, delta int) {
	p.SetStock(warehouse, p.StockIn(warehouse)+delta)
}

// RecomputeExistencias restores the invariant
// existencias == sum(stockPorAlmacen).
func (p *Product) RecomputeExistencias() {
	total := 0
	for _, qty := range p.StockPorAlmacen {
		total += qty
	}
	p.Existencias = total
}

// LogMovement appends one entry to the audit log.
func (p *Product) LogMovement(m Movement) {
	p.Movimientos = append(p.Movimientos, m)
}

// PriceFor returns the unit price on the given price list, zero when the
// product has no entry there.
func (p *Product) PriceFor(priceList string) types.Money {
	return p.Precios[priceList]
}
