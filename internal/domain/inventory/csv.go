package inventory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mochini/internal/core/apperror"
	"mochini/internal/core/entity"
	"mochini/internal/core/types"
	"mochini/pkg/logger"
)

// packColumns are the pack slots serialized to CSV, in column order.
var packColumns = []string{"p1", "p2", "p3"}

// defaultPackConfig mirrors the packaging levels assigned to imported rows
// that carry no pack columns.
func defaultPackConfig() map[string]Pack {
	return map[string]Pack{
		"p1": {Name: "Pieza", Quantity: 1, Type: "piece"},
		"p2": {Name: "Paquete", Quantity: 6, Type: "assorted"},
		"p3": {Name: "Caja", Quantity: 12, Type: "assorted"},
	}
}

func csvHeader() []string {
	header := []string{"sku", "nombre", "imageUrl"}
	for _, list := range PriceLists() {
		header = append(header, "precio_"+list)
	}
	for _, warehouse := range Warehouses() {
		header = append(header, "stock_"+warehouse)
	}
	header = append(header, "variantes_color", "variantes_talla")
	for _, slot := range packColumns {
		header = append(header,
			"pack_"+slot+"_name",
			"pack_"+slot+"_quantity",
			"pack_"+slot+"_type",
		)
	}
	return header
}

// ExportCSV writes the whole catalog as CSV. Column order is fixed so the
// output is diffable and re-importable.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader()); err != nil {
		return apperror.NewStorage("write csv header", err)
	}

	for _, p := range products {
		row := []string{p.SKU, p.Nombre, p.ImageURL}
		for _, list := range PriceLists() {
			row = append(row, p.PriceFor(list).String())
		}
		for _, warehouse := range Warehouses() {
			row = append(row, strconv.Itoa(p.StockIn(warehouse)))
		}
		row = append(row, joinVariantColors(p.Variants), joinVariantTallas(p.Variants))
		for _, slot := range packColumns {
			cfg, ok := p.PackConfig[slot]
			if !ok {
				row = append(row, "", "", "")
				continue
			}
			row = append(row, cfg.Name, strconv.Itoa(cfg.Quantity), cfg.Type)
		}
		if err := cw.Write(row); err != nil {
			return apperror.NewStorage("write csv row", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperror.NewStorage("flush csv", err)
	}
	return nil
}

// ImportSummary reports the outcome of one CSV import.
type ImportSummary struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

// ImportCSV upserts products by SKU. Rows matching an existing SKU update
// that product in place, keeping its id and movement history; unknown SKUs
// create new products. Malformed rows are skipped and reported, they never
// abort the rest of the file. The whole import commits atomically.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, apperror.NewValidation("csv file is empty or unreadable").WithDetail("cause", err.Error())
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols["sku"]; !ok {
		return nil, apperror.NewValidation("csv is missing the sku column")
	}

	summary := &ImportSummary{}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		products, err := s.repo.List(ctx)
		if err != nil {
			return err
		}
		bySKU := make(map[string]*Product, len(products))
		for _, p := range products {
			bySKU[p.SKU] = p
		}

		line := 1
		for {
			line++
			row, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: %v", line, err))
				continue
			}

			field := func(name string) string {
				i, ok := cols[name]
				if !ok || i >= len(row) {
					return ""
				}
				return strings.TrimSpace(row[i])
			}

			sku := field("sku")
			if sku == "" {
				summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: missing sku", line))
				continue
			}
			nombre := field("nombre")
			if nombre == "" {
				summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: missing nombre", line))
				continue
			}

			rowErr := ""
			precios := make(map[string]types.Money, len(PriceLists()))
			for _, list := range PriceLists() {
				raw := field("precio_" + list)
				if raw == "" {
					continue
				}
				price, err := types.MoneyFromString(raw)
				if err != nil {
					rowErr = fmt.Sprintf("line %d: bad precio_%s %q", line, list, raw)
					break
				}
				precios[list] = price
			}
			if rowErr != "" {
				summary.Errors = append(summary.Errors, rowErr)
				continue
			}

			stock := make(map[string]int, len(Warehouses()))
			for _, warehouse := range Warehouses() {
				raw := field("stock_" + warehouse)
				if raw == "" {
					continue
				}
				qty, err := strconv.Atoi(raw)
				if err != nil || qty < 0 {
					rowErr = fmt.Sprintf("line %d: bad stock_%s %q", line, warehouse, raw)
					break
				}
				stock[warehouse] = qty
			}
			if rowErr != "" {
				summary.Errors = append(summary.Errors, rowErr)
				continue
			}

			variants := parseVariants(field("variantes_color"), field("variantes_talla"))
			packConfig := parsePackConfig(field)

			if existing, ok := bySKU[sku]; ok {
				existing.Nombre = nombre
				existing.ImageURL = field("imageUrl")
				existing.Precios = precios
				existing.StockPorAlmacen = stock
				existing.Variants = variants
				existing.PackConfig = packConfig
				existing.RecomputeExistencias()
				existing.SubSKUs = GenerateSubSKUs(sku, packConfig, variants)
				summary.Updated++
				continue
			}

			p := &Product{
				Base:            entity.NewBase(),
				Nombre:          nombre,
				SKU:             sku,
				ImageURL:        field("imageUrl"),
				Precios:         precios,
				StockPorAlmacen: stock,
				Variants:        variants,
				PackConfig:      packConfig,
			}
			p.RecomputeExistencias()
			p.SubSKUs = GenerateSubSKUs(sku, packConfig, variants)
			products = append(products, p)
			bySKU[sku] = p
			summary.Created++
		}

		if err := s.repo.Replace(ctx, products); err != nil {
			return err
		}
		logger.Info(ctx, "csv import finished",
			"created", summary.Created, "updated", summary.Updated, "errors", len(summary.Errors))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// parseVariants pairs the color and talla columns by position. The two
// columns are parallel lists written by ExportCSV, one entry per variant.
func parseVariants(colors, tallas string) []Variant {
	colorList := splitColumn(colors)
	tallaList := splitColumn(tallas)
	n := len(colorList)
	if len(tallaList) > n {
		n = len(tallaList)
	}
	variants := make([]Variant, 0, n)
	for i := 0; i < n; i++ {
		var v Variant
		if i < len(colorList) {
			v.Color = colorList[i]
		}
		if i < len(tallaList) {
			v.Talla = tallaList[i]
		}
		if v.Color == "" && v.Talla == "" {
			continue
		}
		variants = append(variants, v)
	}
	if len(variants) == 0 {
		return nil
	}
	return variants
}

func parsePackConfig(field func(string) string) map[string]Pack {
	packConfig := make(map[string]Pack, len(packColumns))
	for _, slot := range packColumns {
		name := field("pack_" + slot + "_name")
		if name == "" {
			continue
		}
		qty, err := strconv.Atoi(field("pack_" + slot + "_quantity"))
		if err != nil || qty <= 0 {
			continue
		}
		packType := field("pack_" + slot + "_type")
		if packType != "piece" && packType != "assorted" {
			continue
		}
		packConfig[slot] = Pack{Name: name, Quantity: qty, Type: packType}
	}
	if len(packConfig) == 0 {
		return defaultPackConfig()
	}
	return packConfig
}

// splitColumn keeps empty slots so the color and talla lists stay aligned.
func splitColumn(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func joinVariantColors(variants []Variant) string {
	return joinVariantColumn(variants, func(v Variant) string { return v.Color })
}

func joinVariantTallas(variants []Variant) string {
	return joinVariantColumn(variants, func(v Variant) string { return v.Talla })
}

// joinVariantColumn writes one entry per variant, positionally, so import
// can re-pair the columns. No dedup: {Negro/M, Blanco/M} must not collapse.
func joinVariantColumn(variants []Variant, pick func(Variant) string) string {
	parts := make([]string, len(variants))
	any := false
	for i, v := range variants {
		parts[i] = pick(v)
		if parts[i] != "" {
			any = true
		}
	}
	if !any {
		return ""
	}
	return strings.Join(parts, "|")
}
