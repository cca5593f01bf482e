package inventory

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateSubSKUs derives the sellable packaging/variant combinations of a
// base SKU. Assorted packs get a single "Surtido" sub-SKU; the piece pack
// gets one sub-SKU per variant.
func GenerateSubSKUs(baseSKU string, packConfig map[string]Pack, variants []Variant) []SubSKU {
	if baseSKU == "" || len(packConfig) == 0 {
		return nil
	}

	packKeys := make([]string, 0, len(packConfig))
	for key := range packConfig {
		packKeys = append(packKeys, key)
	}
	sort.Strings(packKeys)

	var subSkus []SubSKU
	for _, packKey := range packKeys {
		cfg := packConfig[packKey]
		if cfg.Type != "assorted" {
			continue
		}
		subSkus = append(subSkus, SubSKU{
			Variant:  Variant{Color: "Surtido"},
			Pack:     packKey,
			SubSKU:   fmt.Sprintf("%s-%s-SURT", baseSKU, strings.ToUpper(packKey)),
			Quantity: cfg.Quantity,
		})
	}

	for _, packKey := range packKeys {
		cfg := packConfig[packKey]
		if cfg.Type != "piece" {
			continue
		}
		for _, variant := range variants {
			subSkus = append(subSkus, SubSKU{
				Variant:  variant,
				Pack:     packKey,
				SubSKU:   baseSKU + variantCode(variant.Color) + variantCode(variant.Talla) + "-" + strings.ToUpper(packKey),
				Quantity: cfg.Quantity,
			})
		}
		// Only the first piece pack produces per-variant sub-SKUs.
		break
	}
	return subSkus
}

func variantCode(value string) string {
	if value == "" {
		return ""
	}
	return "-" + strings.ToUpper(strings.ReplaceAll(value, " ", ""))
}
