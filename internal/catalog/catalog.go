// Package catalog serves the bilingual produce catalog from a JSON file.
// The catalog is read once at startup and immutable afterwards.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Quantity bounds applied to loose produce when a product does not override
// them.
var (
	DefaultMinQty  = decimal.RequireFromString("0.2")
	DefaultQtyStep = decimal.RequireFromString("0.5")
	DefaultMaxQty  = decimal.NewFromInt(25)
)

// Variety is a named variety of a product, e.g. an apple cultivar.
type Variety struct {
	Key    string `json:"key"`
	NameBG string `json:"nameBg"`
	NameEN string `json:"nameEn"`
}

// Product is one sellable catalog entry. MinQty and QtyStep override the
// loose-produce defaults for packaged goods (jars, boxes).
type Product struct {
	ID           string          `json:"id"`
	NameBG       string          `json:"nameBg"`
	NameEN       string          `json:"nameEn"`
	Unit         model.Unit      `json:"unit"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Varieties    []Variety       `json:"varieties,omitempty"`
	Image        string          `json:"image,omitempty"`
	MinQty       decimal.Decimal `json:"minQty,omitempty"`
	QtyStep      decimal.Decimal `json:"qtyStep,omitempty"`
}

// Name returns the product name for the locale, falling back to Bulgarian.
func (p Product) Name(locale string) string {
	if locale == "en" && p.NameEN != "" {
		return p.NameEN
	}
	return p.NameBG
}

// EffectiveMinQty returns the product minimum, or the loose-produce default.
func (p Product) EffectiveMinQty() decimal.Decimal {
	if p.MinQty.IsPositive() {
		return p.MinQty
	}
	return DefaultMinQty
}

// EffectiveQtyStep returns the product step, or the loose-produce default.
func (p Product) EffectiveQtyStep() decimal.Decimal {
	if p.QtyStep.IsPositive() {
		return p.QtyStep
	}
	return DefaultQtyStep
}

// Catalog is the loaded product list with id lookup.
type Catalog struct {
	products []Product
	byID     map[string]Product
	logger   zerolog.Logger
}

// Load reads the catalog JSON file and indexes it by product id.
func Load(path string, logger zerolog.Logger) (*Catalog, error) {
	logger = logger.With().Str("component", "catalog").Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	c := &Catalog{
		products: products,
		byID:     make(map[string]Product, len(products)),
		logger:   logger,
	}

	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog file %s: product with empty id", path)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("catalog file %s: duplicate product id %s", path, p.ID)
		}
		c.byID[p.ID] = p
	}

	logger.Info().
		Str("file", path).
		Int("product_count", len(products)).
		Msg("catalog loaded")

	return c, nil
}

// Products returns all catalog entries in file order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Variety returns the named variety of a product.
func (c *Catalog) Variety(productID, key string) (Variety, bool) {
	p, ok := c.byID[productID]
	if !ok {
		return Variety{}, false
	}
	for _, v := range p.Varieties {
		if v.Key == key {
			return v, true
		}
	}
	return Variety{}, false
}
