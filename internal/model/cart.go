package model

import "github.com/shopspring/decimal"

// Unit is the measure a product is sold and priced in.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitBunch    Unit = "bunch"
	UnitJar      Unit = "jar"
	UnitBox      Unit = "box"
)

// CartItem is one line in the shopping cart. Lines are identified by the
// (ProductID, VarietyKey, Notes) triple: adding an item with the same triple
// merges quantities into the existing line, a different variety or note
// produces a distinct line.
type CartItem struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	VarietyKey   string          `json:"varietyKey,omitempty"`
	Unit         Unit            `json:"unit"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Qty          decimal.Decimal `json:"qty"`
	Notes        string          `json:"notes,omitempty"`
	Image        string          `json:"image,omitempty"`
}

// LineTotal returns qty * pricePerUnit. Always computed, never stored.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Qty.Mul(i.PricePerUnit)
}

// SameLine reports whether the item occupies the cart line identified by the
// given triple.
func (i CartItem) SameLine(productID, varietyKey, notes string) bool {
	return i.ProductID == productID && i.VarietyKey == varietyKey && i.Notes == notes
}
