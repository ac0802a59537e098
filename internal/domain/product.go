package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry as served by the Sales API. Prices are
// configured independently per currency and any of them may be absent.
type Product struct {
	ID            string              `json:"id"`
	Code          string              `json:"code,omitempty"`
	Barcode       string              `json:"barcode,omitempty"`
	NameFr        string              `json:"nameFr"`
	NameEn        string              `json:"nameEn,omitempty"`
	Category      string              `json:"category,omitempty"`
	PriceXOF      decimal.NullDecimal `json:"priceXOF"`
	PriceEUR      decimal.NullDecimal `json:"priceEUR"`
	PriceUSD      decimal.NullDecimal `json:"priceUSD"`
	TaxRate       decimal.Decimal     `json:"taxRate"`
	ImageURL      string              `json:"imageUrl,omitempty"`
	Active        bool                `json:"active"`
	StockQuantity int                 `json:"stockQuantity"`
	MinStockLevel int                 `json:"minStockLevel"`
}

// DisplayName prefers the French name, which is what the desk prints.
func (p Product) DisplayName() string {
	if p.NameFr != "" {
		return p.NameFr
	}
	if p.NameEn != "" {
		return p.NameEn
	}
	return p.Code
}
