package salesapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"dutyfree-pos/internal/domain"

	"github.com/shopspring/decimal"
)

// flexID accepts ids sent either as JSON numbers or strings, and sends
// canonical integers back as numbers. Anything else, "007" included, stays a
// string.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

func (id flexID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// amount encodes a decimal as a bare JSON number, which is what the Sales
// API binds its monetary fields from.
func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type productDTO struct {
	ID              flexID              `json:"id"`
	Code            string              `json:"code"`
	Barcode         string              `json:"barcode"`
	NameFr          string              `json:"nameFr"`
	NameEn          string              `json:"nameEn"`
	CategoryName    string              `json:"categoryName"`
	SellingPriceXOF decimal.NullDecimal `json:"sellingPriceXOF"`
	SellingPriceEUR decimal.NullDecimal `json:"sellingPriceEUR"`
	SellingPriceUSD decimal.NullDecimal `json:"sellingPriceUSD"`
	TaxRate         decimal.NullDecimal `json:"taxRate"`
	ImageURL        string              `json:"imageUrl"`
	Active          *bool               `json:"active"`
	CurrentStock    *int                `json:"currentStock"`
	MinStockLevel   *int                `json:"minStockLevel"`
}

func (p productDTO) toDomain() (domain.Product, error) {
	if p.ID == "" {
		return domain.Product{}, fmt.Errorf("product %q: %w", p.Code, domain.ErrInvalidProduct)
	}
	for name, price := range map[string]decimal.NullDecimal{
		"sellingPriceXOF": p.SellingPriceXOF,
		"sellingPriceEUR": p.SellingPriceEUR,
		"sellingPriceUSD": p.SellingPriceUSD,
	} {
		if price.Valid && price.Decimal.IsNegative() {
			return domain.Product{}, fmt.Errorf("product %s: negative %s %s", p.ID, name, price.Decimal)
		}
	}

	out := domain.Product{
		ID:       string(p.ID),
		Code:     p.Code,
		Barcode:  p.Barcode,
		NameFr:   p.NameFr,
		NameEn:   p.NameEn,
		Category: p.CategoryName,
		PriceXOF: p.SellingPriceXOF,
		PriceEUR: p.SellingPriceEUR,
		PriceUSD: p.SellingPriceUSD,
		TaxRate:  decimal.Zero,
		ImageURL: p.ImageURL,
		Active:   true,
	}
	if p.TaxRate.Valid {
		out.TaxRate = p.TaxRate.Decimal
	}
	if p.Active != nil {
		out.Active = *p.Active
	}
	if p.CurrentStock != nil {
		out.StockQuantity = *p.CurrentStock
	}
	if p.MinStockLevel != nil {
		out.MinStockLevel = *p.MinStockLevel
	}
	return out, nil
}

type saleItemDTO struct {
	ProductID       flexID      `json:"productId"`
	ProductName     string      `json:"productName"`
	Quantity        int         `json:"quantity"`
	UnitPrice       json.Number `json:"unitPrice"`
	TaxRate         json.Number `json:"taxRate"`
	DiscountPercent json.Number `json:"discountPercent"`
	TotalPrice      json.Number `json:"totalPrice"`
}

type paymentDTO struct {
	Method   string      `json:"method"`
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
}

type saleRequestDTO struct {
	Items    []saleItemDTO `json:"items"`
	Currency string        `json:"currency"`
	Payments []paymentDTO  `json:"payments"`
}

func newSaleRequestDTO(req domain.SaleRequest) saleRequestDTO {
	out := saleRequestDTO{
		Items:    make([]saleItemDTO, 0, len(req.Items)),
		Currency: req.Currency.String(),
		Payments: make([]paymentDTO, 0, len(req.Payments)),
	}
	for _, line := range req.Items {
		out.Items = append(out.Items, saleItemDTO{
			ProductID:       flexID(line.ProductID),
			ProductName:     line.ProductName,
			Quantity:        line.Quantity,
			UnitPrice:       amount(line.UnitPrice),
			TaxRate:         amount(line.TaxRate),
			DiscountPercent: amount(line.DiscountPercent),
			TotalPrice:      amount(line.TotalPrice),
		})
	}
	for _, p := range req.Payments {
		out.Payments = append(out.Payments, paymentDTO{
			Method:   string(p.Method),
			Amount:   amount(p.Amount),
			Currency: p.Currency.String(),
		})
	}
	return out
}

type saleDTO struct {
	ID         flexID `json:"id"`
	SaleNumber string `json:"saleNumber"`
	Status     string `json:"status"`
}

type userDTO struct {
	ID        flexID `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Active    *bool  `json:"active"`
	CreatedAt string `json:"createdAt"`
}

func (u userDTO) toDomain() domain.User {
	out := domain.User{
		ID:        string(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      domain.Role(u.Role),
		Active:    true,
		CreatedAt: u.CreatedAt,
	}
	if u.Active != nil {
		out.Active = *u.Active
	}
	return out
}

// loginDTO accepts both the flat {token, ...user} answer and the nested
// {token, user} form.
type loginDTO struct {
	Token string   `json:"token"`
	User  *userDTO `json:"user"`
	userDTO
}

func (l loginDTO) user() domain.User {
	if l.User != nil {
		return l.User.toDomain()
	}
	return l.userDTO.toDomain()
}
