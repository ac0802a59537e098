package httpserver

import (
	"net/http"

	"dutyfree-pos/internal/domain"
	"dutyfree-pos/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type productResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	NameFr        string          `json:"nameFr"`
	NameEn        string          `json:"nameEn,omitempty"`
	Category      string          `json:"category,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Currency      domain.Currency `json:"currency"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	StockQuantity int             `json:"stockQuantity"`
	LowStock      bool            `json:"lowStock"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

func toProductResponse(p domain.Product, currency domain.Currency) productResponse {
	return productResponse{
		ID:            p.ID,
		Code:          p.Code,
		Barcode:       p.Barcode,
		NameFr:        p.NameFr,
		NameEn:        p.NameEn,
		Category:      p.Category,
		Price:         pricing.PriceFor(p, currency),
		Currency:      currency,
		TaxRate:       p.TaxRate,
		StockQuantity: p.StockQuantity,
		LowStock:      p.StockQuantity <= p.MinStockLevel,
		ImageURL:      p.ImageURL,
	}
}

func (h *handlers) listCatalog(c *gin.Context) {
	currency := h.deps.Terminal.Snapshot().Currency
	products := h.deps.Catalog.Search(c.Query("q"))
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p, currency))
	}
	c.JSON(http.StatusOK, gin.H{"results": out, "total": len(out), "currency": currency})
}

func (h *handlers) refreshCatalog(c *gin.Context) {
	n, err := h.deps.Terminal.RefreshCatalog(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": n, "cart": toCartResponse(h.deps.Terminal.Snapshot())})
}
