package httpserver

import (
	"net/http"

	"dutyfree-pos/internal/domain"
	"dutyfree-pos/internal/service/terminal"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type cartResponse struct {
	Items       []domain.CartLine `json:"items"`
	ItemCount   int               `json:"itemCount"`
	Currency    domain.Currency   `json:"currency"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	TaxAmount   decimal.Decimal   `json:"taxAmount"`
	Total       decimal.Decimal   `json:"total"`
	CheckingOut bool              `json:"checkingOut"`
}

func toCartResponse(s terminal.Snapshot) cartResponse {
	items := s.Lines
	if items == nil {
		items = []domain.CartLine{}
	}
	count := 0
	for _, l := range items {
		count += l.Quantity
	}
	return cartResponse{
		Items:       items,
		ItemCount:   count,
		Currency:    s.Currency,
		Subtotal:    s.Totals.Subtotal,
		TaxAmount:   s.Totals.TaxAmount,
		Total:       s.Totals.Total,
		CheckingOut: s.CheckingOut,
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type updateItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type currencyRequest struct {
	Currency string `json:"currency" binding:"required"`
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, toCartResponse(h.deps.Terminal.Snapshot()))
}

func (h *handlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId requis"})
		return
	}
	if _, err := h.deps.Terminal.Add(req.ProductID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(h.deps.Terminal.Snapshot()))
}

func (h *handlers) updateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "delta requis"})
		return
	}
	if err := h.deps.Terminal.UpdateQuantity(c.Param("productId"), req.Delta); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(h.deps.Terminal.Snapshot()))
}

func (h *handlers) removeItem(c *gin.Context) {
	if err := h.deps.Terminal.Remove(c.Param("productId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(h.deps.Terminal.Snapshot()))
}

func (h *handlers) clearCart(c *gin.Context) {
	if err := h.deps.Terminal.Clear(); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(h.deps.Terminal.Snapshot()))
}

func (h *handlers) setCurrency(c *gin.Context) {
	var req currencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "currency requis"})
		return
	}
	cur, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.deps.Terminal.SetCurrency(cur); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(h.deps.Terminal.Snapshot()))
}
