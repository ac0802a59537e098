package httpserver

import (
	"net/http"

	"dutyfree-pos/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type checkoutResponse struct {
	SaleID        string               `json:"saleId,omitempty"`
	SaleNumber    string               `json:"saleNumber,omitempty"`
	Status        string               `json:"status,omitempty"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Currency      domain.Currency      `json:"currency"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	TaxAmount     decimal.Decimal      `json:"taxAmount"`
	Total         decimal.Decimal      `json:"total"`
}

func (h *handlers) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "paymentMethod requis"})
		return
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		h.writeError(c, err)
		return
	}

	attempt, err := h.deps.Terminal.Checkout(c.Request.Context(), method)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := checkoutResponse{
		PaymentMethod: method,
		Currency:      attempt.Request.Currency,
		Subtotal:      attempt.Totals.Subtotal,
		TaxAmount:     attempt.Totals.TaxAmount,
		Total:         attempt.Totals.Total,
	}
	if attempt.Receipt != nil {
		resp.SaleID = attempt.Receipt.ID
		resp.SaleNumber = attempt.Receipt.SaleNumber
		resp.Status = attempt.Receipt.Status
	}
	c.JSON(http.StatusCreated, resp)
}
