package salesapi

import (
	"context"
	"net/http"

	"dutyfree-pos/internal/domain"
)

// CreateSale posts the cart as a single sale.
func (c *Client) CreateSale(ctx context.Context, req domain.SaleRequest) (*domain.SaleReceipt, error) {
	var dto saleDTO
	if err := c.do(ctx, http.MethodPost, "/sales", newSaleRequestDTO(req), &dto); err != nil {
		return nil, err
	}
	return &domain.SaleReceipt{
		ID:         string(dto.ID),
		SaleNumber: dto.SaleNumber,
		Status:     dto.Status,
	}, nil
}
