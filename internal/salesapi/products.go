package salesapi

import (
	"context"
	"net/http"

	"dutyfree-pos/internal/domain"
)

// ListProducts fetches the catalog. Records that fail validation are
// skipped and logged rather than failing the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var dtos []productDTO
	if err := c.do(ctx, http.MethodGet, "/products", nil, &dtos); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := dto.toDomain()
		if err != nil {
			c.logger.Warn().Err(err).Msg("skipping invalid product")
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
