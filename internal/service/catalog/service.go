package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"dutyfree-pos/internal/domain"

	"github.com/rs/zerolog"
)

// Source lists the products sold at the terminal.
type Source interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Service keeps the last product snapshot fetched from the Sales API.
type Service struct {
	src    Source
	logger zerolog.Logger

	mu       sync.RWMutex
	products []domain.Product
	byID     map[string]domain.Product
	loadedAt time.Time
}

func New(src Source, logger zerolog.Logger) *Service {
	return &Service{
		src:    src,
		logger: logger.With().Str("component", "catalog").Logger(),
		byID:   map[string]domain.Product{},
	}
}

// Refresh replaces the snapshot. On failure the previous snapshot is kept.
func (s *Service) Refresh(ctx context.Context) (map[string]domain.Product, error) {
	products, err := s.src.ListProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("refresh catalog")
		return nil, fmt.Errorf("refresh catalog: %w", err)
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info().Int("count", len(products)).Msg("catalog refreshed")
	return copyIndex(byID), nil
}

func (s *Service) Get(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

// ByID returns a copy of the snapshot keyed by product id.
func (s *Service) ByID() map[string]domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIndex(s.byID)
}

func (s *Service) List() []domain.Product {
	return s.Search("")
}

// Search matches the French or English name case-insensitively, or a
// barcode substring. An empty query returns everything.
func (s *Service) Search(q string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(q)
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.NameFr), needle) ||
			strings.Contains(strings.ToLower(p.NameEn), needle) ||
			(p.Barcode != "" && strings.Contains(p.Barcode, q)) {
			out = append(out, p)
		}
	}
	return out
}

// LoadedAt is the time of the last successful refresh, zero before the first.
func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func copyIndex(in map[string]domain.Product) map[string]domain.Product {
	out := make(map[string]domain.Product, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
