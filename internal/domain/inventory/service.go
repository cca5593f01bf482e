package inventory

import (
	"context"
	"time"

	"mochini/internal/core/apperror"
	"mochini/internal/core/appctx"
	"mochini/internal/core/id"
	"mochini/internal/core/tx"
	"mochini/internal/domain"
	"mochini/pkg/logger"
)

// Service provides catalog operations on products.
type Service struct {
	repo *domain.Repository[*Product]
	txm  tx.Manager
}

// NewService creates a product service.
func NewService(repo *domain.Repository[*Product], txm tx.Manager) *Service {
	return &Service{repo: repo, txm: txm}
}

// Repo exposes the underlying repository for collaborators that only read.
func (s *Service) Repo() *domain.Repository[*Product] {
	return s.repo
}

// List returns the catalog snapshot.
func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

// GetByID returns one product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Create validates and stores a new product. SKUs are unique within the
// catalog; the CSV importer relies on that for upserts.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	p.RecomputeExistencias()

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.List(ctx)
		if err != nil {
			return err
		}
		for _, other := range existing {
			if other.SKU == p.SKU {
				return apperror.NewValidation("a product with this sku already exists").
					WithDetail("sku", p.SKU)
			}
		}
		_, err = s.repo.Add(ctx, p)
		if err != nil {
			return err
		}
		logger.Info(ctx, "product created", "id", p.ID, "sku", p.SKU)
		return nil
	})
}

// Update validates and replaces a product.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	p.RecomputeExistencias()
	_, err := s.repo.Update(ctx, p)
	return err
}

// Delete removes a product from the catalog. Orders that reference it keep
// their copied line data; there is no cascade.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	return s.repo.Remove(ctx, productID)
}

// AdjustStock applies a manual correction to one warehouse, logging an
// "Ajuste" movement. The resulting quantity may not go negative.
func (s *Service) AdjustStock(ctx context.Context, productID id.ID, warehouse string, delta int, notas string) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		if p.StockIn(warehouse)+delta < 0 {
			return apperror.NewInsufficientStock(p.Nombre, warehouse, -delta, p.StockIn(warehouse))
		}

		p.AdjustStock(warehouse, delta)
		p.LogMovement(Movement{
			Fecha:    time.Now().UTC(),
			Tipo:     MovementAjuste,
			Cantidad: delta,
			Usuario:  appctx.UserName(ctx),
			Notas:    notas,
		})

		if _, err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		logger.Info(ctx, "stock adjusted", "product", p.ID, "warehouse", warehouse, "delta", delta)
		return nil
	})
}
