package product

import (
	"context"

	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, params CreateParams) (*Product, error)
	GetByID(ctx context.Context, productID uint) (*Product, error)
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)
	Update(ctx context.Context, params UpdateParams) error
	Delete(ctx context.Context, productID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if params.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if params.WarrantyPeriodMonths < 0 {
		return nil, ErrInvalidWarranty
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.Uint("product_id", p.ID),
		zap.String("name", p.Name),
	)
	return p, nil
}

func (s *service) GetByID(ctx context.Context, productID uint) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Update(ctx context.Context, params UpdateParams) error {
	if params.Price != nil && *params.Price < 0 {
		return ErrInvalidPrice
	}
	if params.WarrantyPeriodMonths != nil && *params.WarrantyPeriodMonths < 0 {
		return ErrInvalidWarranty
	}
	return s.repo.Update(ctx, params)
}

func (s *service) Delete(ctx context.Context, productID uint) error {
	return s.repo.Delete(ctx, productID)
}
