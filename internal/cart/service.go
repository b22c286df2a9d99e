package cart

import (
	"context"

	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"
	"github.com/vuminhhoangg/E-Store-sub000/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, params AddParams) (*Item, error)
	GetCart(ctx context.Context, userID uint) (*Cart, error)
	UpdateQuantity(ctx context.Context, params UpdateParams) error
	RemoveFromCart(ctx context.Context, params RemoveParams) error
	ClearCart(ctx context.Context, userID uint) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// AddToCart adds a product to the user's cart, merging quantity with any
// existing line for the same product.
func (s *service) AddToCart(ctx context.Context, params AddParams) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", params.UserID),
		zap.Uint("product_id", params.ProductID),
		zap.Int("quantity", params.Quantity),
	)

	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if p.CountInStock < finalQty {
		log.Warn("insufficient stock", zap.Int("stock", p.CountInStock), zap.Int("requested", finalQty))
		return nil, product.ErrInsufficientStock
	}

	if existing == nil {
		item := &Item{
			UserID:    params.UserID,
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.Price,
			Quantity:  params.Quantity,
		}
		created, err := s.repo.CreateItem(ctx, item)
		if err != nil {
			return nil, err
		}
		log.Info("cart item created", zap.Uint("cart_item_id", created.ID))
		return created, nil
	}

	if err := s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty); err != nil {
		return nil, err
	}
	existing.Quantity = finalQty
	log.Info("cart item quantity merged", zap.Int("final_qty", finalQty))
	return existing, nil
}

func (s *service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	return s.repo.GetCart(ctx, userID)
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (s *service) UpdateQuantity(ctx context.Context, params UpdateParams) error {
	if params.Quantity <= 0 {
		return s.repo.RemoveItem(ctx, RemoveParams{
			UserID:    params.UserID,
			ProductID: params.ProductID,
		})
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		return err
	}
	if p.CountInStock < params.Quantity {
		return product.ErrInsufficientStock
	}

	return s.repo.UpdateItemQuantity(ctx, existing.ID, params.Quantity)
}

func (s *service) RemoveFromCart(ctx context.Context, params RemoveParams) error {
	return s.repo.RemoveItem(ctx, params)
}

func (s *service) ClearCart(ctx context.Context, userID uint) error {
	return s.repo.ClearCart(ctx, userID)
}
