package order

import (
	"context"
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/cart"
	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"
	"github.com/vuminhhoangg/E-Store-sub000/internal/metrics"
	"github.com/vuminhhoangg/E-Store-sub000/internal/payment"
	"github.com/vuminhhoangg/E-Store-sub000/internal/product"

	"go.uber.org/zap"
)

// Free shipping threshold and the flat fee below it.
const (
	freeShippingFrom = 500000
	flatShippingFee  = 30000
)

// EventPublisher pushes domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, pattern string, data interface{}) error
}

// StatusChangedEvent is emitted on every order status transition.
type StatusChangedEvent struct {
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	UpdatedBy   uint      `json:"updatedBy"`
	ChangedAt   time.Time `json:"changedAt"`
}

// PlacedEvent is emitted when a checkout completes.
type PlacedEvent struct {
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      uint      `json:"userId"`
	TotalPrice  float64   `json:"totalPrice"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Service interface {
	Checkout(ctx context.Context, params CheckoutParams) (*Order, error)
	GetByID(ctx context.Context, orderID, requesterID uint, isAdmin bool) (*Order, error)
	ListMine(ctx context.Context, userID uint, params ListParams) ([]*Order, error)
	List(ctx context.Context, params ListParams) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status Status, actorID uint, note string) (*Order, error)
	ActivateWarranty(ctx context.Context, orderID, actorID uint) (*Order, error)
	MarkPaid(ctx context.Context, orderID uint, result payment.Result) (*Order, error)
}

type service struct {
	repo        Repository
	cartRepo    cart.Repository
	productRepo product.Repository
	publisher   EventPublisher
	stats       *metrics.Store
}

func NewService(
	repo Repository,
	cartRepo cart.Repository,
	productRepo product.Repository,
	publisher EventPublisher,
	stats *metrics.Store,
) Service {
	return &service{
		repo:        repo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		publisher:   publisher,
		stats:       stats,
	}
}

// Checkout turns the user's cart into a pending order. Warranty periods are
// copied from the catalog onto each line so later activation does not depend
// on the product still existing unchanged.
func (s *service) Checkout(ctx context.Context, params CheckoutParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.Uint("user_id", params.UserID))

	if !params.PaymentMethod.Valid() {
		return nil, payment.ErrUnknownMethod
	}

	userCart, err := s.cartRepo.GetCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if len(userCart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	o := &Order{
		UserID:          params.UserID,
		ShippingAddress: params.ShippingAddress,
		PaymentMethod:   params.PaymentMethod,
		Notes:           params.Notes,
		Status:          StatusPending,
	}

	for _, ci := range userCart.Items {
		p, err := s.productRepo.GetByID(ctx, ci.ProductID)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, &Item{
			ProductID:            ci.ProductID,
			Name:                 ci.Name,
			Price:                ci.Price,
			Quantity:             ci.Quantity,
			WarrantyPeriodMonths: p.WarrantyPeriodMonths,
		})
		o.ItemsPrice += ci.Price * float64(ci.Quantity)
	}

	if o.ItemsPrice < freeShippingFrom {
		o.ShippingPrice = flatShippingFee
	}
	o.TotalPrice = o.ItemsPrice + o.ShippingPrice

	o.StatusHistory = o.StatusHistory.Append(string(StatusPending), params.UserID, "order placed", time.Now())

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Error("checkout failed", zap.Error(err))
		return nil, err
	}

	s.stats.OrdersPlaced.Inc()
	s.publish(ctx, "order.placed", PlacedEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		TotalPrice:  o.TotalPrice,
		CreatedAt:   o.CreatedAt,
	})

	log.Info("checkout completed",
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total_price", o.TotalPrice),
	)
	return o, nil
}

func (s *service) GetByID(ctx context.Context, orderID, requesterID uint, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, ErrUnauthorized
	}
	return o, nil
}

func (s *service) ListMine(ctx context.Context, userID uint, params ListParams) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID, params)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Order, error) {
	return s.repo.List(ctx, params)
}

// UpdateStatus records a status transition with its history entry and
// publishes the change.
func (s *service) UpdateStatus(ctx context.Context, orderID uint, status Status, actorID uint, note string) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	o.UpdateStatus(status, actorID, note)
	if err := s.repo.SaveStatus(ctx, o); err != nil {
		return nil, err
	}

	s.stats.StatusUpdates.Inc()
	s.publish(ctx, "order.status_changed", StatusChangedEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(status),
		UpdatedBy:   actorID,
		ChangedAt:   o.StatusHistory.Latest().CreatedAt,
	})

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_number", o.OrderNumber),
		zap.String("status", string(status)),
		zap.Uint("actor_id", actorID),
	)
	return o, nil
}

func (s *service) ActivateWarranty(ctx context.Context, orderID, actorID uint) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.WarrantyActivated {
		return nil, ErrAlreadyActivated
	}

	o.ActivateWarranty()
	if err := s.repo.SaveWarrantyActivation(ctx, o); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("warranty activated",
		zap.String("order_number", o.OrderNumber),
		zap.Uint("actor_id", actorID),
	)
	return o, nil
}

func (s *service) MarkPaid(ctx context.Context, orderID uint, result payment.Result) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.IsPaid {
		return nil, ErrAlreadyPaid
	}

	now := time.Now()
	o.IsPaid = true
	o.PaidAt = &now
	result.PaidAt = &now
	o.PaymentResult = &result

	if err := s.repo.MarkPaid(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) publish(ctx context.Context, pattern string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, pattern, data); err != nil {
		// Event delivery is best effort; the order itself is already saved.
		logger.FromCtx(ctx).Warn("failed to publish event",
			zap.String("pattern", pattern), zap.Error(err))
	}
}
