package warranty

import (
	"context"
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"
	"github.com/vuminhhoangg/E-Store-sub000/internal/metrics"
	"github.com/vuminhhoangg/E-Store-sub000/internal/order"

	"go.uber.org/zap"
)

// EventPublisher pushes claim lifecycle events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, pattern string, data interface{}) error
}

// StatusChangedEvent is emitted on every claim status transition.
type StatusChangedEvent struct {
	ClaimID     uint      `json:"claimId"`
	ClaimNumber string    `json:"claimNumber"`
	Status      string    `json:"status"`
	UpdatedBy   uint      `json:"updatedBy"`
	ChangedAt   time.Time `json:"changedAt"`
}

// FiledEvent is emitted when a buyer submits a new claim.
type FiledEvent struct {
	ClaimID          uint      `json:"claimId"`
	ClaimNumber      string    `json:"claimNumber"`
	OrderNumber      string    `json:"orderNumber"`
	UserID           uint      `json:"userId"`
	IsWithinWarranty bool      `json:"isWithinWarranty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Service interface {
	CreateClaim(ctx context.Context, params CreateParams) (*Claim, error)
	GetByID(ctx context.Context, claimID, requesterID uint, isAdmin bool) (*Claim, error)
	ListMine(ctx context.Context, userID uint, params ListParams) ([]*Claim, error)
	List(ctx context.Context, params ListParams) ([]*Claim, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (*Claim, error)
}

type service struct {
	repo      Repository
	orderRepo order.Repository
	publisher EventPublisher
	stats     *metrics.Store
}

func NewService(repo Repository, orderRepo order.Repository, publisher EventPublisher, stats *metrics.Store) Service {
	return &service{
		repo:      repo,
		orderRepo: orderRepo,
		publisher: publisher,
		stats:     stats,
	}
}

// CreateClaim files a claim against one item of a delivered order. The order
// number, product name, serial and warranty window are copied onto the claim,
// and the within-warranty flag is computed once here. It stays frozen after
// that even when the window later expires.
func (s *service) CreateClaim(ctx context.Context, params CreateParams) (*Claim, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", params.UserID),
		zap.Uint("order_id", params.OrderID),
	)

	if params.Description == "" {
		return nil, ErrDescriptionMissing
	}

	o, err := s.orderRepo.GetByID(ctx, params.OrderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != params.UserID {
		return nil, ErrUnauthorized
	}
	if o.Status != order.StatusDelivered {
		return nil, ErrOrderNotDelivered
	}

	var item *order.Item
	for _, it := range o.Items {
		if it.ProductID == params.ProductID {
			item = it
			break
		}
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.WarrantyStartDate == nil || item.WarrantyEndDate == nil {
		return nil, ErrWarrantyNotActive
	}

	now := time.Now()
	c := &Claim{
		UserID:            params.UserID,
		OrderID:           o.ID,
		OrderNumber:       o.OrderNumber,
		ProductID:         item.ProductID,
		ProductName:       item.Name,
		Description:       params.Description,
		ImageURLs:         params.ImageURLs,
		Status:            StatusPending,
		Contact:           params.Contact,
		WarrantyStartDate: item.WarrantyStartDate,
		WarrantyEndDate:   item.WarrantyEndDate,
		IsWithinWarranty:  !now.Before(*item.WarrantyStartDate) && !now.After(*item.WarrantyEndDate),
	}
	if item.SerialNumber != nil {
		c.SerialNumber = *item.SerialNumber
	}
	c.StatusHistory = c.StatusHistory.Append(string(StatusPending), params.UserID, "claim filed", now)

	if err := s.repo.CreateClaimTx(ctx, c); err != nil {
		log.Error("failed to create warranty claim", zap.Error(err))
		return nil, err
	}

	s.stats.ClaimsFiled.Inc()
	s.publish(ctx, "claim.filed", FiledEvent{
		ClaimID:          c.ID,
		ClaimNumber:      c.ClaimNumber,
		OrderNumber:      c.OrderNumber,
		UserID:           c.UserID,
		IsWithinWarranty: c.IsWithinWarranty,
		CreatedAt:        c.CreatedAt,
	})

	log.Info("warranty claim filed",
		zap.String("claim_number", c.ClaimNumber),
		zap.Bool("within_warranty", c.IsWithinWarranty),
	)
	return c, nil
}

func (s *service) GetByID(ctx context.Context, claimID, requesterID uint, isAdmin bool) (*Claim, error) {
	c, err := s.repo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && c.UserID != requesterID {
		return nil, ErrUnauthorized
	}
	return c, nil
}

func (s *service) ListMine(ctx context.Context, userID uint, params ListParams) ([]*Claim, error) {
	return s.repo.ListByUser(ctx, userID, params)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Claim, error) {
	return s.repo.List(ctx, params)
}

// UpdateStatus applies an admin decision: new status, optional admin fields,
// one more history entry. Closed claims reject further updates.
func (s *service) UpdateStatus(ctx context.Context, params UpdateStatusParams) (*Claim, error) {
	if !params.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	c, err := s.repo.GetByID(ctx, params.ClaimID)
	if err != nil {
		return nil, err
	}
	if c.Status.Terminal() {
		return nil, ErrClaimClosed
	}

	if params.AdminNotes != nil {
		c.AdminNotes = *params.AdminNotes
	}
	if params.RepairCost != nil {
		c.RepairCost = *params.RepairCost
	}
	if params.IsPaid != nil {
		c.IsPaid = *params.IsPaid
	}

	c.UpdateStatus(params.Status, params.ActorID, params.Note)
	if err := s.repo.SaveStatus(ctx, c); err != nil {
		return nil, err
	}

	s.stats.StatusUpdates.Inc()
	s.publish(ctx, "claim.status_changed", StatusChangedEvent{
		ClaimID:     c.ID,
		ClaimNumber: c.ClaimNumber,
		Status:      string(params.Status),
		UpdatedBy:   params.ActorID,
		ChangedAt:   c.StatusHistory.Latest().CreatedAt,
	})

	logger.FromCtx(ctx).Info("claim status updated",
		zap.String("claim_number", c.ClaimNumber),
		zap.String("status", string(params.Status)),
		zap.Uint("actor_id", params.ActorID),
	)
	return c, nil
}

func (s *service) publish(ctx context.Context, pattern string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, pattern, data); err != nil {
		// Event delivery is best effort; the claim itself is already saved.
		logger.FromCtx(ctx).Warn("failed to publish event",
			zap.String("pattern", pattern), zap.Error(err))
	}
}
