package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/cart"
	"github.com/vuminhhoangg/E-Store-sub000/internal/metrics"
	"github.com/vuminhhoangg/E-Store-sub000/internal/payment"
	"github.com/vuminhhoangg/E-Store-sub000/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrderTx(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, orderID uint) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uint, params ListParams) ([]*Order, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, params ListParams) ([]*Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) SaveStatus(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) SaveWarrantyActivation(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) MarkPaid(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetItemByUserAndProduct(ctx context.Context, userID, productID uint) (*cart.Item, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepository) CreateItem(ctx context.Context, item *cart.Item) (*cart.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) GetCart(ctx context.Context, userID uint) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, params cart.RemoveParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockCartRepository) ClearCart(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, params product.CreateParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, productID uint) (*product.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*product.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, params product.UpdateParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, productID uint) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, pattern string, data interface{}) error {
	args := m.Called(ctx, pattern, data)
	return args.Error(0)
}

func newTestService(
	repo *MockRepository,
	cartRepo *MockCartRepository,
	productRepo *MockProductRepository,
	publisher *MockPublisher,
) (Service, *metrics.Store) {
	stats := metrics.NewStore()
	return NewService(repo, cartRepo, productRepo, publisher, stats), stats
}

func checkoutParams() CheckoutParams {
	return CheckoutParams{
		UserID: 1,
		ShippingAddress: ShippingAddress{
			FullName: "Alice", Address: "12 Main St", City: "Hanoi",
			District: "Ba Dinh", Ward: "Truc Bach", Phone: "0900000000", Email: "alice@example.com",
		},
		PaymentMethod: payment.MethodCOD,
	}
}

func TestService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		publisher := new(MockPublisher)
		svc, stats := newTestService(repo, cartRepo, productRepo, publisher)

		cartRepo.On("GetCart", mock.Anything, uint(1)).Return(&cart.Cart{
			UserID: 1,
			Items: []*cart.Item{
				{ProductID: 2, Name: "Phone X", Price: 499, Quantity: 2},
			},
			ItemsTotal: 998,
		}, nil)
		productRepo.On("GetByID", mock.Anything, uint(2)).
			Return(&product.Product{ID: 2, WarrantyPeriodMonths: 12}, nil)
		repo.On("CreateOrderTx", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				o := args.Get(1).(*Order)
				o.ID = 10
				o.OrderNumber = "ES-2405-0001"
			}).
			Return(nil)
		publisher.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil)

		o, err := svc.Checkout(ctx, checkoutParams())
		require.NoError(t, err)

		assert.Equal(t, "ES-2405-0001", o.OrderNumber)
		assert.Equal(t, StatusPending, o.Status)
		assert.InDelta(t, 998, o.ItemsPrice, 0.001)
		assert.InDelta(t, flatShippingFee, o.ShippingPrice, 0.001)
		assert.InDelta(t, 998+flatShippingFee, o.TotalPrice, 0.001)
		require.Len(t, o.Items, 1)
		assert.Equal(t, 12, o.Items[0].WarrantyPeriodMonths)
		require.Len(t, o.StatusHistory, 1)
		assert.Equal(t, "pending", o.StatusHistory[0].Status)
		assert.Equal(t, uint64(1), stats.OrdersPlaced.Load())
		publisher.AssertExpectations(t)
	})

	t.Run("FreeShippingOverThreshold", func(t *testing.T) {
		repo := new(MockRepository)
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		publisher := new(MockPublisher)
		publisher.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil)
		svc, _ := newTestService(repo, cartRepo, productRepo, publisher)

		cartRepo.On("GetCart", mock.Anything, uint(1)).Return(&cart.Cart{
			UserID: 1,
			Items: []*cart.Item{
				{ProductID: 2, Name: "Laptop", Price: 600000, Quantity: 1},
			},
		}, nil)
		productRepo.On("GetByID", mock.Anything, uint(2)).
			Return(&product.Product{ID: 2, WarrantyPeriodMonths: 24}, nil)
		repo.On("CreateOrderTx", mock.Anything, mock.Anything).Return(nil)

		o, err := svc.Checkout(ctx, checkoutParams())
		require.NoError(t, err)
		assert.Zero(t, o.ShippingPrice)
		assert.InDelta(t, 600000, o.TotalPrice, 0.001)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc, _ := newTestService(new(MockRepository), cartRepo, new(MockProductRepository), new(MockPublisher))

		cartRepo.On("GetCart", mock.Anything, uint(1)).Return(&cart.Cart{UserID: 1}, nil)

		_, err := svc.Checkout(ctx, checkoutParams())
		assert.ErrorIs(t, err, ErrCartEmpty)
	})

	t.Run("UnknownPaymentMethod", func(t *testing.T) {
		svc, _ := newTestService(new(MockRepository), new(MockCartRepository), new(MockProductRepository), new(MockPublisher))

		params := checkoutParams()
		params.PaymentMethod = payment.Method("crypto")

		_, err := svc.Checkout(ctx, params)
		assert.ErrorIs(t, err, payment.ErrUnknownMethod)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc, stats := newTestService(repo, cartRepo, productRepo, new(MockPublisher))

		cartRepo.On("GetCart", mock.Anything, uint(1)).Return(&cart.Cart{
			UserID: 1,
			Items:  []*cart.Item{{ProductID: 2, Name: "Phone X", Price: 499, Quantity: 1}},
		}, nil)
		productRepo.On("GetByID", mock.Anything, uint(2)).
			Return(&product.Product{ID: 2}, nil)
		repo.On("CreateOrderTx", mock.Anything, mock.Anything).Return(ErrStockConflict)

		_, err := svc.Checkout(ctx, checkoutParams())
		assert.ErrorIs(t, err, ErrStockConflict)
		assert.Zero(t, stats.OrdersPlaced.Load())
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerAllowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, new(MockCartRepository), new(MockProductRepository), new(MockPublisher))

		repo.On("GetByID", mock.Anything, uint(10)).Return(&Order{ID: 10, UserID: 1}, nil)

		o, err := svc.GetByID(ctx, 10, 1, false)
		require.NoError(t, err)
		assert.Equal(t, uint(10), o.ID)
	})

	t.Run("StrangerDenied", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, new(MockCartRepository), new(MockProductRepository), new(MockPublisher))

		repo.On("GetByID", mock.Anything, uint(10)).Return(&Order{ID: 10, UserID: 1}, nil)

		_, err := svc.GetByID(ctx, 10, 2, false)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, new(MockCartRepository), new(MockProductRepository), new(MockPublisher))

		repo.On("GetByID", mock.Anything, uint(10)).Return(&Order{ID: 10, UserID: 1}, nil)

		_, err := svc.GetByID(ctx, 10, 2, true)
		assert.NoError(t, err)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("DeliveredSetsTimestampAndPublishes", func(t *testing.T) {
		repo := new(MockRepository)
		publisher := new(MockPublisher)
		svc, stats := newTestService(repo, new(MockCartRepository), new(MockProductRepository), publisher)

		repo.On("GetByID", mock.Anything, uint(10)).
			Return(&Order{ID: 10, OrderNumber: "ES-2405-0001", UserID: 1, Status: StatusShipping}, nil)
		repo.On("SaveStatus", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
		publisher.On("Publish", mock.Anything, "order.status_changed", mock.Anything).Return(nil)

		o, err := svc.UpdateStatus(ctx, 10, StatusDelivered, 7, "left at door")
		require.NoError(t, err)

		assert.Equal(t, StatusDelivered, o.Status)
		require.NotNil(t, o.DeliveredAt)
		require.Len(t, o.StatusHistory, 1)
		assert.Equal(t, "delivered", o.StatusHistory[0].Status)
		assert.Equal(t, uint(7), o.StatusHistory[0].UpdatedBy)
		assert.Equal(t, uint64(1), stats.StatusUpdates.Load())

		event := publisher.Calls[0].Arguments.Get(2).(StatusChangedEvent)
		assert.Equal(t, "delivered", event.Status)
		assert.Equal(t, "ES-2405-0001", event.OrderNumber)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		svc, _ := newTestService(new(MockRepository), new(MockCartRepository), new(MockProductRepository), new(MockPublisher))

		_, err := svc.UpdateStatus(ctx, 10, Status("teleported"), 7, "")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("PublishFailureDoesNotFailUpdate", func(t *testing.T) {
		repo := new(MockRepository)
		publisher := new(MockPublisher)
		svc, _ := newTestService(repo, new(MockCartRepository), new(MockProductRepository), publisher)

		repo.On("GetByID", mock.Anything, uint(10)).
			Return(&Order{ID: 10, UserID: 1, Status: StatusPending}, nil)
		repo.On("SaveStatus", mock.Anything, mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("broker down"))

		_, err := svc.UpdateStatus(ctx, 10, StatusConfirmed, 7, "")
		assert.NoError(t, err)
	})
}

func TestService_ActivateWarranty(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, new(MockCartRepository), new(MockProductRepository), new(MockPublisher))

		repo.On("GetByID", mock.Anything, uint(10)).Return(&Order{
			ID: 10, UserID: 1, Status: StatusDelivered,
			Items: []*Item{{ID: 100, WarrantyPeriodMonths: 12}},
		}, nil)
		repo.On("SaveWarrantyActivation", mock.Anything, mock.Anything).Return(nil)

		o, err := svc.ActivateWarranty(ctx, 10, 7)
		require.NoError(t, err)
		assert.True(t, o.WarrantyActivated)
		require.NotNil(t, o.Items[0].WarrantyEndDate)
	})

	t.Run("AlreadyActivated", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, new(MockCartRepository), new(MockProductRepository), new(MockPublisher))

		repo.On("GetByID", mock.Anything, uint(10)).
			Return(&Order{ID: 10, WarrantyActivated: true}, nil)

		_, err := svc.ActivateWarranty(ctx, 10, 7)
		assert.ErrorIs(t, err, ErrAlreadyActivated)
	})
}

func TestService_MarkPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, new(MockCartRepository), new(MockProductRepository), new(MockPublisher))

		repo.On("GetByID", mock.Anything, uint(10)).Return(&Order{ID: 10, UserID: 1}, nil)
		repo.On("MarkPaid", mock.Anything, mock.Anything).Return(nil)

		o, err := svc.MarkPaid(ctx, 10, payment.Result{TransactionID: "tx-1", Status: "COMPLETED"})
		require.NoError(t, err)
		assert.True(t, o.IsPaid)
		require.NotNil(t, o.PaidAt)
		require.NotNil(t, o.PaymentResult)
		assert.Equal(t, "tx-1", o.PaymentResult.TransactionID)
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, new(MockCartRepository), new(MockProductRepository), new(MockPublisher))

		paidAt := time.Now()
		repo.On("GetByID", mock.Anything, uint(10)).
			Return(&Order{ID: 10, IsPaid: true, PaidAt: &paidAt}, nil)

		_, err := svc.MarkPaid(ctx, 10, payment.Result{})
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})
}
