package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, productID uint) (*Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, params UpdateParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, productID uint) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		params := CreateParams{Name: "Phone X", Price: 499, WarrantyPeriodMonths: 12}
		repo.On("Create", mock.Anything, params).
			Return(&Product{ID: 1, Name: "Phone X"}, nil)

		p, err := svc.Create(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, uint(1), p.ID)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(context.Background(), CreateParams{Name: "Phone X", Price: -1})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("NegativeWarranty", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(context.Background(), CreateParams{Name: "Phone X", WarrantyPeriodMonths: -6})
		assert.ErrorIs(t, err, ErrInvalidWarranty)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		price := 450.0
		params := UpdateParams{ProductID: 1, Price: &price}
		repo.On("Update", mock.Anything, params).Return(nil)

		assert.NoError(t, svc.Update(context.Background(), params))
		repo.AssertExpectations(t)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		price := -450.0
		err := svc.Update(context.Background(), UpdateParams{ProductID: 1, Price: &price})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}
