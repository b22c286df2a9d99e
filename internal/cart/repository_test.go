package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "product_id", "name", "image", "price", "quantity", "created_at", "updated_at",
	})
}

func TestRepository_GetItemByUserAndProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM cart_items").
			WithArgs(uint(1), uint(2)).
			WillReturnRows(itemRows().AddRow(10, 1, 2, "Phone X", "img.jpg", 499.0, 1, time.Now(), time.Now()))

		item, err := repo.GetItemByUserAndProduct(context.Background(), 1, 2)
		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, uint(10), item.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM cart_items").
			WithArgs(uint(1), uint(3)).
			WillReturnRows(itemRows())

		item, err := repo.GetItemByUserAndProduct(context.Background(), 1, 3)
		assert.NoError(t, err)
		assert.Nil(t, item)
	})
}

func TestRepository_CreateItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	item := &Item{UserID: 1, ProductID: 2, Name: "Phone X", Image: "img.jpg", Price: 499, Quantity: 2}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WithArgs(uint(1), uint(2), "Phone X", "img.jpg", 499.0, 2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(10, time.Now(), time.Now()))

		created, err := repo.CreateItem(context.Background(), item)
		assert.NoError(t, err)
		assert.Equal(t, uint(10), created.ID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WillReturnError(errors.New("db error"))

		_, err := repo.CreateItem(context.Background(), item)
		assert.Error(t, err)
	})
}

func TestRepository_UpdateItemQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE cart_items SET quantity").
			WithArgs(5, uint(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateItemQuantity(context.Background(), 10, 5))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE cart_items SET quantity").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateItemQuantity(context.Background(), 99, 5), ErrCartItemNotFound)
	})
}

func TestRepository_GetCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("ComputesRunningTotal", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM cart_items").
			WithArgs(uint(1)).
			WillReturnRows(itemRows().
				AddRow(10, 1, 2, "Phone X", "img.jpg", 499.0, 2, time.Now(), time.Now()).
				AddRow(11, 1, 3, "Case", "case.jpg", 19.0, 1, time.Now(), time.Now()))

		cart, err := repo.GetCart(context.Background(), 1)
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 2)
		assert.InDelta(t, 1017.0, cart.ItemsTotal, 0.001)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM cart_items").
			WithArgs(uint(2)).
			WillReturnRows(itemRows())

		cart, err := repo.GetCart(context.Background(), 2)
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.ItemsTotal)
	})
}

func TestRepository_RemoveItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items WHERE user_id").
			WithArgs(uint(1), uint(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.RemoveItem(context.Background(), RemoveParams{UserID: 1, ProductID: 2}))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items WHERE user_id").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveItem(context.Background(), RemoveParams{UserID: 1, ProductID: 99})
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}

func TestRepository_ClearCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM cart_items WHERE user_id").
		WithArgs(uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, repo.ClearCart(context.Background(), 1))
}
