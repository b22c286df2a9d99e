package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password", "is_admin", "created_at"})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Alice", "alice@example.com", "hashed").
			WillReturnRows(userRows().AddRow(1, "Alice", "alice@example.com", "hashed", false, time.Now()))

		u, err := repo.Create(context.Background(), "Alice", "alice@example.com", "hashed")
		assert.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
		assert.False(t, u.IsAdmin)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err := repo.Create(context.Background(), "Alice", "alice@example.com", "hashed")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), "Alice", "alice@example.com", "hashed")
		assert.Error(t, err)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, password, is_admin, created_at").
			WithArgs("alice@example.com").
			WillReturnRows(userRows().AddRow(1, "Alice", "alice@example.com", "hashed", true, time.Now()))

		u, err := repo.FindByEmail(context.Background(), "alice@example.com")
		assert.NoError(t, err)
		assert.True(t, u.IsAdmin)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, password, is_admin, created_at").
			WithArgs("ghost@example.com").
			WillReturnRows(userRows())

		_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, password, is_admin, created_at").
			WithArgs(1).
			WillReturnRows(userRows().AddRow(1, "Alice", "alice@example.com", "hashed", false, time.Now()))

		u, err := repo.FindByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "Alice", u.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, password, is_admin, created_at").
			WithArgs(99).
			WillReturnRows(userRows())

		_, err := repo.FindByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
