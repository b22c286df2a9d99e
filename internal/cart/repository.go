package cart

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetItemByUserAndProduct(ctx context.Context, userID, productID uint) (*Item, error)
	CreateItem(ctx context.Context, item *Item) (*Item, error)
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	GetCart(ctx context.Context, userID uint) (*Cart, error)
	RemoveItem(ctx context.Context, params RemoveParams) error
	ClearCart(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetItemByUserAndProduct(ctx context.Context, userID, productID uint) (*Item, error) {
	var item Item
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, name, image, price, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Name, &item.Image,
		&item.Price, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, item *Item) (*Item, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, name, image, price, quantity)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at
	`, item.UserID, item.ProductID, item.Name, item.Image, item.Price, item.Quantity).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2
	`, quantity, itemID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, product_id, name, image, price, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart := &Cart{UserID: userID}
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Name, &item.Image,
			&item.Price, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, &item)
		cart.ItemsTotal += item.Price * float64(item.Quantity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *repository) RemoveItem(ctx context.Context, params RemoveParams) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2
	`, params.UserID, params.ProductID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) ClearCart(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
