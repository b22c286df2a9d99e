package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Product, error)
	GetByID(ctx context.Context, productID uint) (*Product, error)
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)
	Update(ctx context.Context, params UpdateParams) error
	Delete(ctx context.Context, productID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, name, image, brand, category, description,
	price, count_in_stock, rating, num_reviews, sold,
	warranty_period_months, created_at, updated_at
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Image, &p.Brand, &p.Category, &p.Description,
		&p.Price, &p.CountInStock, &p.Rating, &p.NumReviews, &p.Sold,
		&p.WarrantyPeriodMonths, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			name, image, brand, category, description,
			price, count_in_stock, warranty_period_months, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING `+productColumns,
		params.Name, params.Image, params.Brand, params.Category, params.Description,
		params.Price, params.CountInStock, params.WarrantyPeriodMonths, params.ActorID,
	)

	p, err := scanProduct(row)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert product",
			zap.String("name", params.Name), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByID(ctx context.Context, productID uint) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, productID)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "List"),
		zap.Int32("limit", params.Limit),
		zap.Int32("page", params.Page),
	)

	where := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if params.Filter.Search != nil && *params.Filter.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR brand ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+*params.Filter.Search+"%")
		argIndex++
	}
	if params.Filter.Category != nil && *params.Filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, *params.Filter.Category)
		argIndex++
	}
	if params.Filter.Brand != nil && *params.Filter.Brand != "" {
		where += fmt.Sprintf(" AND brand = $%d", argIndex)
		args = append(args, *params.Filter.Brand)
		argIndex++
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	log.Debug("products listed", zap.Int("count", len(products)), zap.Int64("total", total))
	return products, total, nil
}

func (r *repository) Update(ctx context.Context, params UpdateParams) error {
	set := "updated_at = NOW()"
	args := []any{}
	argIndex := 1

	appendField := func(column string, value any) {
		set += fmt.Sprintf(", %s = $%d", column, argIndex)
		args = append(args, value)
		argIndex++
	}

	if params.Name != nil {
		appendField("name", *params.Name)
	}
	if params.Image != nil {
		appendField("image", *params.Image)
	}
	if params.Brand != nil {
		appendField("brand", *params.Brand)
	}
	if params.Category != nil {
		appendField("category", *params.Category)
	}
	if params.Description != nil {
		appendField("description", *params.Description)
	}
	if params.Price != nil {
		appendField("price", *params.Price)
	}
	if params.CountInStock != nil {
		appendField("count_in_stock", *params.CountInStock)
	}
	if params.WarrantyPeriodMonths != nil {
		appendField("warranty_period_months", *params.WarrantyPeriodMonths)
	}
	appendField("updated_by", params.ActorID)

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", set, argIndex)
	args = append(args, params.ProductID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, productID uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
