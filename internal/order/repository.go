package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/audit"
	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"
	"github.com/vuminhhoangg/E-Store-sub000/internal/payment"
	"github.com/vuminhhoangg/E-Store-sub000/internal/sequence"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID uint) (*Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	ListByUser(ctx context.Context, userID uint, params ListParams) ([]*Order, error)
	List(ctx context.Context, params ListParams) ([]*Order, error)
	SaveStatus(ctx context.Context, o *Order) error
	SaveWarrantyActivation(ctx context.Context, o *Order) error
	MarkPaid(ctx context.Context, o *Order) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx persists a new order: the order number is assigned from the
// per-month counter (only when not already set, numbers are immutable), the
// order, items and initial history are inserted, stock is deducted, sold
// counts bumped and the buyer's cart cleared, all in one transaction.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", o.UserID),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	now := time.Now()
	if o.OrderNumber == "" {
		n, err := sequence.NextInTx(ctx, tx, sequence.Scope(sequence.PrefixOrder, now))
		if err != nil {
			log.Error("failed to advance order sequence", zap.Error(err))
			return err
		}
		o.OrderNumber = sequence.Format(sequence.PrefixOrder, now, n)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id,
			ship_full_name, ship_address, ship_city, ship_district, ship_ward, ship_phone, ship_email,
			payment_method, items_price, shipping_price, total_price,
			status, notes, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id, created_at
	`,
		o.OrderNumber, o.UserID,
		o.ShippingAddress.FullName, o.ShippingAddress.Address, o.ShippingAddress.City,
		o.ShippingAddress.District, o.ShippingAddress.Ward, o.ShippingAddress.Phone, o.ShippingAddress.Email,
		string(o.PaymentMethod), o.ItemsPrice, o.ShippingPrice, o.TotalPrice,
		string(o.Status), o.Notes, o.UserID,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET count_in_stock = count_in_stock - $1, sold = sold + $1
			WHERE id = $2 AND count_in_stock >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			log.Warn("stock conflict for order item", zap.Uint("product_id", item.ProductID))
			return ErrStockConflict
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price, quantity, warranty_period_months)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, o.ID, item.ProductID, item.Name, item.Price, item.Quantity, item.WarrantyPeriodMonths).
			Scan(&item.ID)
		if err != nil {
			return err
		}
		item.OrderID = o.ID
	}

	for _, entry := range o.StatusHistory {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_status_history (order_id, status, updated_by, notes, created_at)
			VALUES ($1,$2,$3,$4,$5)
		`, o.ID, entry.Status, entry.UpdatedBy, entry.Notes, entry.CreatedAt)
		if err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order created", zap.String("order_number", o.OrderNumber), zap.Uint("order_id", o.ID))
	return nil
}

const orderColumns = `
	id, order_number, user_id,
	ship_full_name, ship_address, ship_city, ship_district, ship_ward, ship_phone, ship_email,
	payment_method, pay_transaction_id, pay_status, pay_update_time, pay_payer_email,
	items_price, shipping_price, total_price,
	is_paid, paid_at, status, delivered_at, notes,
	warranty_activated, warranty_start_date, created_at, updated_at
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var (
		o         Order
		txID      sql.NullString
		payStatus sql.NullString
		payTime   sql.NullString
		payEmail  sql.NullString
		method    string
		status    string
	)

	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID,
		&o.ShippingAddress.FullName, &o.ShippingAddress.Address, &o.ShippingAddress.City,
		&o.ShippingAddress.District, &o.ShippingAddress.Ward, &o.ShippingAddress.Phone, &o.ShippingAddress.Email,
		&method, &txID, &payStatus, &payTime, &payEmail,
		&o.ItemsPrice, &o.ShippingPrice, &o.TotalPrice,
		&o.IsPaid, &o.PaidAt, &status, &o.DeliveredAt, &o.Notes,
		&o.WarrantyActivated, &o.WarrantyStartDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.PaymentMethod = payment.Method(method)
	o.Status = Status(status)
	if txID.Valid || payStatus.Valid {
		o.PaymentResult = &payment.Result{
			TransactionID: txID.String,
			Status:        payStatus.String,
			UpdateTime:    payTime.String,
			PayerEmail:    payEmail.String,
			PaidAt:        o.PaidAt,
		}
	}
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, orderID uint) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	if err := r.loadHistory(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	if err := r.loadHistory(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, price, quantity,
		       warranty_period_months, serial_number, warranty_start_date, warranty_end_date
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity,
			&item.WarrantyPeriodMonths, &item.SerialNumber, &item.WarrantyStartDate, &item.WarrantyEndDate,
		); err != nil {
			return err
		}
		o.Items = append(o.Items, &item)
	}
	return rows.Err()
}

func (r *repository) loadHistory(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, status, updated_by, notes, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at, id
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var entry audit.StatusEntry
		if err := rows.Scan(&entry.ID, &entry.Status, &entry.UpdatedBy, &entry.Notes, &entry.CreatedAt); err != nil {
			return err
		}
		o.StatusHistory = append(o.StatusHistory, entry)
	}
	return rows.Err()
}

func (r *repository) list(ctx context.Context, userID *uint, params ListParams) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	argIndex := 1

	if userID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, *userID)
		argIndex++
	}
	if params.Filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, string(*params.Filter.Status))
		argIndex++
	}
	if params.Filter.DateFrom != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *params.Filter.DateFrom)
		argIndex++
	}
	if params.Filter.DateTo != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *params.Filter.DateTo)
		argIndex++
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
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) ListByUser(ctx context.Context, userID uint, params ListParams) ([]*Order, error) {
	return r.list(ctx, &userID, params)
}

func (r *repository) List(ctx context.Context, params ListParams) ([]*Order, error) {
	return r.list(ctx, nil, params)
}

// SaveStatus writes the order's current status, delivered timestamp and the
// newest history entry in one transaction.
func (r *repository) SaveStatus(ctx context.Context, o *Order) error {
	latest := o.StatusHistory.Latest()
	if latest == nil {
		return errors.New("no status history entry to persist")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, delivered_at = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $4
	`, string(o.Status), o.DeliveredAt, latest.UpdatedBy, o.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, updated_by, notes, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, o.ID, latest.Status, latest.UpdatedBy, latest.Notes, latest.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// SaveWarrantyActivation persists the order flags and per-item warranty
// fields set by ActivateWarranty.
func (r *repository) SaveWarrantyActivation(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET warranty_activated = $1, warranty_start_date = $2, updated_at = NOW()
		WHERE id = $3
	`, o.WarrantyActivated, o.WarrantyStartDate, o.ID)
	if err != nil {
		return err
	}

	for _, item := range o.Items {
		if item.WarrantyStartDate == nil {
			continue
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE order_items
			SET serial_number = $1, warranty_start_date = $2, warranty_end_date = $3
			WHERE id = $4
		`, item.SerialNumber, item.WarrantyStartDate, item.WarrantyEndDate, item.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) MarkPaid(ctx context.Context, o *Order) error {
	var result payment.Result
	if o.PaymentResult != nil {
		result = *o.PaymentResult
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET is_paid = true, paid_at = $1,
		    pay_transaction_id = $2, pay_status = $3, pay_update_time = $4, pay_payer_email = $5,
		    updated_at = NOW()
		WHERE id = $6
	`, o.PaidAt, result.TransactionID, result.Status, result.UpdateTime, result.PayerEmail, o.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
