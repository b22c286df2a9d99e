package warranty

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/audit"
	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"
	"github.com/vuminhhoangg/E-Store-sub000/internal/sequence"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateClaimTx(ctx context.Context, c *Claim) error
	GetByID(ctx context.Context, claimID uint) (*Claim, error)
	GetByClaimNumber(ctx context.Context, claimNumber string) (*Claim, error)
	ListByUser(ctx context.Context, userID uint, params ListParams) ([]*Claim, error)
	List(ctx context.Context, params ListParams) ([]*Claim, error)
	SaveStatus(ctx context.Context, c *Claim) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateClaimTx persists a new claim. The claim number is assigned from the
// per-month counter only when not already set, then the claim row and its
// initial history are inserted in one transaction.
func (r *repository) CreateClaimTx(ctx context.Context, c *Claim) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateClaimTx"),
		zap.Uint("user_id", c.UserID),
		zap.Uint("order_id", c.OrderID),
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
	if c.ClaimNumber == "" {
		n, err := sequence.NextInTx(ctx, tx, sequence.Scope(sequence.PrefixClaim, now))
		if err != nil {
			log.Error("failed to advance claim sequence", zap.Error(err))
			return err
		}
		c.ClaimNumber = sequence.Format(sequence.PrefixClaim, now, n)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO warranty_claims (
			claim_number, user_id, order_id, order_number, product_id, product_name,
			serial_number, description, image_urls, status,
			contact_name, contact_phone, contact_email, contact_address,
			warranty_start_date, warranty_end_date, is_within_warranty, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id, created_at
	`,
		c.ClaimNumber, c.UserID, c.OrderID, c.OrderNumber, c.ProductID, c.ProductName,
		c.SerialNumber, c.Description, pq.Array(c.ImageURLs), string(c.Status),
		c.Contact.Name, c.Contact.Phone, c.Contact.Email, c.Contact.Address,
		c.WarrantyStartDate, c.WarrantyEndDate, c.IsWithinWarranty, c.UserID,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		log.Error("failed to insert claim", zap.Error(err))
		return err
	}

	for _, entry := range c.StatusHistory {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO claim_status_history (claim_id, status, updated_by, notes, created_at)
			VALUES ($1,$2,$3,$4,$5)
		`, c.ID, entry.Status, entry.UpdatedBy, entry.Notes, entry.CreatedAt)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit claim transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("warranty claim created", zap.String("claim_number", c.ClaimNumber), zap.Uint("claim_id", c.ID))
	return nil
}

const claimColumns = `
	id, claim_number, user_id, order_id, order_number, product_id, product_name,
	serial_number, description, image_urls, status,
	contact_name, contact_phone, contact_email, contact_address,
	warranty_start_date, warranty_end_date, is_within_warranty,
	admin_notes, repair_cost, is_paid, created_at, updated_at
`

func scanClaim(row interface{ Scan(...any) error }) (*Claim, error) {
	var (
		c      Claim
		urls   pq.StringArray
		status string
	)

	err := row.Scan(
		&c.ID, &c.ClaimNumber, &c.UserID, &c.OrderID, &c.OrderNumber, &c.ProductID, &c.ProductName,
		&c.SerialNumber, &c.Description, &urls, &status,
		&c.Contact.Name, &c.Contact.Phone, &c.Contact.Email, &c.Contact.Address,
		&c.WarrantyStartDate, &c.WarrantyEndDate, &c.IsWithinWarranty,
		&c.AdminNotes, &c.RepairCost, &c.IsPaid, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ImageURLs = []string(urls)
	c.Status = Status(status)
	return &c, nil
}

func (r *repository) getBy(ctx context.Context, where string, arg any) (*Claim, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+claimColumns+` FROM warranty_claims WHERE `+where, arg)

	c, err := scanClaim(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadHistory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) GetByID(ctx context.Context, claimID uint) (*Claim, error) {
	return r.getBy(ctx, "id = $1", claimID)
}

func (r *repository) GetByClaimNumber(ctx context.Context, claimNumber string) (*Claim, error) {
	return r.getBy(ctx, "claim_number = $1", claimNumber)
}

func (r *repository) loadHistory(ctx context.Context, c *Claim) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, status, updated_by, notes, created_at
		FROM claim_status_history
		WHERE claim_id = $1
		ORDER BY created_at, id
	`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var entry audit.StatusEntry
		if err := rows.Scan(&entry.ID, &entry.Status, &entry.UpdatedBy, &entry.Notes, &entry.CreatedAt); err != nil {
			return err
		}
		c.StatusHistory = append(c.StatusHistory, entry)
	}
	return rows.Err()
}

func (r *repository) list(ctx context.Context, userID *uint, params ListParams) ([]*Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM warranty_claims WHERE 1=1`
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
		logger.FromCtx(ctx).Error("failed to query warranty claims", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var claims []*Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

func (r *repository) ListByUser(ctx context.Context, userID uint, params ListParams) ([]*Claim, error) {
	return r.list(ctx, &userID, params)
}

func (r *repository) List(ctx context.Context, params ListParams) ([]*Claim, error) {
	return r.list(ctx, nil, params)
}

// SaveStatus writes the claim's current status, admin fields and the newest
// history entry in one transaction.
func (r *repository) SaveStatus(ctx context.Context, c *Claim) error {
	latest := c.StatusHistory.Latest()
	if latest == nil {
		return errors.New("no status history entry to persist")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE warranty_claims
		SET status = $1, admin_notes = $2, repair_cost = $3, is_paid = $4,
		    updated_by = $5, updated_at = NOW()
		WHERE id = $6
	`, string(c.Status), c.AdminNotes, c.RepairCost, c.IsPaid, latest.UpdatedBy, c.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrClaimNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO claim_status_history (claim_id, status, updated_by, notes, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, c.ID, latest.Status, latest.UpdatedBy, latest.Notes, latest.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}
