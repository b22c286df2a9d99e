package warranty

import (
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/audit"
)

// Status is the persisted claim status. Terminal states are completed and
// rejected; transitions are recorded in history but not otherwise constrained.
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusRejected    Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved,
		StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the claim can still move to another status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Contact is the buyer contact snapshot captured when the claim is filed.
type Contact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Claim is a buyer request to invoke warranty coverage on a purchased item.
// Order number, product name, serial and the warranty window are denormalized
// onto the claim at submission time so the record stays self contained.
type Claim struct {
	ID          uint   `json:"id"`
	ClaimNumber string `json:"claim_number"`
	UserID      uint   `json:"user_id"`

	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`

	SerialNumber string   `json:"serial_number"`
	Description  string   `json:"description"`
	ImageURLs    []string `json:"image_urls"`

	Status  Status  `json:"status"`
	Contact Contact `json:"contact"`

	WarrantyStartDate *time.Time `json:"warranty_start_date,omitempty"`
	WarrantyEndDate   *time.Time `json:"warranty_end_date,omitempty"`
	// IsWithinWarranty is a snapshot taken once at creation. It records
	// whether the claim was filed inside the warranty window, not whether
	// the item is covered at read time.
	IsWithinWarranty bool `json:"is_within_warranty"`

	AdminNotes string  `json:"admin_notes"`
	RepairCost float64 `json:"repair_cost"`
	IsPaid     bool    `json:"is_paid"`

	StatusHistory audit.History `json:"status_history"`
	audit.Fields

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateStatus sets the new status and appends a history entry.
func (c *Claim) UpdateStatus(newStatus Status, actorID uint, note string) {
	c.Status = newStatus
	c.StatusHistory = c.StatusHistory.Append(string(newStatus), actorID, note, time.Now())
}

// CreateParams carries the buyer supplied part of a new claim. The warranty
// window and denormalized fields are filled in by the service from the order.
type CreateParams struct {
	UserID      uint     `json:"-"`
	OrderID     uint     `json:"order_id"`
	ProductID   uint     `json:"product_id"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"image_urls"`
	Contact     Contact  `json:"contact"`
}

// UpdateStatusParams carries an admin status decision.
type UpdateStatusParams struct {
	ClaimID    uint
	Status     Status
	ActorID    uint
	Note       string
	AdminNotes *string
	RepairCost *float64
	IsPaid     *bool
}

type ListFilter struct {
	Status *Status
}

type ListParams struct {
	Filter ListFilter
	Page   int
	Limit  int
}
