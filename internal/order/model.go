package order

import (
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/audit"
	"github.com/vuminhhoangg/E-Store-sub000/internal/payment"
)

// Status is the delivery status of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipping   Status = "shipping"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is a known order status. Transitions themselves are
// not constrained; every change is recorded in the status history instead.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipping, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is the structured delivery address captured at checkout.
type ShippingAddress struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Ward     string `json:"ward"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// Item is one ordered line with its warranty coverage fields.
type Item struct {
	ID                   uint       `json:"id"`
	OrderID              uint       `json:"order_id"`
	ProductID            uint       `json:"product_id"`
	Name                 string     `json:"name"`
	Price                float64    `json:"price"`
	Quantity             int        `json:"quantity"`
	WarrantyPeriodMonths int        `json:"warranty_period_months"`
	SerialNumber         *string    `json:"serial_number,omitempty"`
	WarrantyStartDate    *time.Time `json:"warranty_start_date,omitempty"`
	WarrantyEndDate      *time.Time `json:"warranty_end_date,omitempty"`
}

type Order struct {
	ID          uint    `json:"id"`
	OrderNumber string  `json:"order_number"`
	UserID      uint    `json:"user_id"`
	Items       []*Item `json:"items"`

	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   payment.Method  `json:"payment_method"`
	PaymentResult   *payment.Result `json:"payment_result,omitempty"`

	ItemsPrice    float64 `json:"items_price"`
	ShippingPrice float64 `json:"shipping_price"`
	TotalPrice    float64 `json:"total_price"`

	IsPaid bool       `json:"is_paid"`
	PaidAt *time.Time `json:"paid_at,omitempty"`

	Status      Status     `json:"status"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	Notes       string     `json:"notes"`

	WarrantyActivated bool       `json:"warranty_activated"`
	WarrantyStartDate *time.Time `json:"warranty_start_date,omitempty"`

	StatusHistory audit.History `json:"status_history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	audit.Fields
}

// UpdateStatus sets the current status and appends the transition to the
// history. Setting delivered also stamps DeliveredAt in the same call. The
// mutation is in-memory only; the caller persists the result.
func (o *Order) UpdateStatus(newStatus Status, actorID uint, note string) {
	now := time.Now()
	o.Status = newStatus
	o.StatusHistory = o.StatusHistory.Append(string(newStatus), actorID, note, now)
	if newStatus == StatusDelivered {
		o.DeliveredAt = &now
	}
}

type CheckoutParams struct {
	UserID          uint
	ShippingAddress ShippingAddress
	PaymentMethod   payment.Method
	Notes           string
}

type ListFilter struct {
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}

type ListParams struct {
	Filter ListFilter
	Limit  int32
	Page   int32
}
