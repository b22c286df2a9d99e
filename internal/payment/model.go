package payment

import "time"

// Method is the payment option selected at checkout.
type Method string

const (
	MethodCOD          Method = "cod"
	MethodBankTransfer Method = "bank_transfer"
	MethodMomo         Method = "momo"
	MethodZaloPay      Method = "zalopay"
	MethodPayPal       Method = "paypal"
)

// Valid reports whether m is a known payment method.
func (m Method) Valid() bool {
	switch m {
	case MethodCOD, MethodBankTransfer, MethodMomo, MethodZaloPay, MethodPayPal:
		return true
	}
	return false
}

// Result holds provider metadata recorded when an order is paid.
type Result struct {
	TransactionID string     `json:"transaction_id"`
	Status        string     `json:"status"`
	UpdateTime    string     `json:"update_time"`
	PayerEmail    string     `json:"payer_email"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}
