package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateSerialNumber builds a warranty serial of the form ES{YY}{MM}{RRRRRR}
// with a random 6-digit suffix, e.g. "ES2405438291".
func GenerateSerialNumber(at time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(at.UnixNano() % 900000)
	}
	return fmt.Sprintf("ES%s%06d", at.Format("0601"), n.Int64()+100000)
}

// ActivateWarranty starts warranty coverage for every item that carries a
// warranty period. All items in the call share the same start instant; the
// end date uses calendar-month arithmetic, so end-of-month start dates can
// roll over unevenly. Items without a serial get one generated. The mutation
// is in-memory only; the caller persists the result.
func (o *Order) ActivateWarranty() {
	now := time.Now()

	for _, item := range o.Items {
		if item.WarrantyPeriodMonths <= 0 {
			continue
		}

		start := now
		end := start.AddDate(0, item.WarrantyPeriodMonths, 0)
		item.WarrantyStartDate = &start
		item.WarrantyEndDate = &end

		if item.SerialNumber == nil || *item.SerialNumber == "" {
			serial := GenerateSerialNumber(now)
			item.SerialNumber = &serial
		}
	}

	o.WarrantyActivated = true
	o.WarrantyStartDate = &now
}
