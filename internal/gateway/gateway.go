// Package gateway holds the payment processors a checkout can be settled
// through.
package gateway

import (
	"errors"
	"fmt"
	"time"

	"flight-booking/internal/checkout"
	"flight-booking/pkg/utils"
)

var (
	ErrDeclined = errors.New("payment declined")
	ErrTimeout  = errors.New("payment gateway timeout")
)

func newReceipt(amount int64) checkout.PaymentReceipt {
	return checkout.PaymentReceipt{
		Reference: utils.GenerateOrderID(),
		Amount:    amount,
		PaidAt:    time.Now().UTC(),
	}
}

func declined(reason string) error {
	return fmt.Errorf("%w: %s", ErrDeclined, reason)
}
