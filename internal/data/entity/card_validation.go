package entity

import "github.com/google/uuid"

// CardValidation records a card that went through a successful checkout.
// Only the masked number and an opaque token are kept; the CVV never is.
type CardValidation struct {
	BaseSimple
	CheckoutID     string    `db:"checkout_id"`
	CardholderName string    `db:"cardholder_name"`
	MaskedNumber   string    `db:"masked_number"`
	CardToken      uuid.UUID `db:"card_token"`
	ExpiryMonth    int       `db:"expiry_month"`
	ExpiryYear     int       `db:"expiry_year"`
	PaymentMethod  string    `db:"payment_method"`
}
