package response

import (
	"fmt"
	"time"

	"flight-booking/internal/data/entity"
)

type CardValidationResponse struct {
	ID             string    `json:"id"`
	CheckoutID     string    `json:"checkout_id"`
	CardholderName string    `json:"cardholder_name"`
	CardNumber     string    `json:"card_number"`
	CardToken      string    `json:"card_token"`
	Expiry         string    `json:"expiry"`
	PaymentMethod  string    `json:"payment_method"`
	CreatedAt      time.Time `json:"created_at"`
}

func CardValidationToResponse(rec *entity.CardValidation) CardValidationResponse {
	return CardValidationResponse{
		ID:             rec.ID.String(),
		CheckoutID:     rec.CheckoutID,
		CardholderName: rec.CardholderName,
		CardNumber:     rec.MaskedNumber,
		CardToken:      rec.CardToken.String(),
		Expiry:         fmt.Sprintf("%02d/%02d", rec.ExpiryMonth, rec.ExpiryYear),
		PaymentMethod:  rec.PaymentMethod,
		CreatedAt:      rec.CreatedAt,
	}
}
