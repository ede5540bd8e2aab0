package response

import (
	"time"

	"flight-booking/internal/checkout"
)

// PaymentView is the card sub-form as shown back to the client. The CVV is
// never echoed and the card number is masked once the checkout is paid.
type PaymentView struct {
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	ExpiryDate string `json:"expiryDate"`
	HasCVV     bool   `json:"hasCvv"`
	SaveCard   bool   `json:"saveCard"`
}

type CheckoutResponse struct {
	ID            string                    `json:"id"`
	Flight        checkout.FlightContext    `json:"flight"`
	CurrentStep   checkout.Step             `json:"currentStep"`
	Passenger     checkout.PassengerDetails `json:"passenger"`
	PaymentMethod checkout.PaymentMethod    `json:"paymentMethod"`
	Payment       PaymentView               `json:"payment"`
	Services      checkout.Services         `json:"services"`
	FieldErrors   map[string]string         `json:"fieldErrors"`
	Price         checkout.PriceBreakdown   `json:"price"`
	Submitting    bool                      `json:"isSubmitting"`
	Complete      bool                      `json:"isComplete"`
	Receipt       *checkout.PaymentReceipt  `json:"receipt,omitempty"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
}

type TransitionResponse struct {
	Transition checkout.Transition `json:"transition"`
	Checkout   CheckoutResponse    `json:"checkout"`
}

type FormatResponse struct {
	CardNumber string `json:"cardNumber,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
}

func CheckoutToResponse(st checkout.State) CheckoutResponse {
	cardNumber := st.Payment.CardNumber
	if st.Complete && cardNumber != "" {
		cardNumber = checkout.MaskCardNumber(cardNumber)
	}

	return CheckoutResponse{
		ID:            st.ID,
		Flight:        st.Flight,
		CurrentStep:   st.CurrentStep,
		Passenger:     st.Passenger,
		PaymentMethod: st.PaymentMethod,
		Payment: PaymentView{
			CardNumber: cardNumber,
			CardName:   st.Payment.CardName,
			ExpiryDate: st.Payment.ExpiryDate,
			HasCVV:     st.Payment.CVV != "",
			SaveCard:   st.Payment.SaveCard,
		},
		Services:    st.Services,
		FieldErrors: st.FieldErrors,
		Price:       st.Price,
		Submitting:  st.Submitting,
		Complete:    st.Complete,
		Receipt:     st.Receipt,
		UpdatedAt:   st.UpdatedAt,
	}
}
