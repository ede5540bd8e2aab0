package adaptor

import (
	"encoding/json"
	"net/http"

	"flight-booking/internal/checkout"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/pkg/utils"
)

// FormatHandler exposes the card input formatters so clients can format
// as the user types.
type FormatHandler struct{}

func NewFormatHandler() *FormatHandler {
	return &FormatHandler{}
}

// Format handles POST /api/format
func (h *FormatHandler) Format(w http.ResponseWriter, r *http.Request) {
	var req request.FormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	var resp response.FormatResponse
	if req.CardNumber != nil {
		resp.CardNumber = checkout.FormatCardNumber(*req.CardNumber)
	}
	if req.ExpiryDate != nil {
		resp.ExpiryDate = checkout.FormatExpiryDate(*req.ExpiryDate)
	}

	utils.ResponseSuccess(w, "Formatted", resp)
}
