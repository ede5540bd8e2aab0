package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"flight-booking/internal/checkout"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// Open handles POST /api/checkout?flightId=...&origin=...
func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	flight := request.NewFlightContext(r.URL.Query())

	var userID *uuid.UUID
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	resp, err := h.service.Open(r.Context(), flight, userID)
	if err != nil {
		h.handleServiceError(w, err, "open checkout", nil)
		return
	}

	w.Header().Set("Location", "/api/checkout/"+resp.ID)
	utils.ResponseCreated(w, "Checkout started", resp)
}

// Get handles GET /api/checkout/{id}
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get checkout", nil)
		return
	}

	utils.ResponseSuccess(w, "Checkout retrieved successfully", resp)
}

// Discard handles DELETE /api/checkout/{id}
func (h *CheckoutHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Discard(chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "discard checkout", nil)
		return
	}

	utils.ResponseSuccess(w, "Checkout discarded", nil)
}

// UpdatePassenger handles PUT /api/checkout/{id}/passenger
func (h *CheckoutHandler) UpdatePassenger(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdatePassenger(chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleServiceError(w, err, "update passenger", nil)
		return
	}

	utils.ResponseSuccess(w, "Passenger updated", resp)
}

// UpdatePayment handles PUT /api/checkout/{id}/payment
func (h *CheckoutHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdatePayment(chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleServiceError(w, err, "update payment", nil)
		return
	}

	utils.ResponseSuccess(w, "Payment updated", resp)
}

// ToggleService handles POST /api/checkout/{id}/services/{service}
func (h *CheckoutHandler) ToggleService(w http.ResponseWriter, r *http.Request) {
	svc := checkout.Service(chi.URLParam(r, "service"))

	resp, err := h.service.ToggleService(chi.URLParam(r, "id"), svc)
	if err != nil {
		h.handleServiceError(w, err, "toggle service", nil)
		return
	}

	utils.ResponseSuccess(w, "Services updated", resp)
}

// Advance handles POST /api/checkout/{id}/advance
func (h *CheckoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Advance(chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "advance checkout", nil)
		return
	}

	if len(resp.Transition.Errors) > 0 {
		utils.ResponseJSON(w, http.StatusBadRequest, false, "Validation failed", resp, resp.Transition.Errors)
		return
	}

	utils.ResponseSuccess(w, "Step updated", resp)
}

// Retreat handles POST /api/checkout/{id}/retreat
func (h *CheckoutHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Retreat(chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "retreat checkout", nil)
		return
	}

	utils.ResponseSuccess(w, "Step updated", resp)
}

// Submit handles POST /api/checkout/{id}/submit
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "submit payment", resp)
		return
	}

	utils.ResponseSuccess(w, "Payment successful", resp)
}

// handleServiceError maps checkout errors to responses. snapshot, when
// set, is returned so the client can render field errors and the banner.
func (h *CheckoutHandler) handleServiceError(w http.ResponseWriter, err error, operation string, snapshot *response.CheckoutResponse) {
	var fieldErrors map[string]string
	if snapshot != nil {
		fieldErrors = snapshot.FieldErrors
	}

	switch {
	case errors.Is(err, checkout.ErrMissingFlightContext):
		h.log.Info(operation+" without flight context, redirecting home")
		utils.ResponseSeeOther(w, "/", err.Error())

	case errors.Is(err, usecase.ErrCheckoutNotFound),
		errors.Is(err, checkout.ErrSessionClosed):
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, checkout.ErrPaymentFailed):
		h.log.Warn(operation+" failed - payment declined", zap.Error(err))
		utils.ResponsePaymentRequired(w, "Payment failed", snapshot, fieldErrors)

	case errors.Is(err, checkout.ErrInvalidForm):
		utils.ResponseJSON(w, http.StatusBadRequest, false, "Validation failed", snapshot, fieldErrors)

	case errors.Is(err, checkout.ErrUnknownService),
		errors.Is(err, checkout.ErrUnknownPaymentMethod),
		errors.Is(err, checkout.ErrInvalidFlightContext):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, checkout.ErrAlreadyComplete),
		errors.Is(err, checkout.ErrSubmissionInProgress),
		errors.Is(err, checkout.ErrNotAtConfirmation):
		utils.ResponseConflict(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
