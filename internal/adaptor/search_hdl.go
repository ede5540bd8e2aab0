package adaptor

import (
	"errors"
	"net/http"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/flights"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SearchHandler struct {
	service usecase.SearchService
	log     *zap.Logger
}

func NewSearchHandler(service usecase.SearchService, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		log:     log.With(zap.String("handler", "search")),
	}
}

// ListFlights handles GET /api/flights
func (h *SearchHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	req := request.NewFlightSearchRequest(r.URL.Query())

	response, err := h.service.Search(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "search flights")
		return
	}

	utils.ResponseSuccess(w, "Flights retrieved successfully", response)
}

// StartSearch handles POST /api/searches
func (h *SearchHandler) StartSearch(w http.ResponseWriter, r *http.Request) {
	req := request.NewFlightSearchRequest(r.URL.Query())

	response, err := h.service.StartSearch(req)
	if err != nil {
		h.handleServiceError(w, err, "start search")
		return
	}

	w.Header().Set("Location", "/api/searches/"+response.Key)
	utils.ResponseJSON(w, http.StatusAccepted, true, "Search started", response, nil)
}

// GetSearch handles GET /api/searches/{key}
func (h *SearchHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.SearchStatus(chi.URLParam(r, "key"))
	if err != nil {
		h.handleServiceError(w, err, "get search")
		return
	}

	utils.ResponseSuccess(w, "Search retrieved successfully", response)
}

// CancelSearch handles DELETE /api/searches/{key}
func (h *SearchHandler) CancelSearch(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelSearch(chi.URLParam(r, "key")); err != nil {
		h.handleServiceError(w, err, "cancel search")
		return
	}

	utils.ResponseSuccess(w, "Search cancelled", nil)
}

func (h *SearchHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, flights.ErrMissingSearchContext):
		h.log.Info(operation+" without search context, redirecting home")
		utils.ResponseSeeOther(w, "/", err.Error())

	case errors.Is(err, usecase.ErrSearchNotFound):
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, flights.ErrResultsClosed):
		utils.ResponseConflict(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
