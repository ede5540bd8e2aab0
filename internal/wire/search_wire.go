package wire

import (
	"flight-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSearch(r chi.Router, searchHandler *adaptor.SearchHandler) {
	// GET /api/flights - results page listing (waits for the load)
	r.Get("/api/flights", searchHandler.ListFlights)

	// Background searches whose loading flag can be polled
	r.Post("/api/searches", searchHandler.StartSearch)
	r.Get("/api/searches/{key}", searchHandler.GetSearch)
	r.Delete("/api/searches/{key}", searchHandler.CancelSearch)
}
