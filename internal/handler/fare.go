package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

// FareHandler handles HTTP requests for fare quotes.
type FareHandler struct {
	fareService *service.FareService
}

// NewFareHandler creates a new FareHandler.
func NewFareHandler(fareService *service.FareService) *FareHandler {
	return &FareHandler{fareService: fareService}
}

// QuoteRequest is the HTTP request body for a fare quote.
type QuoteRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// QuoteResponse is the HTTP response for a fare quote.
type QuoteResponse struct {
	Source         string  `json:"source"`
	Destination    string  `json:"destination"`
	DistanceKm     float64 `json:"distance_km"`
	DistanceText   string  `json:"distance_text"`
	DurationText   string  `json:"duration_text"`
	BaseFare       int64   `json:"base_fare"`
	RatePerKm      int64   `json:"rate_per_km"`
	MaximumFare    int64   `json:"maximum_fare"`
	CalculatedFare int64   `json:"calculated_fare"`
}

func newQuoteResponse(q *domain.FareQuote) QuoteResponse {
	return QuoteResponse{
		Source:         q.Source,
		Destination:    q.Destination,
		DistanceKm:     q.DistanceKm,
		DistanceText:   q.DistanceText,
		DurationText:   q.DurationText,
		BaseFare:       q.BaseFare,
		RatePerKm:      q.RatePerKm,
		MaximumFare:    q.MaximumFare,
		CalculatedFare: q.CalculatedFare,
	}
}

// Quote handles POST /v1/fares/quote
func (h *FareHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	quote, err := h.fareService.Quote(c.Request.Context(), service.QuoteRequest{
		Source:      req.Source,
		Destination: req.Destination,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newQuoteResponse(quote))
}
