package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/middleware"
	"rideshare/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// PostRideRequest is the HTTP request body for posting a ride.
// Omit price_per_seat to have it filled from a fare quote.
type PostRideRequest struct {
	Source         string    `json:"source"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	AvailableSeats int       `json:"available_seats"`
	PricePerSeat   int64     `json:"price_per_seat"`
	Notes          string    `json:"notes"`
}

// RideResponse is the HTTP response for ride data.
type RideResponse struct {
	ID             string `json:"id"`
	DriverID       string `json:"driver_id"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	DepartureTime  string `json:"departure_time"`
	AvailableSeats int    `json:"available_seats"`
	PricePerSeat   int64  `json:"price_per_seat"`
	Notes          string `json:"notes,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	CancelledAt    string `json:"cancelled_at,omitempty"`
}

// PostRideResponse is the HTTP response for a posted ride.
type PostRideResponse struct {
	Ride  RideResponse   `json:"ride"`
	Quote *QuoteResponse `json:"quote,omitempty"`
}

func newRideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		ID:             r.ID,
		DriverID:       r.DriverID,
		Source:         r.Source,
		Destination:    r.Destination,
		DepartureTime:  formatTime(r.DepartureTime),
		AvailableSeats: r.AvailableSeats,
		PricePerSeat:   r.PricePerSeat,
		Notes:          r.Notes,
		Status:         string(r.Status),
		CreatedAt:      formatTime(r.CreatedAt),
		CancelledAt:    formatTime(r.CancelledAt),
	}
}

// PostRide handles POST /v1/rides
func (h *RideHandler) PostRide(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required", Code: CodeUnauthorized})
		return
	}

	var req PostRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	result, err := h.rideService.PostRide(c.Request.Context(), service.PostRideRequest{
		DriverID:       caller.Subject,
		Source:         req.Source,
		Destination:    req.Destination,
		DepartureTime:  req.DepartureTime,
		AvailableSeats: req.AvailableSeats,
		PricePerSeat:   req.PricePerSeat,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := PostRideResponse{Ride: newRideResponse(result.Ride)}
	if result.Quote != nil {
		quote := newQuoteResponse(result.Quote)
		response.Quote = &quote
	}

	respondJSON(c, http.StatusCreated, response)
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRideResponse(ride))
}

// ListDriverRides handles GET /v1/drivers/:id/rides
func (h *RideHandler) ListDriverRides(c *gin.Context) {
	rides, err := h.rideService.ListDriverRides(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRideResponses(rides))
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required", Code: CodeUnauthorized})
		return
	}

	ride, err := h.rideService.CancelRide(c.Request.Context(), service.CancelRideRequest{
		RideID:   c.Param("id"),
		DriverID: caller.Subject,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRideResponse(ride))
}

// CompleteRide handles POST /v1/rides/:id/complete
func (h *RideHandler) CompleteRide(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required", Code: CodeUnauthorized})
		return
	}

	ride, err := h.rideService.CompleteRide(c.Request.Context(), service.CompleteRideRequest{
		RideID:   c.Param("id"),
		DriverID: caller.Subject,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRideResponse(ride))
}

// SearchRides handles GET /v1/rides?source=&destination=&date=&max_price=
// Without filters it lists every upcoming active ride.
func (h *RideHandler) SearchRides(c *gin.Context) {
	var maxPrice int64
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondBadRequest(c, "max_price must be a number")
			return
		}
		maxPrice = v
	}

	rides, err := h.rideService.SearchRides(c.Request.Context(), service.SearchRidesRequest{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		MaxPrice:    maxPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRideResponses(rides))
}

func newRideResponses(rides []*domain.Ride) []RideResponse {
	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, newRideResponse(r))
	}
	return response
}
