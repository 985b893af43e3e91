package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

// Error codes returned to clients.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeRoutingUnavailable = "ROUTING_UNAVAILABLE"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeForbidden          = "FORBIDDEN"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternal           = "INTERNAL"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Internal errors are not echoed to the client.
func respondError(c *gin.Context, err error) {
	status, code := mapError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.JSON(status, ErrorResponse{Error: msg, Code: code})
}

// respondBadRequest sends a validation error with a fixed message.
func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: CodeValidation})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapError maps service/repository errors to HTTP status codes and error codes.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, CodeNotFound

	case errors.Is(err, service.ErrValidation),
		errors.Is(err, repository.ErrInvalidID):
		return http.StatusBadRequest, CodeValidation

	case errors.Is(err, service.ErrRoutingUnavailable):
		return http.StatusServiceUnavailable, CodeRoutingUnavailable

	case errors.Is(err, service.ErrDriverAlreadyRegistered),
		errors.Is(err, service.ErrRideNotActive),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict, CodeConflict

	case errors.Is(err, service.ErrDriverNotVerified),
		errors.Is(err, service.ErrRideNotOwned):
		return http.StatusForbidden, CodeForbidden

	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email,omitempty"`
	LicenseNumber      string  `json:"license_number"`
	LicenseExpiry      string  `json:"license_expiry,omitempty"`
	VehicleModel       string  `json:"vehicle_model,omitempty"`
	VehiclePlateNumber string  `json:"vehicle_plate_number,omitempty"`
	VehicleYear        int     `json:"vehicle_year,omitempty"`
	VehicleColor       string  `json:"vehicle_color,omitempty"`
	IsVerified         *bool   `json:"is_verified"`
	RejectionReason    *string `json:"rejection_reason"`
	VerificationStatus string  `json:"verification_status"`
	CreatedAt          string  `json:"created_at"`
}

func newDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:                 d.ID,
		Name:               d.Name,
		Phone:              d.Phone,
		Email:              d.Email,
		LicenseNumber:      d.LicenseNumber,
		LicenseExpiry:      d.LicenseExpiry,
		VehicleModel:       d.VehicleModel,
		VehiclePlateNumber: d.VehiclePlateNumber,
		VehicleYear:        d.VehicleYear,
		VehicleColor:       d.VehicleColor,
		IsVerified:         d.IsVerified,
		RejectionReason:    d.RejectionReason,
		VerificationStatus: string(d.Status()),
		CreatedAt:          formatTime(d.CreatedAt),
	}
}

func newDriverResponses(drivers []*domain.Driver) []DriverResponse {
	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, newDriverResponse(d))
	}
	return response
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
