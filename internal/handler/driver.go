package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// RegisterDriverRequest is the HTTP request body for driver registration.
type RegisterDriverRequest struct {
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	LicenseNumber      string `json:"license_number"`
	LicenseExpiry      string `json:"license_expiry"`
	VehicleModel       string `json:"vehicle_model"`
	VehiclePlateNumber string `json:"vehicle_plate_number"`
	VehicleYear        int    `json:"vehicle_year"`
	VehicleColor       string `json:"vehicle_color"`
}

// Register handles POST /v1/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	driver, err := h.driverService.Register(c.Request.Context(), service.RegisterDriverRequest{
		Name:               req.Name,
		Phone:              req.Phone,
		Email:              req.Email,
		LicenseNumber:      req.LicenseNumber,
		LicenseExpiry:      req.LicenseExpiry,
		VehicleModel:       req.VehicleModel,
		VehiclePlateNumber: req.VehiclePlateNumber,
		VehicleYear:        req.VehicleYear,
		VehicleColor:       req.VehicleColor,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newDriverResponse(driver))
}

// GetDriver handles GET /v1/drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.driverService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newDriverResponse(driver))
}
