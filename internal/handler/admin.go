package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

// AdminHandler handles driver review requests from administrators.
type AdminHandler struct {
	verificationService *service.VerificationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(verificationService *service.VerificationService) *AdminHandler {
	return &AdminHandler{verificationService: verificationService}
}

// RejectDriverRequest is the HTTP request body for rejecting a driver.
type RejectDriverRequest struct {
	Reason *string `json:"reason"`
}

// StatsResponse is the HTTP response for verification counts.
type StatsResponse struct {
	Pending  int `json:"pending"`
	Verified int `json:"verified"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

// DriverListResponse is the HTTP response for the admin driver list.
type DriverListResponse struct {
	Drivers    []DriverResponse `json:"drivers"`
	Filter     string           `json:"filter"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
	Stats      StatsResponse    `json:"stats"`
}

func newStatsResponse(s service.VerificationStats) StatsResponse {
	return StatsResponse{Pending: s.Pending, Verified: s.Verified, Rejected: s.Rejected, Total: s.Total}
}

// ListDrivers handles GET /v1/admin/drivers?status=&page=&page_size=
func (h *AdminHandler) ListDrivers(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		respondBadRequest(c, "page must be a number")
		return
	}
	pageSize, err := queryInt(c, "page_size")
	if err != nil {
		respondBadRequest(c, "page_size must be a number")
		return
	}

	list, err := h.verificationService.ListDrivers(c.Request.Context(), service.ListDriversRequest{
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DriverListResponse{
		Drivers:    newDriverResponses(list.Page.Items),
		Filter:     string(list.Filter),
		Page:       list.Page.Page,
		PageSize:   list.Page.PageSize,
		TotalItems: list.Page.TotalItems,
		TotalPages: list.Page.TotalPages,
		Stats:      newStatsResponse(list.Stats),
	})
}

// PendingDrivers handles GET /v1/admin/drivers/pending
func (h *AdminHandler) PendingDrivers(c *gin.Context) {
	drivers, err := h.verificationService.PendingDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newDriverResponses(drivers))
}

// Stats handles GET /v1/admin/drivers/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.verificationService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newStatsResponse(stats))
}

// VerifyDriver handles PUT /v1/admin/drivers/:id/verify
func (h *AdminHandler) VerifyDriver(c *gin.Context) {
	driver, err := h.verificationService.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newDriverResponse(driver))
}

// RejectDriver handles PUT /v1/admin/drivers/:id/reject
// A missing body or reason is a rejection without a reason, which is refused.
func (h *AdminHandler) RejectDriver(c *gin.Context) {
	var req RejectDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, "invalid request body")
		return
	}

	action := domain.VerificationAction{Kind: domain.ActionRejectNoReason}
	if req.Reason != nil {
		action = domain.VerificationAction{Kind: domain.ActionReject, Reason: *req.Reason}
	}

	driver, err := h.verificationService.Apply(c.Request.Context(), c.Param("id"), action)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newDriverResponse(driver))
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
