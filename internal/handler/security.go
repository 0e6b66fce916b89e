package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abhinavmaity/ParkIt/internal/model"
	"github.com/abhinavmaity/ParkIt/internal/repository"
	"github.com/abhinavmaity/ParkIt/internal/service"
)

// SecurityHandler serves the gate operator surface: scan inspection
// and approval, the audit trail, and violation reports.
type SecurityHandler struct {
	Scans      *service.ScanService
	Logs       *repository.SecurityLogRepo
	Violations *repository.ViolationRepo
}

func NewSecurityHandler(scans *service.ScanService, logs *repository.SecurityLogRepo, violations *repository.ViolationRepo) *SecurityHandler {
	return &SecurityHandler{Scans: scans, Logs: logs, Violations: violations}
}

type scanReq struct {
	Payload string `json:"payload"`
}

// Inspect classifies a scanned credential without touching any state.
// The operator decides what to do with the outcome; a walk-away is a
// denial and leaves no trace.
func (h *SecurityHandler) Inspect(c echo.Context) error {
	var req scanReq
	if err := c.Bind(&req); err != nil || req.Payload == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payload required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	decision, err := h.Scans.Inspect(ctx, req.Payload)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, decision)
}

// Approve commits the pending entry or exit for a booking the operator
// has already inspected.
func (h *SecurityHandler) Approve(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	action, err := h.Scans.Approve(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "action": action})
}

// RecentLogs returns the latest audit entries, newest first.
// Query param limit caps the page (default 50).
func (h *SecurityHandler) RecentLogs(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	logs, err := h.Logs.Recent(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs})
}

type violationReq struct {
	VehicleNumber string `json:"vehicle_number"`
	ViolationType string `json:"violation_type"`
	Location      string `json:"location"`
	Description   string `json:"description,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
}

// ReportViolation records an observed parking violation.
func (h *SecurityHandler) ReportViolation(c echo.Context) error {
	var req violationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.VehicleNumber = strings.TrimSpace(req.VehicleNumber)
	if req.VehicleNumber == "" || req.ViolationType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle_number and violation_type required"})
	}

	v := model.ViolationReport{
		VehicleNumber: req.VehicleNumber,
		ViolationType: req.ViolationType,
		Location:      req.Location,
		Timestamp:     time.Now().UTC(),
	}
	if req.Description != "" {
		v.Description = &req.Description
	}
	if req.ImageURL != "" {
		v.ImageURL = &req.ImageURL
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Violations.Append(ctx, &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusCreated, v)
}

// RecentViolations lists the latest violation reports.
func (h *SecurityHandler) RecentViolations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Violations.Recent(ctx, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"violations": list})
}
