package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abhinavmaity/ParkIt/internal/model"
	"github.com/abhinavmaity/ParkIt/internal/repository"
)

// VehicleHandler manages the caller's registered vehicles.
type VehicleHandler struct {
	Vehicles *repository.VehicleRepo
}

func NewVehicleHandler(v *repository.VehicleRepo) *VehicleHandler {
	return &VehicleHandler{Vehicles: v}
}

type vehicleReq struct {
	Model              string `json:"model"`
	RegistrationNumber string `json:"registration_number"`
	VehicleType        string `json:"vehicle_type"`
	DocumentURL        string `json:"document_url,omitempty"`
}

func (req *vehicleReq) validate() string {
	req.RegistrationNumber = strings.ToUpper(strings.TrimSpace(req.RegistrationNumber))
	if req.RegistrationNumber == "" {
		return "registration_number required"
	}
	if req.VehicleType == "" {
		return "vehicle_type required"
	}
	return ""
}

// List returns the caller's vehicles.
func (h *VehicleHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Vehicles.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"vehicles": list})
}

// Create registers a vehicle for the caller.
func (h *VehicleHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req vehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	v := model.Vehicle{
		UserID:             uid,
		Model:              req.Model,
		RegistrationNumber: req.RegistrationNumber,
		VehicleType:        req.VehicleType,
	}
	if req.DocumentURL != "" {
		v.DocumentURL = &req.DocumentURL
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Vehicles.Create(ctx, &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, v)
}

// Update replaces a vehicle's details.  Only the owner can update.
func (h *VehicleHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req vehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	v := model.Vehicle{
		ID:                 c.Param("id"),
		Model:              req.Model,
		RegistrationNumber: req.RegistrationNumber,
		VehicleType:        req.VehicleType,
	}
	if req.DocumentURL != "" {
		v.DocumentURL = &req.DocumentURL
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Vehicles.Update(ctx, uid, v); err != nil {
		if err == repository.ErrVehicleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": v.ID})
}

// Delete removes one of the caller's vehicles.
func (h *VehicleHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Vehicles.Delete(ctx, uid, c.Param("id")); err != nil {
		if err == repository.ErrVehicleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
