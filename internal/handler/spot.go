package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abhinavmaity/ParkIt/internal/model"
	"github.com/abhinavmaity/ParkIt/internal/repository"
	"github.com/abhinavmaity/ParkIt/internal/service"
)

// SpotHandler serves the public spot catalogue and availability view.
type SpotHandler struct {
	Spots    *repository.SpotRepo
	Resolver *service.AvailabilityResolver
}

func NewSpotHandler(spots *repository.SpotRepo, res *service.AvailabilityResolver) *SpotHandler {
	return &SpotHandler{Spots: spots, Resolver: res}
}

// List returns all parking spots regardless of occupancy.
func (h *SpotHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	spots, err := h.Spots.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"spots": spots})
}

// Availability answers "which spots are free for this window".
// Query params: date=YYYY-MM-DD, start=HH:MM, end=HH:MM.
func (h *SpotHandler) Availability(c echo.Context) error {
	date := c.QueryParam("date")
	start := c.QueryParam("start")
	end := c.QueryParam("end")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	out, err := h.Resolver.Resolve(ctx, date, start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  date,
		"start": start,
		"end":   end,
		"spots": out,
	})
}

// ----- admin spot management -----

type createSpotReq struct {
	SpotNumber string `json:"spot_number"`
	Location   string `json:"location"`
	Type       string `json:"type"`
	HourlyRate int64  `json:"hourly_rate"`
}

// Create provisions a new spot (admin only, enforced by router).
func (h *SpotHandler) Create(c echo.Context) error {
	var req createSpotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SpotNumber == "" || req.HourlyRate <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "spot_number and positive hourly_rate required"})
	}
	st := model.SpotType(req.Type)
	if st == "" {
		st = model.SpotStandard
	}
	switch st {
	case model.SpotStandard, model.SpotPremium, model.SpotReserved:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown spot type"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Spots.Create(ctx, req.SpotNumber, req.Location, st, req.HourlyRate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "spot_number": req.SpotNumber})
}

type spotStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus toggles a spot between available and maintenance.
func (h *SpotHandler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")
	var req spotStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := model.SpotStatus(req.Status)
	if !status.IsValid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Spots.UpdateStatus(ctx, id, status); err != nil {
		if err == repository.ErrSpotNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}
