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

// AdminHandler serves the back-office views: aggregate stats, full
// listings and force-cancel.
type AdminHandler struct {
	Users     *repository.UserRepo
	Bookings  *repository.BookingRepo
	Txns      *repository.TransactionRepo
	Logs      *repository.SecurityLogRepo
	Lifecycle *service.BookingLifecycle
}

func NewAdminHandler(users *repository.UserRepo, bookings *repository.BookingRepo, txns *repository.TransactionRepo, logs *repository.SecurityLogRepo, lc *service.BookingLifecycle) *AdminHandler {
	return &AdminHandler{Users: users, Bookings: bookings, Txns: txns, Logs: logs, Lifecycle: lc}
}

// Summary returns booking counts and paid revenue.
func (h *AdminHandler) Summary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	s, err := h.Bookings.Summary(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// ListBookings returns every booking in the system, newest first.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	list, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// ListTransactions returns every payment transaction.
func (h *AdminHandler) ListTransactions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	list, err := h.Txns.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"transactions": list})
}

// ListUsers returns every registered account.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// GetBooking returns one booking with its entry/exit scan counts,
// regardless of owner.
func (h *AdminHandler) GetBooking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Lifecycle.Get(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	entries, err := h.Logs.CountForBooking(ctx, b.ID, model.ActionEntry)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	exits, err := h.Logs.CountForBooking(ctx, b.ID, model.ActionExit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking":     b,
		"entry_scans": entries,
		"exit_scans":  exits,
	})
}

// CancelBooking force-cancels any active booking, bypassing ownership.
func (h *AdminHandler) CancelBooking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Lifecycle.Cancel(ctx, c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "status": model.StatusCancelled})
}
