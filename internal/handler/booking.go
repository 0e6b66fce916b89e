package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abhinavmaity/ParkIt/internal/model"
	"github.com/abhinavmaity/ParkIt/internal/repository"
	"github.com/abhinavmaity/ParkIt/internal/service"
	"github.com/abhinavmaity/ParkIt/internal/utils"
)

// BookingHandler exposes the user-facing booking lifecycle: create,
// pay, fetch the entry credential, list and cancel.
type BookingHandler struct {
	Spots     *repository.SpotRepo
	Bookings  *repository.BookingRepo
	Lifecycle *service.BookingLifecycle
	Payments  *service.PaymentService
}

func NewBookingHandler(spots *repository.SpotRepo, bookings *repository.BookingRepo, lc *service.BookingLifecycle, pay *service.PaymentService) *BookingHandler {
	return &BookingHandler{Spots: spots, Bookings: bookings, Lifecycle: lc, Payments: pay}
}

type createBookingReq struct {
	SpotID string `json:"spot_id"`
	Date   string `json:"date"`  // YYYY-MM-DD
	Start  string `json:"start"` // HH:MM
	End    string `json:"end"`   // HH:MM
}

// billableAmount prices a window: whole hours, partial hours rounded
// up, never less than one hour.
func billableAmount(start, end string, hourlyRate int64) (int64, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0, err
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0, err
	}
	mins := int64(e.Sub(s).Minutes())
	if mins <= 0 {
		return 0, nil
	}
	hours := (mins + 59) / 60
	return hours * hourlyRate, nil
}

// Create reserves a spot for a window.  A conflicting reservation for
// the same spot and window comes back as 409.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	spot, err := h.Spots.GetByID(ctx, req.SpotID)
	if err != nil {
		if err == repository.ErrSpotNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	amount, err := billableAmount(req.Start, req.End, spot.HourlyRate)
	if err != nil || amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must precede end, HH:MM"})
	}

	b, err := h.Lifecycle.CreateBooking(ctx, uid, req.SpotID, req.Date, req.Start, req.End, amount)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// ListMine returns the caller's bookings, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// ownedBooking loads a booking and verifies the caller owns it.
func (h *BookingHandler) ownedBooking(c echo.Context, ctx context.Context) (model.Booking, uint64, error) {
	uid, err := getUserID(c)
	if err != nil {
		return model.Booking{}, 0, err
	}
	b, err := h.Lifecycle.Get(ctx, c.Param("id"))
	if err != nil {
		return model.Booking{}, 0, err
	}
	if b.UserID != uid {
		return model.Booking{}, 0, repository.ErrForbidden
	}
	return b, uid, nil
}

// Get returns one booking owned by the caller.
func (h *BookingHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, _, err := h.ownedBooking(c, ctx)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Cancel cancels a booking that has not finished.
func (h *BookingHandler) Cancel(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, _, err := h.ownedBooking(c, ctx)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.Lifecycle.Cancel(ctx, b.ID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": b.ID, "status": model.StatusCancelled})
}

type payReq struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number,omitempty"`
	UpiID      string `json:"upi_id,omitempty"`
}

// Pay runs the simulated gateway against the booking's amount.  A
// declined instrument is a 200 with success=false: the booking is
// still awaiting payment and may be retried.
func (h *BookingHandler) Pay(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, uid, err := h.ownedBooking(c, ctx)
	if err != nil {
		return serviceError(c, err)
	}
	var req payReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	res, err := h.Payments.InitiatePayment(ctx, service.PaymentRequest{
		UserID:     uid,
		BookingID:  b.ID,
		Amount:     b.Amount,
		Method:     req.Method,
		CardNumber: req.CardNumber,
		UpiID:      req.UpiID,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// IssueQR mints the entry credential for a paid booking and stores it
// on the booking.  Repeat calls return the stored credential.
func (h *BookingHandler) IssueQR(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, _, err := h.ownedBooking(c, ctx)
	if err != nil {
		return serviceError(c, err)
	}
	if b.QRCode != nil && *b.QRCode != "" {
		return c.JSON(http.StatusOK, echo.Map{"id": b.ID, "qr_code": *b.QRCode})
	}

	txn := ""
	if b.TransactionID != nil {
		txn = *b.TransactionID
	}
	payload, err := utils.EncodeQR(utils.QRPayload{
		ID:          b.ID,
		Spot:        b.SpotNumber,
		Date:        b.BookingDate,
		User:        b.UserID,
		Transaction: txn,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode failed"})
	}
	if err := h.Lifecycle.IssueQR(ctx, b.ID, payload); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": b.ID, "qr_code": payload})
}

// VerifyPayment reports whether a transaction id corresponds to a
// completed payment.  Unknown ids are simply not verified.
func (h *BookingHandler) VerifyPayment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Payments.VerifyPayment(ctx, c.Param("transaction_id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"transaction_id": c.Param("transaction_id"), "verified": ok})
}
