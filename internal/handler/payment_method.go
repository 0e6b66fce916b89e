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

// PaymentMethodHandler manages the caller's saved payment methods.
// Instruments are display-only records (network, last four, nickname);
// full card numbers never reach the server outside a payment attempt.
type PaymentMethodHandler struct {
	Methods *repository.PaymentMethodRepo
}

func NewPaymentMethodHandler(m *repository.PaymentMethodRepo) *PaymentMethodHandler {
	return &PaymentMethodHandler{Methods: m}
}

type paymentMethodReq struct {
	PaymentType  string `json:"payment_type"`
	CardNetwork  string `json:"card_network,omitempty"`
	CardLastFour string `json:"card_last_four,omitempty"`
	Nickname     string `json:"nickname,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	IsDefault    bool   `json:"is_default"`
}

// List returns the caller's saved payment methods.
func (h *PaymentMethodHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	methods, err := h.Methods.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"payment_methods": methods})
}

// Create saves a payment method; marking it default demotes any
// existing default.
func (h *PaymentMethodHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req paymentMethodReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PaymentType = strings.ToLower(strings.TrimSpace(req.PaymentType))
	if req.PaymentType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_type required"})
	}
	if req.CardLastFour != "" && len(req.CardLastFour) != 4 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "card_last_four must be 4 digits"})
	}

	m := model.PaymentMethod{
		UserID:      uid,
		PaymentType: req.PaymentType,
		IsDefault:   req.IsDefault,
	}
	if req.CardNetwork != "" {
		m.CardNetwork = &req.CardNetwork
	}
	if req.CardLastFour != "" {
		m.CardLastFour = &req.CardLastFour
	}
	if req.Nickname != "" {
		m.Nickname = &req.Nickname
	}
	if req.ExpiryDate != "" {
		m.ExpiryDate = &req.ExpiryDate
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Methods.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// SetDefault makes one of the caller's methods the default.
func (h *PaymentMethodHandler) SetDefault(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Methods.SetDefault(ctx, uid, c.Param("id")); err != nil {
		if err == repository.ErrPaymentMethodNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment method not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "is_default": true})
}

// Delete removes one of the caller's payment methods.
func (h *PaymentMethodHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Methods.Delete(ctx, uid, c.Param("id")); err != nil {
		if err == repository.ErrPaymentMethodNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment method not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
