package router

import (
	"github.com/labstack/echo/v4"

	"github.com/abhinavmaity/ParkIt/internal/handler"
	"github.com/abhinavmaity/ParkIt/internal/middleware"
	"github.com/abhinavmaity/ParkIt/internal/model"
)

// RegisterUser registers the driver-facing endpoints under /v1.  All
// routes require a valid JWT with the USER role.  Drivers create
// bookings, pay for them, fetch their entry credential, and manage
// their registered vehicles.
func RegisterUser(e *echo.Echo, b *handler.BookingHandler, v *handler.VehicleHandler, pm *handler.PaymentMethodHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser),
	)

	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.ListMine)
	g.GET("/bookings/:id", b.Get)
	g.PATCH("/bookings/:id/cancel", b.Cancel)

	// Payment and credential issuance follow the booking's own flow:
	// pay first, then mint the QR.  The QR endpoint returns the stored
	// credential on repeat calls.
	g.POST("/bookings/:id/pay", b.Pay)
	g.POST("/bookings/:id/qr", b.IssueQR)
	g.GET("/payments/:transaction_id/verify", b.VerifyPayment)

	g.GET("/vehicles", v.List)
	g.POST("/vehicles", v.Create)
	g.PUT("/vehicles/:id", v.Update)
	g.DELETE("/vehicles/:id", v.Delete)

	g.GET("/payment-methods", pm.List)
	g.POST("/payment-methods", pm.Create)
	g.PATCH("/payment-methods/:id/default", pm.SetDefault)
	g.DELETE("/payment-methods/:id", pm.Delete)
}
