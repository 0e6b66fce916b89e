package router

import (
	"github.com/labstack/echo/v4"

	"github.com/abhinavmaity/ParkIt/internal/handler"
	"github.com/abhinavmaity/ParkIt/internal/middleware"
	"github.com/abhinavmaity/ParkIt/internal/model"
)

// RegisterAdmin registers the back-office endpoints under /v1/admin.
// All routes require the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, s *handler.SpotHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/stats", a.Summary)
	g.GET("/bookings", a.ListBookings)
	g.GET("/bookings/:id", a.GetBooking)
	g.GET("/transactions", a.ListTransactions)
	g.GET("/users", a.ListUsers)
	g.PATCH("/bookings/:id/cancel", a.CancelBooking)

	// Spot provisioning and maintenance toggling.
	g.POST("/spots", s.Create)
	g.PATCH("/spots/:id/status", s.UpdateStatus)
}
