package router

import (
	"github.com/labstack/echo/v4"

	"github.com/abhinavmaity/ParkIt/internal/handler"
	"github.com/abhinavmaity/ParkIt/internal/middleware"
	"github.com/abhinavmaity/ParkIt/internal/model"
)

// RegisterSecurity registers the gate-operator endpoints under
// /v1/security.  All routes require the SECURITY role.  Adjudication is
// two calls: inspect classifies a scanned credential without side
// effects, approve commits the entry or exit it allows.
func RegisterSecurity(e *echo.Echo, s *handler.SecurityHandler, jwtSecret string) {
	g := e.Group(
		"/v1/security",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleSecurity, model.RoleAdmin),
	)

	g.POST("/scan", s.Inspect)
	g.POST("/scan/:id/approve", s.Approve)

	g.GET("/logs", s.RecentLogs)
	g.POST("/violations", s.ReportViolation)
	g.GET("/violations", s.RecentViolations)
}
