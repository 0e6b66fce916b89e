package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/abhinavmaity/ParkIt/internal/repository"
	"github.com/abhinavmaity/ParkIt/internal/service"
)

// errUnauthenticated marks requests whose authenticated user id is
// missing or malformed in the context.
var errUnauthenticated = errors.New("unauthorized")

// getUserID extracts the authenticated user's id from the context,
// where the JWT middleware stored the subject claim.  Numeric claims
// arrive as float64 after JSON decoding.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case float64:
		if v > 0 {
			return uint64(v), nil
		}
	case string:
		if id, err := strconv.ParseUint(v, 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}
	return 0, errUnauthenticated
}

// serviceError translates core sentinel errors into HTTP responses so
// every handler maps the taxonomy the same way.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errUnauthenticated):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInvalidState):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrPrecondition):
		return c.JSON(http.StatusPreconditionFailed, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCollaborator):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "upstream failure"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
