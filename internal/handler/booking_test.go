package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnedBookingEndpointsAnswer401WithoutUser(t *testing.T) {
	// No user_id in the context: every booking endpoint keyed on the
	// caller answers unauthorized before touching any collaborator.
	e := echo.New()
	h := &BookingHandler{}
	endpoints := map[string]echo.HandlerFunc{
		"get":    h.Get,
		"cancel": h.Cancel,
		"pay":    h.Pay,
		"qr":     h.IssueQR,
	}
	for name, fn := range endpoints {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues("b1")

			require.NoError(t, fn(c))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestBillableAmountRoundsUpToWholeHours(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       int64
	}{
		{"exact hours", "09:00", "12:00", 120},
		{"partial hour rounds up", "09:00", "10:30", 80},
		{"under an hour bills one", "09:00", "09:15", 40},
		{"inverted window bills nothing", "12:00", "09:00", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := billableAmount(tc.start, tc.end, 40)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
