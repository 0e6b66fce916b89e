package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

func TestValidateWindow(t *testing.T) {
	cases := []struct {
		name             string
		date, start, end string
		wantErr          bool
	}{
		{"valid", "2026-09-01", "09:00", "12:00", false},
		{"one minute", "2026-09-01", "09:00", "09:01", false},
		{"bad date", "01-09-2026", "09:00", "12:00", true},
		{"bad start", "2026-09-01", "9am", "12:00", true},
		{"bad end", "2026-09-01", "09:00", "25:00", true},
		{"empty window", "2026-09-01", "12:00", "12:00", true},
		{"inverted window", "2026-09-01", "14:00", "12:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindow(tc.date, tc.start, tc.end)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	// Existing window 09:00-12:00.
	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical", "09:00", "12:00", true},
		{"contained", "10:00", "11:00", true},
		{"straddles end", "11:00", "13:00", true},
		{"straddles start", "08:00", "10:00", true},
		{"adjacent after", "12:00", "14:00", false},
		{"adjacent before", "07:00", "09:00", false},
		{"disjoint", "13:00", "15:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps("09:00", "12:00", tc.start, tc.end))
		})
	}
}

func availabilityFixture() (*fakeSpotStore, *fakeBookingStore, *AvailabilityResolver) {
	spots := newFakeSpotStore(
		model.ParkingSpot{ID: "s1", SpotNumber: "A-01", Status: model.SpotAvailable, HourlyRate: 40},
		model.ParkingSpot{ID: "s2", SpotNumber: "A-02", Status: model.SpotMaintenance, HourlyRate: 40},
	)
	bookings := newFakeBookingStore()
	return spots, bookings, NewAvailabilityResolver(spots, bookings)
}

func TestResolveUsesOverlapPredicate(t *testing.T) {
	_, bookings, res := availabilityFixture()
	bookings.put(model.Booking{
		SpotID: "s1", BookingDate: "2026-09-01",
		StartTime: "09:00", EndTime: "12:00",
		Status: model.StatusBooked,
	})

	byNumber := func(out []model.SpotAvailability) map[string]bool {
		m := map[string]bool{}
		for _, a := range out {
			m[a.SpotNumber] = a.IsAvailable
		}
		return m
	}

	// Overlapping request: the booked spot is unavailable, maintenance always is.
	out, err := res.Resolve(context.Background(), "2026-09-01", "11:00", "13:00")
	require.NoError(t, err)
	got := byNumber(out)
	assert.False(t, got["A-01"])
	assert.False(t, got["A-02"])

	// Adjacent request reuses the spot the moment the window ends.
	out, err = res.Resolve(context.Background(), "2026-09-01", "12:00", "14:00")
	require.NoError(t, err)
	assert.True(t, byNumber(out)["A-01"])

	// Same window on another date is free.
	out, err = res.Resolve(context.Background(), "2026-09-02", "09:00", "12:00")
	require.NoError(t, err)
	assert.True(t, byNumber(out)["A-01"])
}

func TestResolveIgnoresInactiveBookings(t *testing.T) {
	_, bookings, res := availabilityFixture()
	bookings.put(model.Booking{
		SpotID: "s1", BookingDate: "2026-09-01",
		StartTime: "09:00", EndTime: "12:00",
		Status: model.StatusCancelled,
	})

	out, err := res.Resolve(context.Background(), "2026-09-01", "09:00", "12:00")
	require.NoError(t, err)
	for _, a := range out {
		if a.SpotNumber == "A-01" {
			assert.True(t, a.IsAvailable)
		}
	}
}

func TestResolveDegradesToCoarseStatus(t *testing.T) {
	_, bookings, res := availabilityFixture()
	bookings.overlapErr = errors.New("replica down")

	out, err := res.Resolve(context.Background(), "2026-09-01", "09:00", "12:00")
	require.NoError(t, err, "a failed predicate must not fail the query")
	for _, a := range out {
		switch a.SpotNumber {
		case "A-01":
			assert.True(t, a.IsAvailable, "falls back to coarse available")
		case "A-02":
			assert.False(t, a.IsAvailable)
		}
	}
}

func TestResolveRejectsBadWindow(t *testing.T) {
	_, _, res := availabilityFixture()
	_, err := res.Resolve(context.Background(), "2026-09-01", "14:00", "12:00")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveSpotListFailure(t *testing.T) {
	spots, bookings, _ := availabilityFixture()
	spots.err = errors.New("db gone")
	res := NewAvailabilityResolver(spots, bookings)

	_, err := res.Resolve(context.Background(), "2026-09-01", "09:00", "12:00")
	assert.ErrorIs(t, err, ErrCollaborator)
}
