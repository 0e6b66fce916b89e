package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/abhinavmaity/ParkIt/internal/model"
)

// SpotStore is the slice of the spot repository the resolver needs.
type SpotStore interface {
	List(ctx context.Context) ([]model.ParkingSpot, error)
	GetByID(ctx context.Context, id string) (model.ParkingSpot, error)
}

// OverlapCounter evaluates the time-window predicate against existing
// bookings.  Implemented by the booking repository.
type OverlapCounter interface {
	CountOverlapping(ctx context.Context, spotID, date, start, end string) (int, error)
}

// AvailabilityResolver computes per-spot availability for a date and
// half-open time window.  It is a pure read: no operation here mutates
// any state.
type AvailabilityResolver struct {
	Spots    SpotStore
	Bookings OverlapCounter
}

// NewAvailabilityResolver constructs a resolver over the given stores.
func NewAvailabilityResolver(spots SpotStore, bookings OverlapCounter) *AvailabilityResolver {
	return &AvailabilityResolver{Spots: spots, Bookings: bookings}
}

// Resolve returns one entry per spot.  Spots whose coarse status is
// booked or maintenance are reported unavailable without evaluating the
// overlap predicate.  For spots marked available, the predicate decides.
// When the predicate itself fails, the spot falls back to its coarse
// status: availability over consistency, the caller may be over- or
// under-served but the whole query never fails for one bad lookup.
func (r *AvailabilityResolver) Resolve(ctx context.Context, date, start, end string) ([]model.SpotAvailability, error) {
	if err := ValidateWindow(date, start, end); err != nil {
		return nil, err
	}
	spots, err := r.Spots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list spots: %v", ErrCollaborator, err)
	}
	result := make([]model.SpotAvailability, 0, len(spots))
	for _, s := range spots {
		available := s.Status == model.SpotAvailable
		if available {
			n, err := r.Bookings.CountOverlapping(ctx, s.ID, date, start, end)
			if err != nil {
				// Degrade to the coarse status result.
				log.Printf("availability: overlap check failed for spot %s, using coarse status: %v", s.SpotNumber, err)
			} else {
				available = n == 0
			}
		}
		result = append(result, model.SpotAvailability{
			SpotID:      s.ID,
			SpotNumber:  s.SpotNumber,
			IsAvailable: available,
			HourlyRate:  s.HourlyRate,
			Type:        s.Type,
			Location:    s.Location,
		})
	}
	return result, nil
}

// ValidateWindow checks the date and time formats and that the window
// is non-empty.  Windows are half-open, so start must be strictly
// before end; adjacent windows never conflict.
func ValidateWindow(date, start, end string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}
	st, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("%w: invalid start time %q", ErrValidation, start)
	}
	en, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("%w: invalid end time %q", ErrValidation, end)
	}
	if !st.Before(en) {
		return fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}
	return nil
}

// Overlaps reports whether two half-open intervals [s1,e1) and [s2,e2)
// intersect: s1 < e2 AND s2 < e1.  Times are HH:MM strings, which
// compare correctly lexicographically.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}
