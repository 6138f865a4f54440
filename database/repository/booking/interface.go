package bookingRepo

import (
	"context"
	"time"

	"glowdesk/models"
)

// BookingRepository persists the booking ledger. Lookups scoped to live
// records treat a missing document as (nil, nil). All mutation of active
// bookings flows through the booking engine; nothing else writes here.
type BookingRepository interface {
	// Commit atomically inserts the booking and flips the advisory booked
	// flag on the covering calendar slot.
	Commit(ctx context.Context, booking *models.Booking, slot models.Interval) error

	// FindOverlapping returns an active booking on (staffID, date) whose
	// interval overlaps span, excluding excludeID ("" to exclude none).
	FindOverlapping(staffID, date string, span models.Interval, excludeID string) (*models.Booking, error)

	GetByID(id string) (*models.Booking, error)
	GetTrashedByID(id string) (*models.Booking, error)
	Update(booking *models.Booking) error
	List(pr models.PageRequest) (*models.Paged[models.Booking], error)
	ListByMobile(mobile string, pr models.PageRequest) (*models.Paged[models.Booking], error)
	ListTrashed(pr models.PageRequest) (*models.Paged[models.Booking], error)
	Trash(id string) error
	Restore(id string) error
	Purge(id string) error

	// Housekeeping.
	CompletePastBookings(before string) (int64, error)
	PurgeTrashedBefore(cutoff time.Time) (int64, error)
}
