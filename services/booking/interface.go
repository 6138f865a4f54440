package booking

import (
	"context"

	"glowdesk/models"
)

// BookingService is the only write path into the booking ledger and the
// advisory slot flags. Admission and commit for one (staff, date) key are
// serialized; everything else runs concurrently.
type BookingService interface {
	Create(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	Update(ctx context.Context, id string, req models.UpdateBookingRequest) (*models.Booking, error)
	GetByID(id string) (*models.Booking, error)
	List(pr models.PageRequest) (*models.Paged[models.Booking], error)
	ListByMobile(mobile string, pr models.PageRequest) (*models.Paged[models.Booking], error)
	ListTrashed(pr models.PageRequest) (*models.Paged[models.Booking], error)
	Trash(id string) (*models.Booking, error)
	Restore(id string) (*models.Booking, error)
	Purge(id string) error

	// CheckAvailability runs the admission checks read-only, committing
	// nothing. A nil result may go stale immediately; Create re-validates
	// under the staff-day lock.
	CheckAvailability(staffID, date string, span models.Interval, excludeID string) error
}
