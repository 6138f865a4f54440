package booking

import (
	"fmt"

	"glowdesk/models"
)

// GetByID returns a live booking.
func (se *DefaultBookingEngine) GetByID(id string) (*models.Booking, error) {
	b, err := se.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, NotFoundError{ID: id}
	}
	return b, nil
}

// List returns a page of live bookings.
func (se *DefaultBookingEngine) List(pr models.PageRequest) (*models.Paged[models.Booking], error) {
	return se.Repo.List(pr)
}

// ListByMobile returns a page of live bookings for one customer mobile.
func (se *DefaultBookingEngine) ListByMobile(mobile string, pr models.PageRequest) (*models.Paged[models.Booking], error) {
	if mobile == "" {
		return nil, ValidationError{Reason: "mobile is required"}
	}
	return se.Repo.ListByMobile(mobile, pr)
}

// ListTrashed returns a page of soft-deleted bookings.
func (se *DefaultBookingEngine) ListTrashed(pr models.PageRequest) (*models.Paged[models.Booking], error) {
	return se.Repo.ListTrashed(pr)
}

// Trash soft-deletes a booking, freeing its interval for new admissions. The
// advisory slot flag is left alone; the ledger scan is what matters.
func (se *DefaultBookingEngine) Trash(id string) (*models.Booking, error) {
	b, err := se.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, NotFoundError{ID: id}
	}
	if err := se.Repo.Trash(id); err != nil {
		return nil, fmt.Errorf("failed to trash booking: %w", err)
	}
	return se.Repo.GetTrashedByID(id)
}

// Restore brings a trashed booking back. The booking returns to the overlap
// scans with its stored status, so restoring a booked record re-occupies the
// interval; callers hit SlotConflict on competing admissions from then on.
func (se *DefaultBookingEngine) Restore(id string) (*models.Booking, error) {
	b, err := se.Repo.GetTrashedByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, NotFoundError{ID: id}
	}

	if b.Status == models.BookingStatusBooked {
		lock := se.locks.get(b.StaffID, b.Date)
		lock.Lock()
		defer lock.Unlock()

		conflict, err := se.Repo.FindOverlapping(b.StaffID, b.Date, b.Span(), b.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan for conflicts: %w", err)
		}
		if conflict != nil {
			return nil, SlotConflictError{StaffID: b.StaffID, Date: b.Date}
		}
	}

	if err := se.Repo.Restore(id); err != nil {
		return nil, fmt.Errorf("failed to restore booking: %w", err)
	}
	return se.Repo.GetByID(id)
}

// Purge permanently removes a trashed booking.
func (se *DefaultBookingEngine) Purge(id string) error {
	b, err := se.Repo.GetTrashedByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return NotFoundError{ID: id}
	}
	return se.Repo.Purge(id)
}
