package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "glowdesk/database/repository/booking"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// newReference builds the human-readable booking reference, e.g. "BK-9F2C41A7".
func newReference() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "BK-" + strings.ToUpper(raw[:8])
}

func validateCreate(req models.CreateBookingRequest) error {
	switch {
	case strings.TrimSpace(req.Customer.Name) == "":
		return ValidationError{Reason: "customer name is required"}
	case strings.TrimSpace(req.Customer.Mobile) == "":
		return ValidationError{Reason: "customer mobile is required"}
	case req.StaffID == "":
		return ValidationError{Reason: "staffId is required"}
	case req.ServiceID == "":
		return ValidationError{Reason: "serviceId is required"}
	case !models.ValidDate(req.Date):
		return ValidationError{Reason: "date must be YYYY-MM-DD"}
	case req.Price <= 0:
		return ValidationError{Reason: "price must be positive"}
	}
	return nil
}

// Create admits and commits a new booking. The staff-day lock is held from
// the admission checks through the ledger commit so no competing request can
// observe a half-committed state for the same (staff, date).
func (se *DefaultBookingEngine) Create(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if err := validateCreate(req); err != nil {
		return nil, err
	}

	staff, err := se.StaffRepo.GetByID(req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	if staff == nil {
		return nil, StaffNotFoundError{ID: req.StaffID}
	}

	span, err := se.resolveSpan(req.ServiceID, req.StartTime)
	if err != nil {
		return nil, err
	}

	lock := se.locks.get(req.StaffID, req.Date)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("request aborted before commit: %w", err)
	}

	slot, err := se.admit(req.StaffID, req.Date, span, "")
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:        uuid.New().String(),
		Reference: newReference(),
		Customer:  req.Customer,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		StartTime: span.Start,
		EndTime:   span.End,
		Status:    models.BookingStatusBooked,
		Price:     req.Price,
		Notes:     req.Notes,
	}

	if err := se.Repo.Commit(ctx, booking, slot); err != nil {
		if errors.Is(err, bookingRepo.ErrOverlapDetected) {
			return nil, SlotConflictError{StaffID: req.StaffID, Date: req.Date}
		}
		return nil, fmt.Errorf("booking commit failed: %w", err)
	}
	se.invalidateDayCache(req.StaffID, req.Date)

	logger.Info("booking committed",
		zap.String("reference", booking.Reference),
		zap.String("staffId", booking.StaffID),
		zap.String("date", booking.Date),
		zap.String("start", models.FormatClock(booking.StartTime)),
		zap.String("end", models.FormatClock(booking.EndTime)),
	)
	return booking, nil
}

// Update applies changes to a live booking. When the date, start time,
// service or staff change, the full admission run is repeated against the new
// interval - excluding the booking's own record - before anything persists.
// Flipping the status back to booked re-occupies the interval, so it gets the
// same lock-and-scan treatment as Restore.
func (se *DefaultBookingEngine) Update(ctx context.Context, id string, req models.UpdateBookingRequest) (*models.Booking, error) {
	existing, err := se.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if existing == nil {
		return nil, NotFoundError{ID: id}
	}

	updated := *existing
	if req.Customer != nil {
		updated.Customer = *req.Customer
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ValidationError{Reason: "price must be positive"}
		}
		updated.Price = *req.Price
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.Status != nil {
		if !models.ValidBookingStatus(*req.Status) {
			return nil, ValidationError{Reason: "status must be booked, completed or cancelled"}
		}
		updated.Status = *req.Status
	}
	if req.StaffID != nil {
		updated.StaffID = *req.StaffID
	}
	if req.ServiceID != nil {
		updated.ServiceID = *req.ServiceID
	}
	if req.Date != nil {
		if !models.ValidDate(*req.Date) {
			return nil, ValidationError{Reason: "date must be YYYY-MM-DD"}
		}
		updated.Date = *req.Date
	}

	startTime := models.FormatClock(existing.StartTime)
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	reschedule := req.StaffID != nil || req.ServiceID != nil || req.Date != nil || req.StartTime != nil
	if reschedule {
		if updated.StaffID != existing.StaffID {
			staff, err := se.StaffRepo.GetByID(updated.StaffID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch staff: %w", err)
			}
			if staff == nil {
				return nil, StaffNotFoundError{ID: updated.StaffID}
			}
		}

		span, err := se.resolveSpan(updated.ServiceID, startTime)
		if err != nil {
			return nil, err
		}

		lock := se.locks.get(updated.StaffID, updated.Date)
		lock.Lock()
		defer lock.Unlock()

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("request aborted before commit: %w", err)
		}

		if updated.Active() {
			if _, err := se.admit(updated.StaffID, updated.Date, span, existing.ID); err != nil {
				return nil, err
			}
		}
		updated.StartTime = span.Start
		updated.EndTime = span.End
	} else if updated.Status == models.BookingStatusBooked && existing.Status != models.BookingStatusBooked {
		// Reactivation in place: the interval may have been taken while the
		// booking sat cancelled or completed.
		lock := se.locks.get(updated.StaffID, updated.Date)
		lock.Lock()
		defer lock.Unlock()

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("request aborted before commit: %w", err)
		}

		conflict, err := se.Repo.FindOverlapping(updated.StaffID, updated.Date, updated.Span(), updated.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan for conflicts: %w", err)
		}
		if conflict != nil {
			return nil, SlotConflictError{StaffID: updated.StaffID, Date: updated.Date}
		}
	}

	if err := se.Repo.Update(&updated); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	se.invalidateDayCache(existing.StaffID, existing.Date)
	se.invalidateDayCache(updated.StaffID, updated.Date)
	return &updated, nil
}
