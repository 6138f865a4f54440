package booking

import (
	"fmt"

	"glowdesk/models"
)

// resolveSpan turns a service ID and "HH:mm" start into the interval the
// booking would occupy. The end time derives from the service duration.
func (se *DefaultBookingEngine) resolveSpan(serviceID, startTime string) (models.Interval, error) {
	svc, err := se.CatalogRepo.GetByID(serviceID)
	if err != nil {
		return models.Interval{}, fmt.Errorf("failed to resolve service: %w", err)
	}
	if svc == nil {
		return models.Interval{}, ServiceNotFoundError{ID: serviceID}
	}

	start, err := models.ParseClock(startTime)
	if err != nil {
		return models.Interval{}, ValidationError{Reason: err.Error()}
	}
	end, err := models.AddDuration(start, svc.Duration)
	if err != nil {
		return models.Interval{}, ValidationError{Reason: err.Error()}
	}
	return models.Interval{Start: start, End: end}, nil
}

// admit runs admission steps against the calendar and the ledger: the staff
// day must exist and not be a day off, a working slot must fully contain
// span, and no active booking may overlap it. The advisory IsBooked flag
// plays no part here; the ledger scan is authoritative. On success admit
// returns the covering slot so the commit can flip that flag. excludeID
// skips one booking in the overlap scan, used when rescheduling.
//
// Callers that intend to commit must hold the staff-day lock across admit and
// the commit; read-only callers may invoke it bare.
func (se *DefaultBookingEngine) admit(staffID, date string, span models.Interval, excludeID string) (models.Interval, error) {
	day, err := se.AvailabilityRepo.GetByStaffAndDate(staffID, date)
	if err != nil {
		return models.Interval{}, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if day == nil || day.IsDayOff {
		return models.Interval{}, NoAvailabilityError{StaffID: staffID, Date: date}
	}

	var slot models.Interval
	found := false
	for _, ts := range day.TimeSlots {
		if ts.Span().Contains(span) {
			slot = ts.Span()
			found = true
			break
		}
	}
	if !found {
		return models.Interval{}, NoAvailabilityError{StaffID: staffID, Date: date}
	}

	conflict, err := se.Repo.FindOverlapping(staffID, date, span, excludeID)
	if err != nil {
		return models.Interval{}, fmt.Errorf("failed to scan for conflicts: %w", err)
	}
	if conflict != nil {
		return models.Interval{}, SlotConflictError{StaffID: staffID, Date: date}
	}
	return slot, nil
}

// CheckAvailability runs the admission checks without committing anything.
func (se *DefaultBookingEngine) CheckAvailability(staffID, date string, span models.Interval, excludeID string) error {
	_, err := se.admit(staffID, date, span, excludeID)
	return err
}
