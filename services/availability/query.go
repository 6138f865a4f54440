package availability

import (
	"errors"
	"fmt"

	"glowdesk/models"
	"glowdesk/services/booking"
)

// QueryAvailableStaff scans every active staff member and keeps those for
// whom the admission checks pass right now. It takes no locks and reserves
// nothing: a listed staff member can still lose the slot to a concurrent
// booking, which the booking engine resolves at commit time.
func (s *DefaultAvailabilityService) QueryAvailableStaff(date, startTime, serviceID string) ([]models.User, error) {
	if !models.ValidDate(date) {
		return nil, ValidationError{Reason: "date must be YYYY-MM-DD"}
	}
	if startTime == "" || serviceID == "" {
		return nil, ValidationError{Reason: "startTime and serviceId are required"}
	}

	svc, err := s.CatalogRepo.GetByID(serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}
	if svc == nil {
		return nil, ServiceNotFoundError{ID: serviceID}
	}

	start, err := models.ParseClock(startTime)
	if err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}
	end, err := models.AddDuration(start, svc.Duration)
	if err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}
	span := models.Interval{Start: start, End: end}

	staff, err := s.StaffRepo.ListActiveStaff()
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	available := make([]models.User, 0, len(staff))
	for _, member := range staff {
		err := s.Admission.CheckAvailability(member.ID, date, span, "")
		if err == nil {
			available = append(available, member)
			continue
		}
		var noAvail booking.NoAvailabilityError
		var conflict booking.SlotConflictError
		if errors.As(err, &noAvail) || errors.As(err, &conflict) {
			continue
		}
		return nil, fmt.Errorf("availability check for staff %s failed: %w", member.ID, err)
	}
	return available, nil
}
