package booking

import "fmt"

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports an absent or soft-deleted booking.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("booking %s not found", e.ID)
}

// ServiceNotFoundError reports an absent or soft-deleted catalog entry.
type ServiceNotFoundError struct {
	ID string
}

func (e ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service %s not found", e.ID)
}

// StaffNotFoundError reports an absent or soft-deleted staff account.
type StaffNotFoundError struct {
	ID string
}

func (e StaffNotFoundError) Error() string {
	return fmt.Sprintf("staff %s not found", e.ID)
}

// NoAvailabilityError reports that the staff member has no unbooked slot
// covering the requested interval on that date.
type NoAvailabilityError struct {
	StaffID string
	Date    string
}

func (e NoAvailabilityError) Error() string {
	return fmt.Sprintf("staff %s has no availability on %s for the requested time", e.StaffID, e.Date)
}

// SlotConflictError reports that an active booking already occupies an
// overlapping interval.
type SlotConflictError struct {
	StaffID string
	Date    string
}

func (e SlotConflictError) Error() string {
	return fmt.Sprintf("staff %s is already booked on %s for the requested time", e.StaffID, e.Date)
}
