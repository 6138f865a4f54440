package availability

import "fmt"

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports an absent or soft-deleted availability record.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("availability %s not found", e.ID)
}

// AlreadyExistsError reports a duplicate live record for a (staff, date) key.
type AlreadyExistsError struct {
	StaffID string
	Date    string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("availability already exists for staff %s on %s", e.StaffID, e.Date)
}

// ServiceNotFoundError reports an absent or soft-deleted catalog entry.
type ServiceNotFoundError struct {
	ID string
}

func (e ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service %s not found", e.ID)
}
