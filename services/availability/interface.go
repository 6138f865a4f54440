package availability

import "glowdesk/models"

// AvailabilityService manages per-(staff, date) calendar records and answers
// which staff could take a requested interval.
type AvailabilityService interface {
	Create(req models.CreateAvailabilityRequest) (*models.AvailabilityDay, error)
	Update(id string, req models.UpdateAvailabilityRequest) (*models.AvailabilityDay, error)
	GetByID(id string) (*models.AvailabilityDay, error)
	GetByStaffAndDate(staffID, date string) (*models.AvailabilityDay, error)
	ListByStaff(staffID string, pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error)
	ListTrashed(pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error)
	Trash(id string) (*models.AvailabilityDay, error)
	Restore(id string) (*models.AvailabilityDay, error)
	Purge(id string) error

	// QueryAvailableStaff returns, in directory order, every active staff
	// member for whom a booking at (date, startTime, serviceID) would be
	// admitted right now. Results carry no reservation; the booking engine
	// re-validates at commit time.
	QueryAvailableStaff(date, startTime, serviceID string) ([]models.User, error)
}
