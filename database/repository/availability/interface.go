package availabilityRepo

import (
	"time"

	"glowdesk/models"
)

// AvailabilityRepository persists per-(staff, date) calendar records.
// Lookups scoped to live records treat a missing document as (nil, nil).
type AvailabilityRepository interface {
	Create(day *models.AvailabilityDay) error
	Replace(day *models.AvailabilityDay) error
	GetByID(id string) (*models.AvailabilityDay, error)
	GetTrashedByID(id string) (*models.AvailabilityDay, error)
	GetByStaffAndDate(staffID, date string) (*models.AvailabilityDay, error)
	ListByStaff(staffID string, pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error)
	ListTrashed(pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error)
	Trash(id string) error
	Restore(id string) error
	Purge(id string) error
	SetSlotBooked(staffID, date string, span models.Interval, booked bool) error
	PurgeTrashedBefore(cutoff time.Time) (int64, error)
}
