package staffRepo

import (
	"time"

	"glowdesk/models"
)

// UserRepository persists directory accounts. Lookups scoped to live records
// treat a missing document as (nil, nil).
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetTrashedByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListActiveStaff() ([]models.User, error)
	List(pr models.PageRequest) (*models.Paged[models.User], error)
	ListByRole(role string, pr models.PageRequest) (*models.Paged[models.User], error)
	ListTrashed(pr models.PageRequest) (*models.Paged[models.User], error)
	Trash(id string) error
	Restore(id string) error
	Purge(id string) error
	PurgeTrashedBefore(cutoff time.Time) (int64, error)
}
