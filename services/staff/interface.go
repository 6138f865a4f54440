package staff

import "glowdesk/models"

// StaffService manages the user directory. Accounts with the staff role are
// the bookable resources the calendar and ledger key on.
type StaffService interface {
	Create(req models.CreateUserRequest) (*models.User, error)
	Update(id string, req models.UpdateUserRequest) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(pr models.PageRequest) (*models.Paged[models.User], error)
	ListByRole(role string, pr models.PageRequest) (*models.Paged[models.User], error)
	ListTrashed(pr models.PageRequest) (*models.Paged[models.User], error)
	ListActiveStaff() ([]models.User, error)
	Trash(id string) (*models.User, error)
	Restore(id string) (*models.User, error)
	Purge(id string) error
}
