package catalogRepo

import (
	"time"

	"glowdesk/models"
)

// ServiceRepository persists catalog entries. Lookups scoped to live records
// treat a missing document as (nil, nil).
type ServiceRepository interface {
	Create(svc *models.Service) error
	Update(svc *models.Service) error
	GetByID(id string) (*models.Service, error)
	GetTrashedByID(id string) (*models.Service, error)
	GetByName(name string) (*models.Service, error)
	List(pr models.PageRequest) (*models.Paged[models.Service], error)
	ListTrashed(pr models.PageRequest) (*models.Paged[models.Service], error)
	Trash(id string) error
	Restore(id string) error
	Purge(id string) error
	PurgeTrashedBefore(cutoff time.Time) (int64, error)
}
