package catalog

import "glowdesk/models"

// CatalogService manages the bookable service catalog. Durations are fixed
// to the values in models.ServiceDurations because a booking's end time is
// derived from them.
type CatalogService interface {
	Create(req models.CreateServiceRequest) (*models.Service, error)
	Update(id string, req models.UpdateServiceRequest) (*models.Service, error)
	GetByID(id string) (*models.Service, error)
	GetByName(name string) (*models.Service, error)
	List(pr models.PageRequest) (*models.Paged[models.Service], error)
	ListTrashed(pr models.PageRequest) (*models.Paged[models.Service], error)
	Trash(id string) (*models.Service, error)
	Restore(id string) (*models.Service, error)
	Purge(id string) error
}
