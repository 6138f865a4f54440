package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	catalogRepo "glowdesk/database/repository/catalog"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DefaultCatalogService implements CatalogService over the Mongo repository,
// with a Redis read cache for single entries.
type DefaultCatalogService struct {
	Repo  catalogRepo.ServiceRepository
	Cache *redis.Client
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ValidationError{Reason: "name is required"}
	}
	return name, nil
}

// Create adds a catalog entry. Names are unique among live entries and the
// duration must be one of the fixed bookable durations.
func (s *DefaultCatalogService) Create(req models.CreateServiceRequest) (*models.Service, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if !models.ValidServiceDuration(req.Duration) {
		return nil, ValidationError{Reason: fmt.Sprintf("duration must be one of %v minutes", models.ServiceDurations)}
	}
	if req.Price < 0 {
		return nil, ValidationError{Reason: "price must not be negative"}
	}

	existing, err := s.Repo.GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check service name: %w", err)
	}
	if existing != nil {
		return nil, AlreadyExistsError{Name: name}
	}

	svc := &models.Service{
		ID:          uuid.New().String(),
		Name:        name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Image:       req.Image,
		IsActive:    true,
	}
	if err := s.Repo.Create(svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

// Update mutates a live catalog entry; nil request fields keep their value.
func (s *DefaultCatalogService) Update(id string, req models.UpdateServiceRequest) (*models.Service, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil {
		return nil, NotFoundError{ID: id}
	}

	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		if name != svc.Name {
			existing, err := s.Repo.GetByName(name)
			if err != nil {
				return nil, fmt.Errorf("failed to check service name: %w", err)
			}
			if existing != nil && existing.ID != svc.ID {
				return nil, AlreadyExistsError{Name: name}
			}
		}
		svc.Name = name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ValidationError{Reason: "price must not be negative"}
		}
		svc.Price = *req.Price
	}
	if req.Duration != nil {
		if !models.ValidServiceDuration(*req.Duration) {
			return nil, ValidationError{Reason: fmt.Sprintf("duration must be one of %v minutes", models.ServiceDurations)}
		}
		svc.Duration = *req.Duration
	}
	if req.Image != nil {
		svc.Image = *req.Image
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	s.invalidateCache(svc.ID)
	return svc, nil
}

// GetByID returns a live entry, consulting the Redis cache first.
func (s *DefaultCatalogService) GetByID(id string) (*models.Service, error) {
	if cached := s.cachedService(id); cached != nil {
		return cached, nil
	}

	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil {
		return nil, NotFoundError{ID: id}
	}
	s.cacheService(svc)
	return svc, nil
}

// GetByName returns a live entry by exact name.
func (s *DefaultCatalogService) GetByName(name string) (*models.Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationError{Reason: "name is required"}
	}
	svc, err := s.Repo.GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil {
		return nil, NotFoundError{ID: name}
	}
	return svc, nil
}

// List returns a page of live entries.
func (s *DefaultCatalogService) List(pr models.PageRequest) (*models.Paged[models.Service], error) {
	return s.Repo.List(pr)
}

// ListTrashed returns a page of soft-deleted entries.
func (s *DefaultCatalogService) ListTrashed(pr models.PageRequest) (*models.Paged[models.Service], error) {
	return s.Repo.ListTrashed(pr)
}

// Trash soft-deletes a live entry. Existing bookings keep their copied
// duration, so trashing a service never disturbs them.
func (s *DefaultCatalogService) Trash(id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil {
		return nil, NotFoundError{ID: id}
	}
	if err := s.Repo.Trash(id); err != nil {
		return nil, fmt.Errorf("failed to trash service: %w", err)
	}
	s.invalidateCache(id)
	return s.Repo.GetTrashedByID(id)
}

// Restore brings a trashed entry back, unless a live entry has since taken
// its name.
func (s *DefaultCatalogService) Restore(id string) (*models.Service, error) {
	svc, err := s.Repo.GetTrashedByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil {
		return nil, NotFoundError{ID: id}
	}

	live, err := s.Repo.GetByName(svc.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check service name: %w", err)
	}
	if live != nil {
		return nil, AlreadyExistsError{Name: svc.Name}
	}

	if err := s.Repo.Restore(id); err != nil {
		return nil, fmt.Errorf("failed to restore service: %w", err)
	}
	return s.Repo.GetByID(id)
}

// Purge permanently removes a trashed entry.
func (s *DefaultCatalogService) Purge(id string) error {
	svc, err := s.Repo.GetTrashedByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil {
		return NotFoundError{ID: id}
	}
	return s.Repo.Purge(id)
}

// --- Redis entry cache. Advisory only; the repository stays authoritative. ---

func serviceCacheKey(id string) string {
	return utils.ServiceCachePrefix + id
}

func (s *DefaultCatalogService) cachedService(id string) *models.Service {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.Cache.Get(ctx, serviceCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var svc models.Service
	if err := json.Unmarshal(raw, &svc); err != nil {
		return nil
	}
	return &svc
}

func (s *DefaultCatalogService) cacheService(svc *models.Service) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(svc)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Cache.Set(ctx, serviceCacheKey(svc.ID), raw, utils.ServiceCacheTTL)
}

func (s *DefaultCatalogService) invalidateCache(id string) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Cache.Del(ctx, serviceCacheKey(id))
}
