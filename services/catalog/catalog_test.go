package catalog

import (
	"errors"
	"testing"
	"time"

	"glowdesk/models"
)

type memServiceRepo struct {
	items map[string]models.Service
}

func newMemServiceRepo() *memServiceRepo {
	return &memServiceRepo{items: make(map[string]models.Service)}
}

func (r *memServiceRepo) Create(svc *models.Service) error {
	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	r.items[svc.ID] = *svc
	return nil
}

func (r *memServiceRepo) Update(svc *models.Service) error {
	svc.UpdatedAt = time.Now()
	r.items[svc.ID] = *svc
	return nil
}

func (r *memServiceRepo) GetByID(id string) (*models.Service, error) {
	s, ok := r.items[id]
	if !ok || s.DeletedAt != nil {
		return nil, nil
	}
	clone := s
	return &clone, nil
}

func (r *memServiceRepo) GetTrashedByID(id string) (*models.Service, error) {
	s, ok := r.items[id]
	if !ok || s.DeletedAt == nil {
		return nil, nil
	}
	clone := s
	return &clone, nil
}

func (r *memServiceRepo) GetByName(name string) (*models.Service, error) {
	for _, s := range r.items {
		if s.Name == name && s.DeletedAt == nil {
			clone := s
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memServiceRepo) List(pr models.PageRequest) (*models.Paged[models.Service], error) {
	pr = pr.Normalize()
	var matched []models.Service
	for _, s := range r.items {
		if s.DeletedAt == nil {
			matched = append(matched, s)
		}
	}
	return models.NewPaged(matched, int64(len(matched)), pr), nil
}

func (r *memServiceRepo) ListTrashed(pr models.PageRequest) (*models.Paged[models.Service], error) {
	pr = pr.Normalize()
	var matched []models.Service
	for _, s := range r.items {
		if s.DeletedAt != nil {
			matched = append(matched, s)
		}
	}
	return models.NewPaged(matched, int64(len(matched)), pr), nil
}

func (r *memServiceRepo) Trash(id string) error {
	s := r.items[id]
	now := time.Now()
	s.DeletedAt = &now
	r.items[id] = s
	return nil
}

func (r *memServiceRepo) Restore(id string) error {
	s := r.items[id]
	s.DeletedAt = nil
	r.items[id] = s
	return nil
}

func (r *memServiceRepo) Purge(id string) error {
	delete(r.items, id)
	return nil
}

func (r *memServiceRepo) PurgeTrashedBefore(cutoff time.Time) (int64, error) {
	var n int64
	for id, s := range r.items {
		if s.DeletedAt != nil && s.DeletedAt.Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func newTestCatalog() *DefaultCatalogService {
	return &DefaultCatalogService{Repo: newMemServiceRepo()}
}

func TestCreateService(t *testing.T) {
	svc := newTestCatalog()

	created, err := svc.Create(models.CreateServiceRequest{
		Name: "  Classic Haircut  ", Price: 25, Duration: 30,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Name != "Classic Haircut" {
		t.Fatalf("name = %q, want trimmed %q", created.Name, "Classic Haircut")
	}
	if !created.IsActive {
		t.Fatal("new service should start active")
	}
}

func TestCreateServiceDurationEnum(t *testing.T) {
	svc := newTestCatalog()

	for _, d := range models.ServiceDurations {
		if _, err := svc.Create(models.CreateServiceRequest{
			Name: "svc", Price: 10, Duration: d,
		}); err != nil {
			t.Fatalf("duration %d rejected: %v", d, err)
		}
		// Reset between iterations to dodge the duplicate-name check.
		svc = newTestCatalog()
	}

	for _, d := range []int{0, 10, 20, 90, -15} {
		_, err := svc.Create(models.CreateServiceRequest{
			Name: "svc", Price: 10, Duration: d,
		})
		var validation ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("duration %d: expected ValidationError, got %v", d, err)
		}
	}
}

func TestCreateServiceDuplicateName(t *testing.T) {
	svc := newTestCatalog()

	req := models.CreateServiceRequest{Name: "Beard Trim", Price: 12, Duration: 15}
	if _, err := svc.Create(req); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	_, err := svc.Create(req)
	var exists AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected AlreadyExistsError, got %v", err)
	}
}

func TestUpdateService(t *testing.T) {
	svc := newTestCatalog()

	created, err := svc.Create(models.CreateServiceRequest{Name: "Blow Dry", Price: 30, Duration: 45})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	t.Run("partial update", func(t *testing.T) {
		price := 35.0
		updated, err := svc.Update(created.ID, models.UpdateServiceRequest{Price: &price})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if updated.Price != 35 || updated.Name != "Blow Dry" || updated.Duration != 45 {
			t.Fatalf("updated = %+v, want only price changed", updated)
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		d := 50
		_, err := svc.Update(created.ID, models.UpdateServiceRequest{Duration: &d})
		var validation ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("name collision", func(t *testing.T) {
		if _, err := svc.Create(models.CreateServiceRequest{Name: "Full Colour", Price: 80, Duration: 60}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		name := "Full Colour"
		_, err := svc.Update(created.ID, models.UpdateServiceRequest{Name: &name})
		var exists AlreadyExistsError
		if !errors.As(err, &exists) {
			t.Fatalf("expected AlreadyExistsError, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		price := 1.0
		_, err := svc.Update("svc-missing", models.UpdateServiceRequest{Price: &price})
		var notFound NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}

func TestServiceTrashLifecycle(t *testing.T) {
	svc := newTestCatalog()

	created, err := svc.Create(models.CreateServiceRequest{Name: "Hot Towel Shave", Price: 18, Duration: 30})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Trash(created.ID); err != nil {
		t.Fatalf("Trash returned error: %v", err)
	}
	if _, err := svc.GetByID(created.ID); err == nil {
		t.Fatal("expected NotFoundError after trash")
	}

	// The trashed name is free for a new live entry.
	if _, err := svc.Create(models.CreateServiceRequest{Name: "Hot Towel Shave", Price: 20, Duration: 30}); err != nil {
		t.Fatalf("Create with trashed name returned error: %v", err)
	}

	// But that blocks the restore.
	_, err = svc.Restore(created.ID)
	var exists AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected AlreadyExistsError on restore, got %v", err)
	}

	if err := svc.Purge(created.ID); err != nil {
		t.Fatalf("Purge returned error: %v", err)
	}
}

func TestGetServiceByName(t *testing.T) {
	svc := newTestCatalog()

	created, err := svc.Create(models.CreateServiceRequest{Name: "Classic Haircut", Price: 25, Duration: 30})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	found, err := svc.GetByName("  Classic Haircut  ")
	if err != nil {
		t.Fatalf("GetByName returned error: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("GetByName id = %s, want %s", found.ID, created.ID)
	}

	_, err = svc.GetByName("Mullet Revival")
	var notFound NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	_, err = svc.GetByName("   ")
	var validation ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
