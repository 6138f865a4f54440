package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "glowdesk/database/repository/booking"
	"glowdesk/models"
)

// In-memory repositories backing the engine tests. They mirror the Mongo
// repositories' contracts: live lookups return (nil, nil) on a miss, and
// Commit repeats the overlap scan under its own lock before inserting.

type fakeBookingRepo struct {
	mu    sync.Mutex
	items map[string]models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{items: make(map[string]models.Booking)}
}

func (r *fakeBookingRepo) findOverlapLocked(staffID, date string, span models.Interval, excludeID string) *models.Booking {
	for _, b := range r.items {
		if b.StaffID != staffID || b.Date != date || !b.Active() {
			continue
		}
		if b.ID == excludeID {
			continue
		}
		if b.Span().Overlaps(span) {
			clone := b
			return &clone
		}
	}
	return nil
}

func (r *fakeBookingRepo) Commit(ctx context.Context, booking *models.Booking, slot models.Interval) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conflict := r.findOverlapLocked(booking.StaffID, booking.Date, booking.Span(), booking.ID); conflict != nil {
		return bookingRepo.ErrOverlapDetected
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.items[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) FindOverlapping(staffID, date string, span models.Interval, excludeID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findOverlapLocked(staffID, date, span, excludeID), nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok || b.DeletedAt != nil {
		return nil, nil
	}
	clone := b
	return &clone, nil
}

func (r *fakeBookingRepo) GetTrashedByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok || b.DeletedAt == nil {
		return nil, nil
	}
	clone := b
	return &clone, nil
}

func (r *fakeBookingRepo) Update(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.UpdatedAt = time.Now()
	r.items[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) page(filter func(models.Booking) bool, pr models.PageRequest) (*models.Paged[models.Booking], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pr = pr.Normalize()
	var matched []models.Booking
	for _, b := range r.items {
		if filter(b) {
			matched = append(matched, b)
		}
	}
	return models.NewPaged(matched, int64(len(matched)), pr), nil
}

func (r *fakeBookingRepo) List(pr models.PageRequest) (*models.Paged[models.Booking], error) {
	return r.page(func(b models.Booking) bool { return b.DeletedAt == nil }, pr)
}

func (r *fakeBookingRepo) ListByMobile(mobile string, pr models.PageRequest) (*models.Paged[models.Booking], error) {
	return r.page(func(b models.Booking) bool {
		return b.DeletedAt == nil && b.Customer.Mobile == mobile
	}, pr)
}

func (r *fakeBookingRepo) ListTrashed(pr models.PageRequest) (*models.Paged[models.Booking], error) {
	return r.page(func(b models.Booking) bool { return b.DeletedAt != nil }, pr)
}

func (r *fakeBookingRepo) Trash(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.items[id]
	now := time.Now()
	b.DeletedAt = &now
	r.items[id] = b
	return nil
}

func (r *fakeBookingRepo) Restore(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.items[id]
	b.DeletedAt = nil
	r.items[id] = b
	return nil
}

func (r *fakeBookingRepo) Purge(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeBookingRepo) CompletePastBookings(before string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, b := range r.items {
		if b.Active() && b.Date < before {
			b.Status = models.BookingStatusCompleted
			r.items[id] = b
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) PurgeTrashedBefore(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, b := range r.items {
		if b.DeletedAt != nil && b.DeletedAt.Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

type fakeAvailabilityRepo struct {
	mu    sync.Mutex
	items map[string]models.AvailabilityDay
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{items: make(map[string]models.AvailabilityDay)}
}

func (r *fakeAvailabilityRepo) Create(day *models.AvailabilityDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	day.CreatedAt = now
	day.UpdatedAt = now
	r.items[day.ID] = *day
	return nil
}

func (r *fakeAvailabilityRepo) Replace(day *models.AvailabilityDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	day.UpdatedAt = time.Now()
	r.items[day.ID] = *day
	return nil
}

func (r *fakeAvailabilityRepo) GetByID(id string) (*models.AvailabilityDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok || d.DeletedAt != nil {
		return nil, nil
	}
	clone := d
	return &clone, nil
}

func (r *fakeAvailabilityRepo) GetTrashedByID(id string) (*models.AvailabilityDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok || d.DeletedAt == nil {
		return nil, nil
	}
	clone := d
	return &clone, nil
}

func (r *fakeAvailabilityRepo) GetByStaffAndDate(staffID, date string) (*models.AvailabilityDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.items {
		if d.StaffID == staffID && d.Date == date && d.DeletedAt == nil {
			clone := d
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeAvailabilityRepo) ListByStaff(staffID string, pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pr = pr.Normalize()
	var matched []models.AvailabilityDay
	for _, d := range r.items {
		if d.StaffID == staffID && d.DeletedAt == nil {
			matched = append(matched, d)
		}
	}
	return models.NewPaged(matched, int64(len(matched)), pr), nil
}

func (r *fakeAvailabilityRepo) ListTrashed(pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pr = pr.Normalize()
	var matched []models.AvailabilityDay
	for _, d := range r.items {
		if d.DeletedAt != nil {
			matched = append(matched, d)
		}
	}
	return models.NewPaged(matched, int64(len(matched)), pr), nil
}

func (r *fakeAvailabilityRepo) Trash(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.items[id]
	now := time.Now()
	d.DeletedAt = &now
	r.items[id] = d
	return nil
}

func (r *fakeAvailabilityRepo) Restore(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.items[id]
	d.DeletedAt = nil
	r.items[id] = d
	return nil
}

func (r *fakeAvailabilityRepo) Purge(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeAvailabilityRepo) SetSlotBooked(staffID, date string, span models.Interval, booked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, d := range r.items {
		if d.StaffID != staffID || d.Date != date || d.DeletedAt != nil {
			continue
		}
		for i, ts := range d.TimeSlots {
			if ts.Start == span.Start && ts.End == span.End {
				d.TimeSlots[i].IsBooked = booked
			}
		}
		r.items[id] = d
	}
	return nil
}

func (r *fakeAvailabilityRepo) PurgeTrashedBefore(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, d := range r.items {
		if d.DeletedAt != nil && d.DeletedAt.Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

type fakeCatalogRepo struct {
	mu    sync.Mutex
	items map[string]models.Service
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{items: make(map[string]models.Service)}
}

func (r *fakeCatalogRepo) Create(svc *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[svc.ID] = *svc
	return nil
}

func (r *fakeCatalogRepo) Update(svc *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[svc.ID] = *svc
	return nil
}

func (r *fakeCatalogRepo) GetByID(id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok || s.DeletedAt != nil {
		return nil, nil
	}
	clone := s
	return &clone, nil
}

func (r *fakeCatalogRepo) GetTrashedByID(id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok || s.DeletedAt == nil {
		return nil, nil
	}
	clone := s
	return &clone, nil
}

func (r *fakeCatalogRepo) GetByName(name string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if s.Name == name && s.DeletedAt == nil {
			clone := s
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCatalogRepo) List(pr models.PageRequest) (*models.Paged[models.Service], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pr = pr.Normalize()
	var matched []models.Service
	for _, s := range r.items {
		if s.DeletedAt == nil {
			matched = append(matched, s)
		}
	}
	return models.NewPaged(matched, int64(len(matched)), pr), nil
}

func (r *fakeCatalogRepo) ListTrashed(pr models.PageRequest) (*models.Paged[models.Service], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pr = pr.Normalize()
	var matched []models.Service
	for _, s := range r.items {
		if s.DeletedAt != nil {
			matched = append(matched, s)
		}
	}
	return models.NewPaged(matched, int64(len(matched)), pr), nil
}

func (r *fakeCatalogRepo) Trash(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.items[id]
	now := time.Now()
	s.DeletedAt = &now
	r.items[id] = s
	return nil
}

func (r *fakeCatalogRepo) Restore(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.items[id]
	s.DeletedAt = nil
	r.items[id] = s
	return nil
}

func (r *fakeCatalogRepo) Purge(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeCatalogRepo) PurgeTrashedBefore(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.items {
		if s.DeletedAt != nil && s.DeletedAt.Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

type fakeStaffRepo struct {
	mu    sync.Mutex
	items map[string]models.User
	order []string
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{items: make(map[string]models.User)}
}

func (r *fakeStaffRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *fakeStaffRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[user.ID] = *user
	return nil
}

func (r *fakeStaffRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	clone := u
	return &clone, nil
}

func (r *fakeStaffRepo) GetTrashedByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok || u.DeletedAt == nil {
		return nil, nil
	}
	clone := u
	return &clone, nil
}

func (r *fakeStaffRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email && u.DeletedAt == nil {
			clone := u
			return &clone, nil
		}
	}
	return nil, nil
}

// ListActiveStaff preserves insertion order, matching the Mongo
// repository's created_at sort.
func (r *fakeStaffRepo) ListActiveStaff() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var staff []models.User
	for _, id := range r.order {
		u := r.items[id]
		if u.Role == models.RoleStaff && u.DeletedAt == nil {
			staff = append(staff, u)
		}
	}
	return staff, nil
}

func (r *fakeStaffRepo) List(pr models.PageRequest) (*models.Paged[models.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pr = pr.Normalize()
	var matched []models.User
	for _, u := range r.items {
		if u.DeletedAt == nil {
			matched = append(matched, u)
		}
	}
	return models.NewPaged(matched, int64(len(matched)), pr), nil
}

func (r *fakeStaffRepo) ListByRole(role string, pr models.PageRequest) (*models.Paged[models.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pr = pr.Normalize()
	var matched []models.User
	for _, u := range r.items {
		if u.Role == role && u.DeletedAt == nil {
			matched = append(matched, u)
		}
	}
	return models.NewPaged(matched, int64(len(matched)), pr), nil
}

func (r *fakeStaffRepo) ListTrashed(pr models.PageRequest) (*models.Paged[models.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pr = pr.Normalize()
	var matched []models.User
	for _, u := range r.items {
		if u.DeletedAt != nil {
			matched = append(matched, u)
		}
	}
	return models.NewPaged(matched, int64(len(matched)), pr), nil
}

func (r *fakeStaffRepo) Trash(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.items[id]
	now := time.Now()
	u.DeletedAt = &now
	r.items[id] = u
	return nil
}

func (r *fakeStaffRepo) Restore(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.items[id]
	u.DeletedAt = nil
	r.items[id] = u
	return nil
}

func (r *fakeStaffRepo) Purge(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeStaffRepo) PurgeTrashedBefore(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, u := range r.items {
		if u.DeletedAt != nil && u.DeletedAt.Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}
