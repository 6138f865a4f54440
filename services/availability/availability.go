package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	availabilityRepo "glowdesk/database/repository/availability"
	catalogRepo "glowdesk/database/repository/catalog"
	staffRepo "glowdesk/database/repository/staff"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// AdmissionChecker is the read-only slice of the booking engine the query
// engine consults; it must not commit anything.
type AdmissionChecker interface {
	CheckAvailability(staffID, date string, span models.Interval, excludeID string) error
}

// DefaultAvailabilityService implements AvailabilityService over the Mongo
// repositories, with a Redis read cache for day records.
type DefaultAvailabilityService struct {
	Repo        availabilityRepo.AvailabilityRepository
	CatalogRepo catalogRepo.ServiceRepository
	StaffRepo   staffRepo.UserRepository
	Admission   AdmissionChecker
	Cache       *redis.Client
}

// parseSlots validates and converts boundary slot inputs. Slots must be
// well-formed, within one day, and pairwise non-overlapping; they come back
// sorted by start time.
func parseSlots(inputs []models.TimeSlotInput) ([]models.TimeSlot, error) {
	slots := make([]models.TimeSlot, 0, len(inputs))
	for _, in := range inputs {
		start, err := models.ParseClock(in.Start)
		if err != nil {
			return nil, ValidationError{Reason: err.Error()}
		}
		end, err := models.ParseClock(in.End)
		if err != nil {
			return nil, ValidationError{Reason: err.Error()}
		}
		slot := models.TimeSlot{Start: start, End: end}
		if !slot.Span().Valid() {
			return nil, ValidationError{Reason: fmt.Sprintf("slot %s-%s is not a valid interval", in.Start, in.End)}
		}
		slots = append(slots, slot)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })
	for i := 1; i < len(slots); i++ {
		if slots[i-1].Span().Overlaps(slots[i].Span()) {
			return nil, ValidationError{Reason: fmt.Sprintf(
				"slots %s-%s and %s-%s overlap",
				models.FormatClock(slots[i-1].Start), models.FormatClock(slots[i-1].End),
				models.FormatClock(slots[i].Start), models.FormatClock(slots[i].End),
			)}
		}
	}
	return slots, nil
}

// Create adds the calendar record for one staff day. At most one live record
// may exist per (staff, date).
func (s *DefaultAvailabilityService) Create(req models.CreateAvailabilityRequest) (*models.AvailabilityDay, error) {
	if req.StaffID == "" {
		return nil, ValidationError{Reason: "staffId is required"}
	}
	if !models.ValidDate(req.Date) {
		return nil, ValidationError{Reason: "date must be YYYY-MM-DD"}
	}
	if !req.IsDayOff && len(req.TimeSlots) == 0 {
		return nil, ValidationError{Reason: "timeSlots are required unless it is a day off"}
	}

	existing, err := s.Repo.GetByStaffAndDate(req.StaffID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if existing != nil {
		return nil, AlreadyExistsError{StaffID: req.StaffID, Date: req.Date}
	}

	var slots []models.TimeSlot
	if !req.IsDayOff {
		if slots, err = parseSlots(req.TimeSlots); err != nil {
			return nil, err
		}
	}

	day := &models.AvailabilityDay{
		ID:        uuid.New().String(),
		StaffID:   req.StaffID,
		Date:      req.Date,
		IsDayOff:  req.IsDayOff,
		TimeSlots: slots,
	}
	if day.TimeSlots == nil {
		day.TimeSlots = []models.TimeSlot{}
	}
	if err := s.Repo.Create(day); err != nil {
		return nil, fmt.Errorf("failed to create availability: %w", err)
	}
	return day, nil
}

// Update mutates a live calendar record. Setting a day off clears the slots;
// supplying slots replaces the whole sequence.
func (s *DefaultAvailabilityService) Update(id string, req models.UpdateAvailabilityRequest) (*models.AvailabilityDay, error) {
	day, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if day == nil {
		return nil, NotFoundError{ID: id}
	}

	if req.IsDayOff != nil {
		day.IsDayOff = *req.IsDayOff
		if day.IsDayOff {
			day.TimeSlots = []models.TimeSlot{}
		}
	}
	if !day.IsDayOff && req.TimeSlots != nil {
		slots, err := parseSlots(req.TimeSlots)
		if err != nil {
			return nil, err
		}
		day.TimeSlots = slots
	}

	if err := s.Repo.Replace(day); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}
	s.invalidateDayCache(day.StaffID, day.Date)
	return day, nil
}

// GetByID returns a live record.
func (s *DefaultAvailabilityService) GetByID(id string) (*models.AvailabilityDay, error) {
	day, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if day == nil {
		return nil, NotFoundError{ID: id}
	}
	return day, nil
}

// GetByStaffAndDate returns the live record for one staff day, consulting
// the Redis cache first.
func (s *DefaultAvailabilityService) GetByStaffAndDate(staffID, date string) (*models.AvailabilityDay, error) {
	if staffID == "" || !models.ValidDate(date) {
		return nil, ValidationError{Reason: "staffId and date are required"}
	}

	if cached := s.cachedDay(staffID, date); cached != nil {
		return cached, nil
	}

	day, err := s.Repo.GetByStaffAndDate(staffID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if day == nil {
		return nil, NotFoundError{ID: staffID + "/" + date}
	}
	s.cacheDay(day)
	return day, nil
}

// ListByStaff returns a page of live records for one staff member.
func (s *DefaultAvailabilityService) ListByStaff(staffID string, pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error) {
	if staffID == "" {
		return nil, ValidationError{Reason: "staffId is required"}
	}
	return s.Repo.ListByStaff(staffID, pr)
}

// ListTrashed returns a page of soft-deleted records.
func (s *DefaultAvailabilityService) ListTrashed(pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error) {
	return s.Repo.ListTrashed(pr)
}

// Trash soft-deletes a live record.
func (s *DefaultAvailabilityService) Trash(id string) (*models.AvailabilityDay, error) {
	day, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if day == nil {
		return nil, NotFoundError{ID: id}
	}
	if err := s.Repo.Trash(id); err != nil {
		return nil, fmt.Errorf("failed to trash availability: %w", err)
	}
	s.invalidateDayCache(day.StaffID, day.Date)
	return s.Repo.GetTrashedByID(id)
}

// Restore brings a trashed record back, unless a live record has since taken
// its (staff, date) key.
func (s *DefaultAvailabilityService) Restore(id string) (*models.AvailabilityDay, error) {
	day, err := s.Repo.GetTrashedByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if day == nil {
		return nil, NotFoundError{ID: id}
	}

	live, err := s.Repo.GetByStaffAndDate(day.StaffID, day.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if live != nil {
		return nil, AlreadyExistsError{StaffID: day.StaffID, Date: day.Date}
	}

	if err := s.Repo.Restore(id); err != nil {
		return nil, fmt.Errorf("failed to restore availability: %w", err)
	}
	return s.Repo.GetByID(id)
}

// Purge permanently removes a trashed record.
func (s *DefaultAvailabilityService) Purge(id string) error {
	day, err := s.Repo.GetTrashedByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch availability: %w", err)
	}
	if day == nil {
		return NotFoundError{ID: id}
	}
	return s.Repo.Purge(id)
}

// --- Redis day cache. Advisory only; the repository stays authoritative. ---

func dayCacheKey(staffID, date string) string {
	return utils.AvailabilityCachePrefix + staffID + ":" + date
}

func (s *DefaultAvailabilityService) cachedDay(staffID, date string) *models.AvailabilityDay {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.Cache.Get(ctx, dayCacheKey(staffID, date)).Bytes()
	if err != nil {
		return nil
	}
	var day models.AvailabilityDay
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil
	}
	return &day
}

func (s *DefaultAvailabilityService) cacheDay(day *models.AvailabilityDay) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(day)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Cache.Set(ctx, dayCacheKey(day.StaffID, day.Date), raw, utils.AvailabilityCacheTTL)
}

func (s *DefaultAvailabilityService) invalidateDayCache(staffID, date string) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Cache.Del(ctx, dayCacheKey(staffID, date))
}
