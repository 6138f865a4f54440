package booking

import (
	"context"
	"time"

	availabilityRepo "glowdesk/database/repository/availability"
	bookingRepo "glowdesk/database/repository/booking"
	catalogRepo "glowdesk/database/repository/catalog"
	staffRepo "glowdesk/database/repository/staff"
	"glowdesk/utils"

	"github.com/go-redis/redis/v8"
)

// DefaultBookingEngine implements BookingService over the Mongo repositories.
type DefaultBookingEngine struct {
	Repo             bookingRepo.BookingRepository
	AvailabilityRepo availabilityRepo.AvailabilityRepository
	CatalogRepo      catalogRepo.ServiceRepository
	StaffRepo        staffRepo.UserRepository
	Cache            *redis.Client

	locks *staffDayLocks
}

// NewDefaultBookingEngine wires up a booking engine.
func NewDefaultBookingEngine(
	repo bookingRepo.BookingRepository,
	availRepo availabilityRepo.AvailabilityRepository,
	catRepo catalogRepo.ServiceRepository,
	usrRepo staffRepo.UserRepository,
	cache *redis.Client,
) *DefaultBookingEngine {
	return &DefaultBookingEngine{
		Repo:             repo,
		AvailabilityRepo: availRepo,
		CatalogRepo:      catRepo,
		StaffRepo:        usrRepo,
		Cache:            cache,
		locks:            newStaffDayLocks(),
	}
}

// invalidateDayCache drops the cached availability record for a staff day.
// Best effort; the repository stays authoritative.
func (se *DefaultBookingEngine) invalidateDayCache(staffID, date string) {
	if se.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	se.Cache.Del(ctx, utils.AvailabilityCachePrefix+staffID+":"+date)
}
