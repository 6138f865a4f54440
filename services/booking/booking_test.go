package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"glowdesk/models"
)

const (
	testStaffID   = "staff-1"
	testServiceID = "svc-cut"
	testDate      = "2026-09-14"
)

// newTestEngine builds an engine over in-memory repositories, seeded with one
// staff member, a 30-minute service, and a working day of 09:00-12:00.
func newTestEngine(t *testing.T) (*DefaultBookingEngine, *fakeBookingRepo, *fakeAvailabilityRepo) {
	t.Helper()

	bkRepo := newFakeBookingRepo()
	availRepo := newFakeAvailabilityRepo()
	catRepo := newFakeCatalogRepo()
	usrRepo := newFakeStaffRepo()

	if err := usrRepo.Create(&models.User{
		ID: testStaffID, FirstName: "Amara", LastName: "Okafor", Role: models.RoleStaff,
	}); err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	if err := catRepo.Create(&models.Service{
		ID: testServiceID, Name: "Classic Haircut", Duration: 30, Price: 25, IsActive: true,
	}); err != nil {
		t.Fatalf("seed service: %v", err)
	}
	if err := availRepo.Create(&models.AvailabilityDay{
		ID:      "day-1",
		StaffID: testStaffID,
		Date:    testDate,
		TimeSlots: []models.TimeSlot{
			{Start: 9 * 60, End: 12 * 60},
		},
	}); err != nil {
		t.Fatalf("seed availability: %v", err)
	}

	return NewDefaultBookingEngine(bkRepo, availRepo, catRepo, usrRepo, nil), bkRepo, availRepo
}

func createReq(startTime string) models.CreateBookingRequest {
	return models.CreateBookingRequest{
		Customer:  models.Customer{Name: "Jo Bloggs", Mobile: "0700000001"},
		StaffID:   testStaffID,
		ServiceID: testServiceID,
		Date:      testDate,
		StartTime: startTime,
		Price:     25,
	}
}

func TestCreateBooking(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	b, err := engine.Create(context.Background(), createReq("09:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.StartTime != 540 || b.EndTime != 570 {
		t.Fatalf("booking interval = [%d, %d), want [540, 570)", b.StartTime, b.EndTime)
	}
	if b.Status != models.BookingStatusBooked {
		t.Fatalf("status = %q, want %q", b.Status, models.BookingStatusBooked)
	}
	if !strings.HasPrefix(b.Reference, "BK-") || len(b.Reference) != 11 {
		t.Fatalf("reference = %q, want BK- plus 8 characters", b.Reference)
	}

	got, err := engine.GetByID(b.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Reference != b.Reference {
		t.Fatalf("stored reference = %q, want %q", got.Reference, b.Reference)
	}
}

func TestCreateBookingOverlapRejected(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Create(ctx, createReq("09:00")); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	// 09:15 lands inside the committed [09:00, 09:30) booking.
	_, err := engine.Create(ctx, createReq("09:15"))
	var conflict SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlotConflictError, got %v", err)
	}
}

func TestCreateBookingAdjacentAllowed(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Create(ctx, createReq("09:00")); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	// [09:30, 10:00) touches [09:00, 09:30) without overlapping it.
	b, err := engine.Create(ctx, createReq("09:30"))
	if err != nil {
		t.Fatalf("adjacent Create returned error: %v", err)
	}
	if b.StartTime != 570 || b.EndTime != 600 {
		t.Fatalf("booking interval = [%d, %d), want [570, 600)", b.StartTime, b.EndTime)
	}
}

func TestCreateBookingNoAvailability(t *testing.T) {
	engine, _, availRepo := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		startTime string
	}{
		{"before working hours", "08:00"},
		{"after working hours", "12:00"},
		{"spills past slot end", "11:45"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Create(ctx, createReq(tt.startTime))
			var noAvail NoAvailabilityError
			if !errors.As(err, &noAvail) {
				t.Fatalf("expected NoAvailabilityError, got %v", err)
			}
		})
	}

	t.Run("day off", func(t *testing.T) {
		day, err := availRepo.GetByStaffAndDate(testStaffID, testDate)
		if err != nil {
			t.Fatalf("fetch day: %v", err)
		}
		day.IsDayOff = true
		day.TimeSlots = nil
		if err := availRepo.Replace(day); err != nil {
			t.Fatalf("replace day: %v", err)
		}

		_, err = engine.Create(ctx, createReq("09:00"))
		var noAvail NoAvailabilityError
		if !errors.As(err, &noAvail) {
			t.Fatalf("expected NoAvailabilityError, got %v", err)
		}
	})

	t.Run("no calendar record", func(t *testing.T) {
		req := createReq("09:00")
		req.Date = "2026-09-15"
		_, err := engine.Create(ctx, req)
		var noAvail NoAvailabilityError
		if !errors.As(err, &noAvail) {
			t.Fatalf("expected NoAvailabilityError, got %v", err)
		}
	})
}

func TestCreateBookingValidation(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	mutate := func(f func(*models.CreateBookingRequest)) models.CreateBookingRequest {
		req := createReq("09:00")
		f(&req)
		return req
	}

	tests := []struct {
		name string
		req  models.CreateBookingRequest
	}{
		{"missing customer name", mutate(func(r *models.CreateBookingRequest) { r.Customer.Name = "" })},
		{"missing customer mobile", mutate(func(r *models.CreateBookingRequest) { r.Customer.Mobile = "" })},
		{"missing staff", mutate(func(r *models.CreateBookingRequest) { r.StaffID = "" })},
		{"missing service", mutate(func(r *models.CreateBookingRequest) { r.ServiceID = "" })},
		{"malformed date", mutate(func(r *models.CreateBookingRequest) { r.Date = "14-09-2026" })},
		{"malformed time", mutate(func(r *models.CreateBookingRequest) { r.StartTime = "9am" })},
		{"zero price", mutate(func(r *models.CreateBookingRequest) { r.Price = 0 })},
		{"crosses midnight", mutate(func(r *models.CreateBookingRequest) { r.StartTime = "23:45" })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Create(ctx, tt.req)
			var validation ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	t.Run("unknown service", func(t *testing.T) {
		req := createReq("09:00")
		req.ServiceID = "svc-missing"
		_, err := engine.Create(ctx, req)
		var notFound ServiceNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected ServiceNotFoundError, got %v", err)
		}
	})

	t.Run("unknown staff", func(t *testing.T) {
		req := createReq("09:00")
		req.StaffID = "staff-missing"
		_, err := engine.Create(ctx, req)
		var notFound StaffNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected StaffNotFoundError, got %v", err)
		}
	})
}

func TestTrashFreesInterval(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Create(ctx, createReq("09:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := engine.Trash(first.ID); err != nil {
		t.Fatalf("Trash returned error: %v", err)
	}

	// The interval is free again the moment the booking leaves the live set.
	if _, err := engine.Create(ctx, createReq("09:00")); err != nil {
		t.Fatalf("Create after trash returned error: %v", err)
	}
}

func TestCancelViaStatusFreesInterval(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Create(ctx, createReq("09:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	cancelled := models.BookingStatusCancelled
	if _, err := engine.Update(ctx, first.ID, models.UpdateBookingRequest{Status: &cancelled}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if _, err := engine.Create(ctx, createReq("09:00")); err != nil {
		t.Fatalf("Create after cancellation returned error: %v", err)
	}
}

func TestUpdateReschedule(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Create(ctx, createReq("09:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := engine.Create(ctx, createReq("10:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	t.Run("onto occupied interval", func(t *testing.T) {
		target := "10:15"
		_, err := engine.Update(ctx, first.ID, models.UpdateBookingRequest{StartTime: &target})
		var conflict SlotConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected SlotConflictError, got %v", err)
		}
	})

	t.Run("own interval does not conflict", func(t *testing.T) {
		// Re-submitting the current start must not collide with itself.
		target := "10:00"
		got, err := engine.Update(ctx, second.ID, models.UpdateBookingRequest{StartTime: &target})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if got.StartTime != 600 || got.EndTime != 630 {
			t.Fatalf("interval = [%d, %d), want [600, 630)", got.StartTime, got.EndTime)
		}
	})

	t.Run("to free interval", func(t *testing.T) {
		target := "11:00"
		got, err := engine.Update(ctx, first.ID, models.UpdateBookingRequest{StartTime: &target})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if got.StartTime != 660 || got.EndTime != 690 {
			t.Fatalf("interval = [%d, %d), want [660, 690)", got.StartTime, got.EndTime)
		}
		// The old interval is free again.
		if _, err := engine.Create(ctx, createReq("09:00")); err != nil {
			t.Fatalf("Create on vacated interval returned error: %v", err)
		}
	})
}

func TestRestoreBookedRecheck(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Create(ctx, createReq("09:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := engine.Trash(first.ID); err != nil {
		t.Fatalf("Trash returned error: %v", err)
	}

	// A competitor takes the freed interval before the restore attempt.
	if _, err := engine.Create(ctx, createReq("09:00")); err != nil {
		t.Fatalf("competing Create returned error: %v", err)
	}

	_, err = engine.Restore(first.ID)
	var conflict SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlotConflictError on restore, got %v", err)
	}
}

func TestUpdateStatusReactivationRecheck(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Create(ctx, createReq("09:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	cancelled := models.BookingStatusCancelled
	if _, err := engine.Update(ctx, first.ID, models.UpdateBookingRequest{Status: &cancelled}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	// A competitor takes the freed interval before the reactivation attempt.
	if _, err := engine.Create(ctx, createReq("09:00")); err != nil {
		t.Fatalf("competing Create returned error: %v", err)
	}

	booked := models.BookingStatusBooked
	_, err = engine.Update(ctx, first.ID, models.UpdateBookingRequest{Status: &booked})
	var conflict SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlotConflictError on reactivation, got %v", err)
	}
}

func TestUpdateStatusReactivationFreeInterval(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Create(ctx, createReq("09:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	cancelled := models.BookingStatusCancelled
	if _, err := engine.Update(ctx, first.ID, models.UpdateBookingRequest{Status: &cancelled}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	booked := models.BookingStatusBooked
	reactivated, err := engine.Update(ctx, first.ID, models.UpdateBookingRequest{Status: &booked})
	if err != nil {
		t.Fatalf("reactivating Update returned error: %v", err)
	}
	if reactivated.Status != models.BookingStatusBooked {
		t.Fatalf("status = %q, want %q", reactivated.Status, models.BookingStatusBooked)
	}

	// The interval is occupied again.
	_, err = engine.Create(ctx, createReq("09:00"))
	var conflict SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlotConflictError after reactivation, got %v", err)
	}
}

func TestCheckAvailabilityReadOnly(t *testing.T) {
	engine, bkRepo, _ := newTestEngine(t)

	span := models.Interval{Start: 540, End: 570}
	if err := engine.CheckAvailability(testStaffID, testDate, span, ""); err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}

	// The check must reserve nothing.
	bkRepo.mu.Lock()
	stored := len(bkRepo.items)
	bkRepo.mu.Unlock()
	if stored != 0 {
		t.Fatalf("CheckAvailability stored %d bookings, want 0", stored)
	}
	if err := engine.CheckAvailability(testStaffID, testDate, span, ""); err != nil {
		t.Fatalf("repeated CheckAvailability returned error: %v", err)
	}
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	engine, bkRepo, _ := newTestEngine(t)

	const competitors = 20
	var wg sync.WaitGroup
	errs := make([]error, competitors)

	start := make(chan struct{})
	for i := 0; i < competitors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = engine.Create(context.Background(), createReq("09:00"))
		}(i)
	}
	close(start)
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			var conflict SlotConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("unexpected error from competing Create: %v", err)
			}
			conflicts++
		}
	}
	if wins != 1 {
		t.Fatalf("winners = %d, want exactly 1 (conflicts = %d)", wins, conflicts)
	}

	bkRepo.mu.Lock()
	var active int
	for _, b := range bkRepo.items {
		if b.Active() {
			active++
		}
	}
	bkRepo.mu.Unlock()
	if active != 1 {
		t.Fatalf("active bookings in ledger = %d, want 1", active)
	}
}

func TestHousekeepingSweeps(t *testing.T) {
	engine, bkRepo, _ := newTestEngine(t)
	ctx := context.Background()

	b, err := engine.Create(ctx, createReq("09:00"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	n, err := bkRepo.CompletePastBookings("2026-09-15")
	if err != nil || n != 1 {
		t.Fatalf("CompletePastBookings = (%d, %v), want (1, nil)", n, err)
	}
	got, err := engine.GetByID(b.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Status != models.BookingStatusCompleted {
		t.Fatalf("status = %q, want %q", got.Status, models.BookingStatusCompleted)
	}

	if _, err := engine.Trash(b.ID); err != nil {
		t.Fatalf("Trash returned error: %v", err)
	}
	n, err = bkRepo.PurgeTrashedBefore(time.Now().Add(time.Minute))
	if err != nil || n != 1 {
		t.Fatalf("PurgeTrashedBefore = (%d, %v), want (1, nil)", n, err)
	}
}
