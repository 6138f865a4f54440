package models

import "time"

// Booking statuses.
const (
	BookingStatusBooked    = "booked"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// ValidBookingStatus reports whether s is one of the known statuses.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusBooked, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Customer is the contact info embedded in a booking.
type Customer struct {
	Name   string `bson:"name" json:"name"`
	Mobile string `bson:"mobile" json:"mobile"`
	Email  string `bson:"email,omitempty" json:"email,omitempty"`
}

// Booking is one committed allocation of a staff member's time. Bookings with
// Status == booked and no DeletedAt marker are "active": for any (staff, date)
// the active set is kept pairwise non-overlapping by the booking engine.
type Booking struct {
	ID        string     `bson:"id" json:"id"`
	Reference string     `bson:"reference" json:"reference"` // human-readable, e.g. "BK-9F2C41A7"
	Customer  Customer   `bson:"customer" json:"customer"`
	StaffID   string     `bson:"staff_id" json:"staffId"`
	ServiceID string     `bson:"service_id" json:"serviceId"`
	Date      string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartTime int        `bson:"start_time" json:"startTime"`
	EndTime   int        `bson:"end_time" json:"endTime"`
	Status    string     `bson:"status" json:"status"`
	Price     float64    `bson:"price" json:"price"`
	Notes     string     `bson:"notes,omitempty" json:"notes,omitempty"`
	DeletedAt *time.Time `bson:"deleted_at" json:"deletedAt,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Span returns the booking's occupied interval.
func (b Booking) Span() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// Active reports whether the booking counts against capacity.
func (b Booking) Active() bool {
	return b.Status == BookingStatusBooked && b.DeletedAt == nil
}

// CreateBookingRequest is the payload for creating a booking. StartTime is
// "HH:mm"; the end time is derived from the service duration.
type CreateBookingRequest struct {
	Customer  Customer `json:"customer" binding:"required"`
	StaffID   string   `json:"staffId" binding:"required"`
	ServiceID string   `json:"serviceId" binding:"required"`
	Date      string   `json:"date" binding:"required"`
	StartTime string   `json:"startTime" binding:"required"`
	Price     float64  `json:"price"`
	Notes     string   `json:"notes"`
}

// UpdateBookingRequest carries the mutable booking fields. Nil fields are left
// untouched. Changing date, start time, service or staff re-runs admission
// against the new interval before anything is applied.
type UpdateBookingRequest struct {
	Customer  *Customer `json:"customer"`
	StaffID   *string   `json:"staffId"`
	ServiceID *string   `json:"serviceId"`
	Date      *string   `json:"date"`
	StartTime *string   `json:"startTime"`
	Status    *string   `json:"status"`
	Price     *float64  `json:"price"`
	Notes     *string   `json:"notes"`
}

// BookingView is the boundary rendering of a booking.
type BookingView struct {
	ID        string     `json:"id"`
	Reference string     `json:"reference"`
	Customer  Customer   `json:"customer"`
	StaffID   string     `json:"staffId"`
	ServiceID string     `json:"serviceId"`
	Date      string     `json:"date"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Status    string     `json:"status"`
	Price     float64    `json:"price"`
	Notes     string     `json:"notes,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// View converts the stored minute values back to wall-clock strings.
func (b Booking) View() BookingView {
	return BookingView{
		ID:        b.ID,
		Reference: b.Reference,
		Customer:  b.Customer,
		StaffID:   b.StaffID,
		ServiceID: b.ServiceID,
		Date:      b.Date,
		StartTime: FormatClock(b.StartTime),
		EndTime:   FormatClock(b.EndTime),
		Status:    b.Status,
		Price:     b.Price,
		Notes:     b.Notes,
		DeletedAt: b.DeletedAt,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
