package models

import "time"

// TimeSlot is a bookable sub-interval of a staff member's working day.
// IsBooked is a denormalized convenience flag; the booking ledger remains the
// authoritative source for conflict decisions, so the flag may lag behind
// cancellations.
type TimeSlot struct {
	Start    int  `bson:"start" json:"start"`
	End      int  `bson:"end" json:"end"`
	IsBooked bool `bson:"is_booked" json:"isBooked"`
}

// Span returns the slot's interval.
func (ts TimeSlot) Span() Interval {
	return Interval{Start: ts.Start, End: ts.End}
}

// AvailabilityDay records one staff member's bookable capacity for a single
// date. At most one live (non-trashed) document exists per (staff, date).
type AvailabilityDay struct {
	ID        string     `bson:"id" json:"id"`
	StaffID   string     `bson:"staff_id" json:"staffId"`
	Date      string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	IsDayOff  bool       `bson:"is_day_off" json:"isDayOff"`
	TimeSlots []TimeSlot `bson:"time_slots" json:"timeSlots"`
	DeletedAt *time.Time `bson:"deleted_at" json:"deletedAt,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// TimeSlotInput is the boundary shape for a slot, using "HH:mm" strings.
type TimeSlotInput struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// CreateAvailabilityRequest is the payload for creating a day record.
type CreateAvailabilityRequest struct {
	StaffID   string          `json:"staffId" binding:"required"`
	Date      string          `json:"date" binding:"required"`
	IsDayOff  bool            `json:"isDayOff"`
	TimeSlots []TimeSlotInput `json:"timeSlots"`
}

// UpdateAvailabilityRequest is the payload for updating a day record. Nil
// fields are left untouched; TimeSlots is a full replacement, not a merge.
type UpdateAvailabilityRequest struct {
	IsDayOff  *bool           `json:"isDayOff"`
	TimeSlots []TimeSlotInput `json:"timeSlots"`
}

// TimeSlotView is the boundary rendering of a slot.
type TimeSlotView struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	IsBooked bool   `json:"isBooked"`
}

// AvailabilityDayView is the boundary rendering of an AvailabilityDay.
type AvailabilityDayView struct {
	ID        string         `json:"id"`
	StaffID   string         `json:"staffId"`
	Date      string         `json:"date"`
	IsDayOff  bool           `json:"isDayOff"`
	TimeSlots []TimeSlotView `json:"timeSlots"`
	DeletedAt *time.Time     `json:"deletedAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// View converts the stored minute values back to wall-clock strings.
func (d AvailabilityDay) View() AvailabilityDayView {
	slots := make([]TimeSlotView, 0, len(d.TimeSlots))
	for _, ts := range d.TimeSlots {
		slots = append(slots, TimeSlotView{
			Start:    FormatClock(ts.Start),
			End:      FormatClock(ts.End),
			IsBooked: ts.IsBooked,
		})
	}
	return AvailabilityDayView{
		ID:        d.ID,
		StaffID:   d.StaffID,
		Date:      d.Date,
		IsDayOff:  d.IsDayOff,
		TimeSlots: slots,
		DeletedAt: d.DeletedAt,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
