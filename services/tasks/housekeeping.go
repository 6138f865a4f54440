package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Housekeeping task types.
const (
	TypeCompletePastBookings = "booking:complete_past"
	TypePurgeExpiredTrash    = "trash:purge_expired"
)

// HousekeepingPayload carries the schedule interval so a handler can
// re-enqueue itself after each run.
type HousekeepingPayload struct {
	Interval time.Duration `json:"interval"`
}

// NewCompletePastBookingsTask builds the task that rolls finished bookings
// from booked to completed.
func NewCompletePastBookingsTask(interval time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(HousekeepingPayload{Interval: interval})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCompletePastBookings, b)
	opts := []asynq.Option{asynq.ProcessIn(interval), asynq.Queue("housekeeping")}
	return task, opts, nil
}

// NewPurgeExpiredTrashTask builds the task that permanently removes trashed
// records older than the retention window.
func NewPurgeExpiredTrashTask(interval time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(HousekeepingPayload{Interval: interval})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePurgeExpiredTrash, b)
	opts := []asynq.Option{asynq.ProcessIn(interval), asynq.Queue("housekeeping")}
	return task, opts, nil
}
