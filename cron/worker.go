package cron

import (
	"context"
	"encoding/json"
	"time"

	"glowdesk/config"
	availabilityRepo "glowdesk/database/repository/availability"
	bookingRepo "glowdesk/database/repository/booking"
	catalogRepo "glowdesk/database/repository/catalog"
	staffRepo "glowdesk/database/repository/staff"
	"glowdesk/models"
	"glowdesk/services/tasks"
	"glowdesk/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Run intervals for the recurring housekeeping tasks.
const (
	completePastInterval = 1 * time.Hour
	purgeTrashInterval   = 24 * time.Hour
)

// HousekeepingDeps are the repositories the housekeeping tasks sweep.
type HousekeepingDeps struct {
	Bookings     bookingRepo.BookingRepository
	Availability availabilityRepo.AvailabilityRepository
	Catalog      catalogRepo.ServiceRepository
	Staff        staffRepo.UserRepository
}

// InitHousekeepingWorker runs the async housekeeping worker in background.
// Each task re-enqueues itself after a run, so the schedule survives
// restarts without an external scheduler.
func InitHousekeepingWorker(deps HousekeepingDeps) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	client := asynq.NewClient(redisOpts)

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"housekeeping": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCompletePastBookings, handleCompletePastBookings(deps.Bookings, client))
	mux.HandleFunc(tasks.TypePurgeExpiredTrash, handlePurgeExpiredTrash(deps, client))

	seedHousekeepingTasks(client, logger)

	go func() {
		logger.Info("Starting housekeeping worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Housekeeping worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Housekeeping worker exhausted retries")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// seedHousekeepingTasks enqueues the first run of each recurring task. The
// tasks are idempotent sweeps, so a duplicate seed after a restart is
// harmless.
func seedHousekeepingTasks(client *asynq.Client, logger *zap.Logger) {
	if task, opts, err := tasks.NewCompletePastBookingsTask(completePastInterval); err == nil {
		if _, err := client.Enqueue(task, opts...); err != nil {
			logger.Warn("Failed to seed complete-past-bookings task", zap.Error(err))
		}
	}
	if task, opts, err := tasks.NewPurgeExpiredTrashTask(purgeTrashInterval); err == nil {
		if _, err := client.Enqueue(task, opts...); err != nil {
			logger.Warn("Failed to seed purge-expired-trash task", zap.Error(err))
		}
	}
}

func reschedule(client *asynq.Client, task *asynq.Task, opts []asynq.Option, err error) {
	if err != nil {
		return
	}
	if _, err := client.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Warn("Failed to reschedule housekeeping task",
			zap.String("type", task.Type()), zap.Error(err))
	}
}

// handleCompletePastBookings rolls booked records whose date has passed over
// to completed, freeing nothing but reflecting reality in the ledger.
func handleCompletePastBookings(repo bookingRepo.BookingRepository, client *asynq.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.HousekeepingPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid housekeeping payload", zap.Error(err))
			return err
		}

		today := time.Now().Format(models.DateLayout)
		n, err := repo.CompletePastBookings(today)
		if err != nil {
			logger.Error("Failed to complete past bookings", zap.Error(err))
			return err
		}
		if n > 0 {
			logger.Info("Completed past bookings", zap.Int64("count", n))
		}

		next, opts, buildErr := tasks.NewCompletePastBookingsTask(p.Interval)
		reschedule(client, next, opts, buildErr)
		return nil
	}
}

// handlePurgeExpiredTrash permanently removes soft-deleted records older
// than the configured retention window, across all four collections.
func handlePurgeExpiredTrash(deps HousekeepingDeps, client *asynq.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.HousekeepingPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid housekeeping payload", zap.Error(err))
			return err
		}

		cutoff := time.Now().AddDate(0, 0, -config.AppConfig.TrashRetentionDays)

		sweeps := []struct {
			name  string
			purge func(time.Time) (int64, error)
		}{
			{"bookings", deps.Bookings.PurgeTrashedBefore},
			{"availability", deps.Availability.PurgeTrashedBefore},
			{"services", deps.Catalog.PurgeTrashedBefore},
			{"users", deps.Staff.PurgeTrashedBefore},
		}
		for _, sw := range sweeps {
			n, err := sw.purge(cutoff)
			if err != nil {
				logger.Error("Failed to purge expired trash",
					zap.String("collection", sw.name), zap.Error(err))
				return err
			}
			if n > 0 {
				logger.Info("Purged expired trash",
					zap.String("collection", sw.name), zap.Int64("count", n))
			}
		}

		next, opts, buildErr := tasks.NewPurgeExpiredTrashTask(p.Interval)
		reschedule(client, next, opts, buildErr)
		return nil
	}
}
