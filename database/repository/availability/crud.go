package availabilityRepo

import (
	"fmt"
	"time"

	"glowdesk/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new availability document. The partial unique index on
// (staff_id, date) rejects a second live record for the same key.
func (r *MongoAvailabilityRepo) Create(day *models.AvailabilityDay) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	day.CreatedAt = now
	day.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to create availability: %w", err)
	}
	return nil
}

// Replace overwrites an existing availability document.
func (r *MongoAvailabilityRepo) Replace(day *models.AvailabilityDay) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	day.UpdatedAt = time.Now()
	filter := bson.M{"id": day.ID}
	update := bson.M{"$set": day}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update availability with id %s: %w", day.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("availability with id %s not found", day.ID)
	}
	return nil
}

// Trash soft-deletes an availability document.
func (r *MongoAvailabilityRepo) Trash(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}}
	result, err := r.coll.UpdateOne(ctx, liveFilter(bson.M{"id": id}), update)
	if err != nil {
		return fmt.Errorf("failed to trash availability with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("availability with id %s not found", id)
	}
	return nil
}

// Restore clears the soft-delete marker on a trashed document.
func (r *MongoAvailabilityRepo) Restore(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}}
	update := bson.M{"$set": bson.M{"deleted_at": nil, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to restore availability with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("availability with id %s not found in trash", id)
	}
	return nil
}

// Purge permanently removes a trashed document.
func (r *MongoAvailabilityRepo) Purge(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to purge availability with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("availability with id %s not found in trash", id)
	}
	return nil
}

// PurgeTrashedBefore permanently removes documents trashed before cutoff.
func (r *MongoAvailabilityRepo) PurgeTrashedBefore(cutoff time.Time) (int64, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	filter := bson.M{"deleted_at": bson.M{"$ne": nil, "$lt": cutoff}}
	result, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired availability trash: %w", err)
	}
	return result.DeletedCount, nil
}

// SetSlotBooked flips the advisory is_booked flag on the slot matching span.
// The booking ledger stays authoritative; a stale flag here is tolerated.
func (r *MongoAvailabilityRepo) SetSlotBooked(staffID, date string, span models.Interval, booked bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := liveFilter(bson.M{
		"staff_id": staffID,
		"date":     date,
		"time_slots": bson.M{
			"$elemMatch": bson.M{"start": span.Start, "end": span.End},
		},
	})
	update := bson.M{"$set": bson.M{
		"time_slots.$.is_booked": booked,
		"updated_at":             time.Now(),
	}}

	_, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update slot booked flag: %w", err)
	}
	return nil
}
