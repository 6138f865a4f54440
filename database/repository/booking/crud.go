package bookingRepo

import (
	"fmt"
	"time"

	"glowdesk/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Update overwrites an existing booking document.
func (r *MongoBookingRepo) Update(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	filter := bson.M{"id": booking.ID}
	update := bson.M{"$set": booking}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", booking.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", booking.ID)
	}
	return nil
}

// Trash soft-deletes a booking document.
func (r *MongoBookingRepo) Trash(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}}
	result, err := r.coll.UpdateOne(ctx, liveFilter(bson.M{"id": id}), update)
	if err != nil {
		return fmt.Errorf("failed to trash booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// Restore clears the soft-delete marker on a trashed booking.
func (r *MongoBookingRepo) Restore(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}}
	update := bson.M{"$set": bson.M{"deleted_at": nil, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to restore booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found in trash", id)
	}
	return nil
}

// Purge permanently removes a trashed booking.
func (r *MongoBookingRepo) Purge(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to purge booking with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("booking with id %s not found in trash", id)
	}
	return nil
}

// CompletePastBookings flips still-booked records dated before the given day
// to completed. Returns the number of bookings updated.
func (r *MongoBookingRepo) CompletePastBookings(before string) (int64, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	filter := activeFilter(bson.M{"date": bson.M{"$lt": before}})
	update := bson.M{"$set": bson.M{
		"status":     models.BookingStatusCompleted,
		"updated_at": time.Now(),
	}}
	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete past bookings: %w", err)
	}
	return result.ModifiedCount, nil
}

// PurgeTrashedBefore permanently removes bookings trashed before cutoff.
func (r *MongoBookingRepo) PurgeTrashedBefore(cutoff time.Time) (int64, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	filter := bson.M{"deleted_at": bson.M{"$ne": nil, "$lt": cutoff}}
	result, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired booking trash: %w", err)
	}
	return result.DeletedCount, nil
}
