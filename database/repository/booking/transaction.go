package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrOverlapDetected is returned when the in-transaction re-check finds a
// competing active booking. The engine maps it to a slot conflict.
var ErrOverlapDetected = errors.New("overlapping booking detected during commit")

// Commit inserts the booking and marks the covering calendar slot booked as
// one transaction. The overlap scan is repeated inside the transaction so a
// competing commit that slipped in between the engine's check and this call
// aborts instead of double-allocating the interval.
func (r *MongoBookingRepo) Commit(ctx context.Context, booking *models.Booking, slot models.Interval) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		conflict, err := r.findOneCtx(sc, overlapFilter(booking.StaffID, booking.Date, booking.Span(), booking.ID))
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if conflict != nil {
			return ErrOverlapDetected
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{
			"staff_id":   booking.StaffID,
			"date":       booking.Date,
			"deleted_at": nil,
			"time_slots": bson.M{
				"$elemMatch": bson.M{"start": slot.Start, "end": slot.End},
			},
		}
		update := bson.M{"$set": bson.M{
			"time_slots.$.is_booked": true,
			"updated_at":             now,
		}}

		if _, err := r.availabilityColl.UpdateOne(sc, filter, update); err != nil {
			return fmt.Errorf("mark slot booked failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrOverlapDetected {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
