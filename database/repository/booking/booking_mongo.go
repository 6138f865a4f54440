package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"glowdesk/database"
	"glowdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB. It also holds
// the availability collection so the commit transaction can flip the advisory
// slot flag alongside the ledger insert.
type MongoBookingRepo struct {
	coll             *mongo.Collection
	availabilityColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	repo := &MongoBookingRepo{
		coll:             db.Collection("bookings"),
		availabilityColl: db.Collection("availability"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// partial unique index on (staff_id, date, start_time) is a backstop against
// two live booked records landing on the same start instant.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "staff_id", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "customer.mobile", Value: 1}}},
		{
			Keys: bson.D{{Key: "staff_id", Value: 1}, {Key: "date", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{
					"status":     models.BookingStatusBooked,
					"deleted_at": bson.M{"$type": "null"},
				},
			),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// activeFilter scopes a filter to bookings that count against capacity.
func activeFilter(filter bson.M) bson.M {
	filter["status"] = models.BookingStatusBooked
	filter["deleted_at"] = nil
	return filter
}

// liveFilter scopes a filter to non-trashed documents.
func liveFilter(filter bson.M) bson.M {
	filter["deleted_at"] = nil
	return filter
}

func (r *MongoBookingRepo) findOneCtx(ctx context.Context, filter bson.M) (*models.Booking, error) {
	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) findOne(filter bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.findOneCtx(ctx, filter)
}

// GetByID retrieves a live booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	return r.findOne(liveFilter(bson.M{"id": id}))
}

// GetTrashedByID retrieves a trashed booking by its unique ID.
func (r *MongoBookingRepo) GetTrashedByID(id string) (*models.Booking, error) {
	return r.findOne(bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}})
}

// overlapFilter matches active bookings on (staffID, date) whose half-open
// interval overlaps span: start_time < span.End AND end_time > span.Start.
func overlapFilter(staffID, date string, span models.Interval, excludeID string) bson.M {
	filter := activeFilter(bson.M{
		"staff_id":   staffID,
		"date":       date,
		"start_time": bson.M{"$lt": span.End},
		"end_time":   bson.M{"$gt": span.Start},
	})
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// FindOverlapping returns one active booking overlapping span, or (nil, nil).
func (r *MongoBookingRepo) FindOverlapping(staffID, date string, span models.Interval, excludeID string) (*models.Booking, error) {
	return r.findOne(overlapFilter(staffID, date, span, excludeID))
}
