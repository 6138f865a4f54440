package availabilityRepo

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

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new instance of AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	coll := database.DB().Collection("availability")
	repo := &MongoAvailabilityRepo{coll: coll}

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
// partial unique index keeps at most one live record per (staff, date) while
// still letting trashed duplicates sit in the collection.
func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "staff_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"deleted_at": bson.M{"$type": "null"}},
			),
		},
		{Keys: bson.D{{Key: "deleted_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// liveFilter scopes a filter to non-trashed documents.
func liveFilter(filter bson.M) bson.M {
	filter["deleted_at"] = nil
	return filter
}

func (r *MongoAvailabilityRepo) findOne(filter bson.M) (*models.AvailabilityDay, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var day models.AvailabilityDay
	if err := r.coll.FindOne(ctx, filter).Decode(&day); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	return &day, nil
}

// GetByID retrieves a live availability record by its unique ID.
func (r *MongoAvailabilityRepo) GetByID(id string) (*models.AvailabilityDay, error) {
	return r.findOne(liveFilter(bson.M{"id": id}))
}

// GetTrashedByID retrieves a trashed availability record by its unique ID.
func (r *MongoAvailabilityRepo) GetTrashedByID(id string) (*models.AvailabilityDay, error) {
	return r.findOne(bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}})
}

// GetByStaffAndDate retrieves the live record for one staff member and date.
func (r *MongoAvailabilityRepo) GetByStaffAndDate(staffID, date string) (*models.AvailabilityDay, error) {
	return r.findOne(liveFilter(bson.M{"staff_id": staffID, "date": date}))
}
