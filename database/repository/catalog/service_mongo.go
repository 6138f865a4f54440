package catalogRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"glowdesk/database"
	"glowdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new instance of ServiceRepository using MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	coll := database.DB().Collection("services")
	repo := &MongoServiceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "deleted_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func liveFilter(filter bson.M) bson.M {
	filter["deleted_at"] = nil
	return filter
}

func (r *MongoServiceRepo) findOne(filter bson.M) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var svc models.Service
	if err := r.coll.FindOne(ctx, filter).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	return &svc, nil
}

// GetByID retrieves a live service by its unique ID.
func (r *MongoServiceRepo) GetByID(id string) (*models.Service, error) {
	return r.findOne(liveFilter(bson.M{"id": id}))
}

// GetTrashedByID retrieves a trashed service by its unique ID.
func (r *MongoServiceRepo) GetTrashedByID(id string) (*models.Service, error) {
	return r.findOne(bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}})
}

// GetByName retrieves a live service by exact name.
func (r *MongoServiceRepo) GetByName(name string) (*models.Service, error) {
	return r.findOne(liveFilter(bson.M{"name": strings.TrimSpace(name)}))
}

// Create inserts a new service document.
func (r *MongoServiceRepo) Create(svc *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, svc)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// Update overwrites an existing service document.
func (r *MongoServiceRepo) Update(svc *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	svc.UpdatedAt = time.Now()
	filter := bson.M{"id": svc.ID}
	update := bson.M{"$set": svc}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", svc.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service with id %s not found", svc.ID)
	}
	return nil
}

// Trash soft-deletes a service document.
func (r *MongoServiceRepo) Trash(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}}
	result, err := r.coll.UpdateOne(ctx, liveFilter(bson.M{"id": id}), update)
	if err != nil {
		return fmt.Errorf("failed to trash service with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service with id %s not found", id)
	}
	return nil
}

// Restore clears the soft-delete marker on a trashed service.
func (r *MongoServiceRepo) Restore(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}}
	update := bson.M{"$set": bson.M{"deleted_at": nil, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to restore service with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service with id %s not found in trash", id)
	}
	return nil
}

// Purge permanently removes a trashed service.
func (r *MongoServiceRepo) Purge(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to purge service with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("service with id %s not found in trash", id)
	}
	return nil
}

// PurgeTrashedBefore permanently removes services trashed before cutoff.
func (r *MongoServiceRepo) PurgeTrashedBefore(cutoff time.Time) (int64, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	filter := bson.M{"deleted_at": bson.M{"$ne": nil, "$lt": cutoff}}
	result, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired service trash: %w", err)
	}
	return result.DeletedCount, nil
}

func sortSpec(sort string) bson.D {
	field := sort
	dir := 1
	if strings.HasPrefix(sort, "-") {
		field = strings.TrimPrefix(sort, "-")
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}}
}

func (r *MongoServiceRepo) listPage(filter bson.M, pr models.PageRequest) (*models.Paged[models.Service], error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pr = pr.Normalize()
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count services: %w", err)
	}

	opts := options.Find().
		SetSort(sortSpec(pr.Sort)).
		SetSkip(pr.Skip()).
		SetLimit(int64(pr.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	services := make([]models.Service, 0, pr.Limit)
	for cursor.Next(ctx) {
		var svc models.Service
		if err := cursor.Decode(&svc); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, svc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return models.NewPaged(services, total, pr), nil
}

// List returns a page of live services.
func (r *MongoServiceRepo) List(pr models.PageRequest) (*models.Paged[models.Service], error) {
	return r.listPage(liveFilter(bson.M{}), pr)
}

// ListTrashed returns a page of soft-deleted services.
func (r *MongoServiceRepo) ListTrashed(pr models.PageRequest) (*models.Paged[models.Service], error) {
	return r.listPage(bson.M{"deleted_at": bson.M{"$ne": nil}}, pr)
}
