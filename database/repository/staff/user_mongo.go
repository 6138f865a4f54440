package staffRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.DB().Collection("users")
	repo := &MongoUserRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "role", Value: 1}}},
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

func (r *MongoUserRepo) findOne(filter bson.M) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a live user by their unique ID.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	return r.findOne(liveFilter(bson.M{"id": id}))
}

// GetTrashedByID retrieves a trashed user by their unique ID.
func (r *MongoUserRepo) GetTrashedByID(id string) (*models.User, error) {
	return r.findOne(bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}})
}

// GetByEmail retrieves a live user by email.
func (r *MongoUserRepo) GetByEmail(email string) (*models.User, error) {
	return r.findOne(liveFilter(bson.M{"email": strings.ToLower(email)}))
}

// ListActiveStaff returns all live users holding the staff role, in stable
// directory order. The availability query engine scans this list.
func (r *MongoUserRepo) ListActiveStaff() ([]models.User, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, liveFilter(bson.M{"role": models.RoleStaff}), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []models.User
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		staff = append(staff, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return staff, nil
}

// Create inserts a new user document.
func (r *MongoUserRepo) Create(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update overwrites an existing user document.
func (r *MongoUserRepo) Update(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	user.UpdatedAt = time.Now()
	filter := bson.M{"id": user.ID}
	update := bson.M{"$set": user}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", user.ID)
	}
	return nil
}

// Trash soft-deletes a user document.
func (r *MongoUserRepo) Trash(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}}
	result, err := r.coll.UpdateOne(ctx, liveFilter(bson.M{"id": id}), update)
	if err != nil {
		return fmt.Errorf("failed to trash user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}

// Restore clears the soft-delete marker on a trashed user.
func (r *MongoUserRepo) Restore(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}}
	update := bson.M{"$set": bson.M{"deleted_at": nil, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to restore user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found in trash", id)
	}
	return nil
}

// Purge permanently removes a trashed user.
func (r *MongoUserRepo) Purge(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "deleted_at": bson.M{"$ne": nil}}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to purge user with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user with id %s not found in trash", id)
	}
	return nil
}

// PurgeTrashedBefore permanently removes users trashed before cutoff.
func (r *MongoUserRepo) PurgeTrashedBefore(cutoff time.Time) (int64, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	filter := bson.M{"deleted_at": bson.M{"$ne": nil, "$lt": cutoff}}
	result, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired user trash: %w", err)
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

func (r *MongoUserRepo) listPage(filter bson.M, pr models.PageRequest) (*models.Paged[models.User], error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pr = pr.Normalize()
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	opts := options.Find().
		SetSort(sortSpec(pr.Sort)).
		SetSkip(pr.Skip()).
		SetLimit(int64(pr.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0, pr.Limit)
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return models.NewPaged(users, total, pr), nil
}

// List returns a page of live users.
func (r *MongoUserRepo) List(pr models.PageRequest) (*models.Paged[models.User], error) {
	return r.listPage(liveFilter(bson.M{}), pr)
}

// ListByRole returns a page of live users holding the given role.
func (r *MongoUserRepo) ListByRole(role string, pr models.PageRequest) (*models.Paged[models.User], error) {
	return r.listPage(liveFilter(bson.M{"role": role}), pr)
}

// ListTrashed returns a page of soft-deleted users.
func (r *MongoUserRepo) ListTrashed(pr models.PageRequest) (*models.Paged[models.User], error) {
	return r.listPage(bson.M{"deleted_at": bson.M{"$ne": nil}}, pr)
}
