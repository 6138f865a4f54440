package availabilityRepo

import (
	"fmt"
	"strings"
	"time"

	"glowdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sortSpec converts a "-field" style sort parameter to a Mongo sort document.
func sortSpec(sort string) bson.D {
	field := sort
	dir := 1
	if strings.HasPrefix(sort, "-") {
		field = strings.TrimPrefix(sort, "-")
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}}
}

func (r *MongoAvailabilityRepo) listPage(filter bson.M, pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pr = pr.Normalize()
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count availability: %w", err)
	}

	opts := options.Find().
		SetSort(sortSpec(pr.Sort)).
		SetSkip(pr.Skip()).
		SetLimit(int64(pr.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	defer cursor.Close(ctx)

	days := make([]models.AvailabilityDay, 0, pr.Limit)
	for cursor.Next(ctx) {
		var day models.AvailabilityDay
		if err := cursor.Decode(&day); err != nil {
			return nil, fmt.Errorf("failed to decode availability: %w", err)
		}
		days = append(days, day)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return models.NewPaged(days, total, pr), nil
}

// ListByStaff returns a page of live records for one staff member.
func (r *MongoAvailabilityRepo) ListByStaff(staffID string, pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error) {
	return r.listPage(liveFilter(bson.M{"staff_id": staffID}), pr)
}

// ListTrashed returns a page of soft-deleted records.
func (r *MongoAvailabilityRepo) ListTrashed(pr models.PageRequest) (*models.Paged[models.AvailabilityDay], error) {
	return r.listPage(bson.M{"deleted_at": bson.M{"$ne": nil}}, pr)
}
