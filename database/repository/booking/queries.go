package bookingRepo

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

func (r *MongoBookingRepo) listPage(filter bson.M, pr models.PageRequest) (*models.Paged[models.Booking], error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pr = pr.Normalize()
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(sortSpec(pr.Sort)).
		SetSkip(pr.Skip()).
		SetLimit(int64(pr.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0, pr.Limit)
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return models.NewPaged(bookings, total, pr), nil
}

// List returns a page of live bookings.
func (r *MongoBookingRepo) List(pr models.PageRequest) (*models.Paged[models.Booking], error) {
	return r.listPage(liveFilter(bson.M{}), pr)
}

// ListByMobile returns a page of live bookings for one customer mobile number.
func (r *MongoBookingRepo) ListByMobile(mobile string, pr models.PageRequest) (*models.Paged[models.Booking], error) {
	return r.listPage(liveFilter(bson.M{"customer.mobile": mobile}), pr)
}

// ListTrashed returns a page of soft-deleted bookings.
func (r *MongoBookingRepo) ListTrashed(pr models.PageRequest) (*models.Paged[models.Booking], error) {
	return r.listPage(bson.M{"deleted_at": bson.M{"$ne": nil}}, pr)
}
