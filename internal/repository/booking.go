package repository

import (
	"context"
	"time"

	"campbook/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingFilter narrows booking list queries. Nil fields match everything.
type BookingFilter struct {
	UserID       *primitive.ObjectID
	CampgroundID *primitive.ObjectID
}

// IBookingRepository defines booking persistence
type IBookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Booking, error)
	FindDetailed(ctx context.Context, filter BookingFilter) ([]*model.BookingDetail, error)
	Update(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	GroupByCampground(ctx context.Context) ([]model.CampgroundBookingCount, error)
}

// BookingRepository implements booking persistence over MongoDB
type BookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) IBookingRepository {
	return &BookingRepository{collection: db.Collection("bookings")}
}

func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	booking.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return booking, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Booking, error) {
	var booking *model.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return booking, nil
}

// bookingWithCampground is the $lookup projection of a booking and its
// campground document.
type bookingWithCampground struct {
	model.Booking `bson:",inline"`
	Campground    model.Campground `bson:"campgroundDoc"`
}

// FindDetailed returns bookings joined with their campground's summary
// fields. Bookings whose campground was deleted are dropped by the join.
func (r *BookingRepository) FindDetailed(ctx context.Context, filter BookingFilter) ([]*model.BookingDetail, error) {
	match := bson.M{}
	if filter.UserID != nil {
		match["user"] = *filter.UserID
	}
	if filter.CampgroundID != nil {
		match["campground"] = *filter.CampgroundID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "campgrounds",
			"localField":   "campground",
			"foreignField": "_id",
			"as":           "campgroundDoc",
		}}},
		{{Key: "$unwind", Value: "$campgroundDoc"}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []bookingWithCampground
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	details := make([]*model.BookingDetail, 0, len(rows))
	for i := range rows {
		details = append(details, rows[i].Booking.Detail(&rows[i].Campground))
	}
	return details, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking)
	return err
}

func (r *BookingRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *BookingRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user": userID})
}

func (r *BookingRepository) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// campgroundCountDoc is the $group/$project output of the dashboard pipeline.
type campgroundCountDoc struct {
	CampgroundID   primitive.ObjectID `bson:"campgroundId"`
	CampgroundName string             `bson:"campgroundName"`
	BookingCount   int64              `bson:"bookingCount"`
}

// GroupByCampground counts bookings per campground. Ordering is applied by
// the caller.
func (r *BookingRepository) GroupByCampground(ctx context.Context) ([]model.CampgroundBookingCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          "$campground",
			"bookingCount": bson.M{"$sum": 1},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "campgrounds",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "campground",
		}}},
		{{Key: "$unwind", Value: "$campground"}},
		{{Key: "$project", Value: bson.M{
			"campgroundId":   "$_id",
			"campgroundName": "$campground.name",
			"bookingCount":   1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []campgroundCountDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	groups := make([]model.CampgroundBookingCount, 0, len(docs))
	for _, doc := range docs {
		groups = append(groups, model.CampgroundBookingCount{
			CampgroundID:   doc.CampgroundID.Hex(),
			CampgroundName: doc.CampgroundName,
			BookingCount:   doc.BookingCount,
		})
	}
	return groups, nil
}
