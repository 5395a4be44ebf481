package repository

import (
	"context"

	"campbook/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ICampgroundRepository defines campground persistence
type ICampgroundRepository interface {
	Find(ctx context.Context) ([]*model.Campground, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Campground, error)
	Create(ctx context.Context, campground *model.Campground) (*model.Campground, error)
	Update(ctx context.Context, campground *model.Campground) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// CampgroundRepository implements campground persistence over MongoDB
type CampgroundRepository struct {
	collection *mongo.Collection
}

func NewCampgroundRepository(db *mongo.Database) ICampgroundRepository {
	return &CampgroundRepository{collection: db.Collection("campgrounds")}
}

func (r *CampgroundRepository) Find(ctx context.Context) ([]*model.Campground, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	campgrounds := make([]*model.Campground, 0)
	if err := cursor.All(ctx, &campgrounds); err != nil {
		return nil, err
	}
	return campgrounds, nil
}

func (r *CampgroundRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Campground, error) {
	var campground *model.Campground
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campground)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return campground, nil
}

func (r *CampgroundRepository) Create(ctx context.Context, campground *model.Campground) (*model.Campground, error) {
	res, err := r.collection.InsertOne(ctx, campground)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		campground.ID = oid
	}
	return campground, nil
}

func (r *CampgroundRepository) Update(ctx context.Context, campground *model.Campground) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": campground.ID}, campground)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *CampgroundRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
