package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pngalemo/portfolio/internal/apperr"
	"github.com/pngalemo/portfolio/internal/db"
	"github.com/pngalemo/portfolio/internal/models"
)

// MongoResumeRepository implements resume item persistence against a MongoDB collection.
type MongoResumeRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoResumeRepository creates a MongoResumeRepository over database.
func NewMongoResumeRepository(database *mongo.Database) *MongoResumeRepository {
	return &MongoResumeRepository{coll: database.Collection(db.ResumeCollection), now: utcNow}
}

// ListResumeItems returns stored items, newest start date first and then by
// category. An empty category returns every item.
func (r *MongoResumeRepository) ListResumeItems(ctx context.Context, category models.Category) ([]models.ResumeItem, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}, {Key: "category", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("ListResumeItems: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.ResumeItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("ListResumeItems decode: %w", err)
	}
	return items, nil
}

// GetResumeItem fetches a single item by id.
func (r *MongoResumeRepository) GetResumeItem(ctx context.Context, id string) (*models.ResumeItem, error) {
	var item models.ResumeItem
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("Resume item")
	}
	if err != nil {
		return nil, fmt.Errorf("GetResumeItem: %w", err)
	}
	return &item, nil
}

// CreateResumeItem stores item under a new id and returns the stored item.
func (r *MongoResumeRepository) CreateResumeItem(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error) {
	now := r.now()
	item.ID = uuid.NewString()
	item.CreatedAt, item.UpdatedAt = &now, &now
	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		return nil, fmt.Errorf("CreateResumeItem: %w", err)
	}
	return &item, nil
}

// UpdateResumeItem replaces the stored item with id item.ID.
func (r *MongoResumeRepository) UpdateResumeItem(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error) {
	now := r.now()
	item.UpdatedAt = &now

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var out models.ResumeItem
	err := r.coll.FindOneAndReplace(ctx, bson.M{"_id": item.ID}, item, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("Resume item")
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateResumeItem: %w", err)
	}
	return &out, nil
}

// DeleteResumeItem permanently removes the item with the given id.
func (r *MongoResumeRepository) DeleteResumeItem(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("DeleteResumeItem: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Resume item")
	}
	return nil
}
