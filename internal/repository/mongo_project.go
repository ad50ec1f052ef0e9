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

// MongoProjectRepository implements project persistence against a MongoDB collection.
type MongoProjectRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoProjectRepository creates a MongoProjectRepository over database.
func NewMongoProjectRepository(database *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{coll: database.Collection(db.ProjectsCollection), now: utcNow}
}

// ListProjects returns every stored project, newest start date first.
// Documents without a start date sort last.
func (r *MongoProjectRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("ListProjects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("ListProjects decode: %w", err)
	}
	return projects, nil
}

// GetProject fetches a single project by id.
func (r *MongoProjectRepository) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("Project")
	}
	if err != nil {
		return nil, fmt.Errorf("GetProject: %w", err)
	}
	return &p, nil
}

// CreateProject stores p under a new id and returns the stored project.
func (r *MongoProjectRepository) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	now := r.now()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = &now, &now
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("CreateProject: %w", err)
	}
	return &p, nil
}

// UpdateProject replaces the stored project with id p.ID.
func (r *MongoProjectRepository) UpdateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	now := r.now()
	p.UpdatedAt = &now
	if p.Technologies == nil {
		p.Technologies = []string{}
	}

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var out models.Project
	err := r.coll.FindOneAndReplace(ctx, bson.M{"_id": p.ID}, p, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("Project")
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateProject: %w", err)
	}
	return &out, nil
}

// DeleteProject permanently removes the project with the given id.
func (r *MongoProjectRepository) DeleteProject(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("DeleteProject: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Project")
	}
	return nil
}
