package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pngalemo/portfolio/internal/db"
	"github.com/pngalemo/portfolio/internal/models"
)

// profileKey is the well-known _id of the singleton profile document.
const profileKey = "about"

// MongoProfileRepository stores the singleton profile as one document with a
// fixed _id.
type MongoProfileRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoProfileRepository creates a MongoProfileRepository over database.
func NewMongoProfileRepository(database *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{coll: database.Collection(db.ProfileCollection), now: utcNow}
}

// GetOrCreate returns the canonical profile, inserting placeholder when the
// document is missing.
func (r *MongoProfileRepository) GetOrCreate(ctx context.Context, placeholder models.Profile) (*models.Profile, error) {
	now := r.now()
	onInsert := profileFields(placeholder)
	onInsert["createdAt"] = now
	onInsert["updatedAt"] = now

	return r.findOneAndUpsert(ctx, bson.M{"$setOnInsert": onInsert}, "GetOrCreate profile")
}

// Upsert sets the supplied fields of patch on the canonical profile and, when
// the document is created by this call, fills omitted fields from defaults.
// The whole operation is one findAndModify command.
func (r *MongoProfileRepository) Upsert(ctx context.Context, patch models.ProfilePatch, defaults models.Profile) (*models.Profile, error) {
	now := r.now()
	set := bson.M{"updatedAt": now}
	onInsert := bson.M{"createdAt": now}

	merged := profileFields(patch.Apply(defaults))
	supplied := patchedFields(patch)
	for field, value := range merged {
		if supplied[field] {
			set[field] = value
		} else {
			onInsert[field] = value
		}
	}

	return r.findOneAndUpsert(ctx, bson.M{"$set": set, "$setOnInsert": onInsert}, "Upsert profile")
}

func (r *MongoProfileRepository) findOneAndUpsert(ctx context.Context, update bson.M, op string) (*models.Profile, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var p models.Profile
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": profileKey}, update, opts).Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func profileFields(p models.Profile) bson.M {
	links := p.SocialLinks
	if links == nil {
		links = []models.SocialLink{}
	}
	skills := p.Skills
	if skills == nil {
		skills = []models.Skill{}
	}
	return bson.M{
		"name":            p.Name,
		"tagline":         p.Tagline,
		"bio":             p.Bio,
		"profileImageUrl": p.ProfileImageURL,
		"email":           p.Email,
		"phone":           p.Phone,
		"location":        p.Location,
		"socialLinks":     links,
		"skills":          skills,
	}
}

func patchedFields(p models.ProfilePatch) map[string]bool {
	return map[string]bool{
		"name":            p.Name != nil,
		"tagline":         p.Tagline != nil,
		"bio":             p.Bio != nil,
		"profileImageUrl": p.ProfileImageURL != nil,
		"email":           p.Email != nil,
		"phone":           p.Phone != nil,
		"location":        p.Location != nil,
		"socialLinks":     p.SocialLinks != nil,
		"skills":          p.Skills != nil,
	}
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
