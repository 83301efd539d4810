package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/query"
)

const collectionEnterprises = "enterprises"

// EnterpriseRepository implements ports.EnterpriseRepository using MongoDB.
type EnterpriseRepository struct {
	col    *mongo.Collection
	schema SchemaChecker
	now    func() time.Time
}

func NewEnterpriseRepository(db *mongo.Database, schema SchemaChecker) *EnterpriseRepository {
	return &EnterpriseRepository{col: db.Collection(collectionEnterprises), schema: schema, now: time.Now}
}

type socialMediaDoc struct {
	Facebook  string `bson:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
}

type enterpriseDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Email             string             `bson:"email"`
	Phone             string             `bson:"phone"`
	Address           string             `bson:"address"`
	Website           string             `bson:"website,omitempty"`
	ImpactLevel       string             `bson:"impactLevel"`
	FoundingYear      int                `bson:"foundingYear"`
	YearsOfExperience int                `bson:"yearsOfExperience"`
	Category          string             `bson:"category"`
	Description       string             `bson:"description,omitempty"`
	SocialMedia       socialMediaDoc     `bson:"socialMedia"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func toEnterpriseDoc(e *domain.Enterprise) enterpriseDoc {
	return enterpriseDoc{
		Name:              e.Name,
		Email:             e.Email,
		Phone:             e.Phone,
		Address:           e.Address,
		Website:           e.Website,
		ImpactLevel:       string(e.ImpactLevel),
		FoundingYear:      e.FoundingYear,
		YearsOfExperience: e.YearsOfExperience,
		Category:          e.Category,
		Description:       e.Description,
		SocialMedia:       socialMediaDoc{Facebook: e.SocialMedia.Facebook, Instagram: e.SocialMedia.Instagram},
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (d enterpriseDoc) toDomain() domain.Enterprise {
	return domain.Enterprise{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Email:             d.Email,
		Phone:             d.Phone,
		Address:           d.Address,
		Website:           d.Website,
		ImpactLevel:       domain.ImpactLevel(d.ImpactLevel),
		FoundingYear:      d.FoundingYear,
		YearsOfExperience: d.YearsOfExperience,
		Category:          d.Category,
		Description:       d.Description,
		SocialMedia:       domain.SocialMedia{Facebook: d.SocialMedia.Facebook, Instagram: d.SocialMedia.Instagram},
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
}

// Create inserts a new enterprise. A duplicate email maps to domain.ErrEnterpriseExists.
func (r *EnterpriseRepository) Create(ctx context.Context, e *domain.Enterprise) (*domain.Enterprise, error) {
	if err := r.schema.Check(e); err != nil {
		return nil, fmt.Errorf("enterprise schema: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toEnterpriseDoc(e)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEnterpriseExists
		}
		return nil, fmt.Errorf("insert enterprise: %w", err)
	}

	created := doc.toDomain()
	return &created, nil
}

// EmailTaken reports whether an enterprise other than excludeID uses email.
func (r *EnterpriseRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"email": email}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count enterprises by email: %w", err)
	}
	return n > 0, nil
}

// Update applies patch with $set and returns the updated document. Unknown or
// malformed ids map to domain.ErrEnterpriseNotFound.
func (r *EnterpriseRepository) Update(ctx context.Context, id string, patch domain.EnterprisePatch) (*domain.Enterprise, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEnterpriseNotFound
	}

	var probe domain.Enterprise
	fields := patch.Apply(&probe)
	if err := r.schema.CheckPartial(probe, fields...); err != nil {
		return nil, fmt.Errorf("enterprise schema: %w", err)
	}

	set := updateSet(patch)
	set["updatedAt"] = r.now().UTC()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc enterpriseDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrEnterpriseNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrEnterpriseExists
		default:
			return nil, fmt.Errorf("update enterprise: %w", err)
		}
	}

	updated := doc.toDomain()
	return &updated, nil
}

// List runs plan against the collection.
func (r *EnterpriseRepository) List(ctx context.Context, plan query.Plan) ([]domain.Enterprise, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, planFilter(plan), planOptions(plan))
	if err != nil {
		return nil, fmt.Errorf("find enterprises: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Enterprise, 0)
	for cur.Next(ctx) {
		var doc enterpriseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode enterprise: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate enterprises: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the unique email index and the indexes used by listing filters.
func (r *EnterpriseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "impactLevel", Value: 1}}},
		{Keys: bson.D{{Key: "foundingYear", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
