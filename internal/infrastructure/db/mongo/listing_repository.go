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

	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

const listingsCollection = "listings"

// ListingRepository stores jobs and services in a single collection with a
// type discriminator. The unique code index therefore spans both pools.
type ListingRepository struct {
	coll *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{coll: db.Collection(listingsCollection)}
}

type mongoListing struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Type            string             `bson:"type"`
	Title           string             `bson:"title"`
	Code            string             `bson:"code"`
	CategoryID      string             `bson:"category_id"`
	Description     string             `bson:"description"`
	FullDescription string             `bson:"full_description,omitempty"`
	Price           float64            `bson:"price"`
	Location        string             `bson:"location"`
	Surface         float64            `bson:"surface,omitempty"`
	Images          []string           `bson:"images"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func toMongoListing(l *domain.Listing) mongoListing {
	return mongoListing{
		Type:            string(l.Type),
		Title:           l.Title,
		Code:            l.Code,
		CategoryID:      l.CategoryID,
		Description:     l.Description,
		FullDescription: l.FullDescription,
		Price:           l.Price,
		Location:        l.Location,
		Surface:         l.Surface,
		Images:          l.Images,
		CreatedAt:       l.CreatedAt.UTC(),
		UpdatedAt:       l.UpdatedAt.UTC(),
	}
}

func (ml mongoListing) toDomain() *domain.Listing {
	images := ml.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Listing{
		ID:              ml.ID.Hex(),
		Type:            domain.ListingType(ml.Type),
		Title:           ml.Title,
		Code:            ml.Code,
		CategoryID:      ml.CategoryID,
		Description:     ml.Description,
		FullDescription: ml.FullDescription,
		Price:           ml.Price,
		Location:        ml.Location,
		Surface:         ml.Surface,
		Images:          images,
		CreatedAt:       ml.CreatedAt,
		UpdatedAt:       ml.UpdatedAt,
	}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoListing(l)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCodeExists
		}
		return nil, fmt.Errorf("insert listing: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoListing
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *ListingRepository) ListByType(ctx context.Context, t domain.ListingType, opts ports.ListOptions) ([]*domain.Listing, error) {
	return r.list(ctx, bson.M{"type": string(t)}, opts)
}

func (r *ListingRepository) ListByCategory(ctx context.Context, t domain.ListingType, categoryID string) ([]*domain.Listing, error) {
	filter := bson.M{"type": string(t), "category_id": categoryID}
	return r.list(ctx, filter, ports.ListOptions{OrderBy: "created_at", Desc: true})
}

func (r *ListingRepository) list(ctx context.Context, filter bson.M, opts ports.ListOptions) ([]*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(sortSpec(opts)))
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Listing
	for cur.Next(ctx) {
		var ml mongoListing
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode listing: %w", err)
		}
		out = append(out, ml.toDomain())
	}
	return out, cur.Err()
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	oid, err := primitive.ObjectIDFromHex(l.ID)
	if err != nil {
		return domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoListing(l)
	doc.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCodeExists
		}
		return fmt.Errorf("update listing: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// EnsureIndexes creates the unique code index plus the browse indexes.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "category_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
