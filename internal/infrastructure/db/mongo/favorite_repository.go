package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bacheca/board-api/internal/core/domain"
)

const favoritesCollection = "favorites"

// FavoriteRepository stores bookmarks. A unique compound index on
// (username, item_id, item_type) makes concurrent double-adds collapse into
// one record.
type FavoriteRepository struct {
	coll *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{coll: db.Collection(favoritesCollection)}
}

type mongoFavorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	ItemID    string             `bson:"item_id"`
	ItemType  string             `bson:"item_type"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mf mongoFavorite) toDomain() *domain.Favorite {
	return &domain.Favorite{
		ID:        mf.ID.Hex(),
		Username:  mf.Username,
		ItemID:    mf.ItemID,
		ItemType:  domain.ListingType(mf.ItemType),
		CreatedAt: mf.CreatedAt,
	}
}

func (r *FavoriteRepository) Add(ctx context.Context, fav *domain.Favorite) (*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFavorite{
		Username:  fav.Username,
		ItemID:    fav.ItemID,
		ItemType:  string(fav.ItemType),
		CreatedAt: fav.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFavoriteExists
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, username, itemID string, itemType domain.ListingType) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{
		"username":  username,
		"item_id":   itemID,
		"item_type": string(itemType),
	})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, username string) ([]*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"username": username})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Favorite
	for cur.Next(ctx) {
		var mf mongoFavorite
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode favorite: %w", err)
		}
		out = append(out, mf.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique compound bookmark index.
func (r *FavoriteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "username", Value: 1},
			{Key: "item_id", Value: 1},
			{Key: "item_type", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
