package domain

import "time"

// Favorite is a user-specific bookmark on a listing. The triple
// (Username, ItemID, ItemType) is unique per user.
type Favorite struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	Username  string      `json:"username" bson:"username"`
	ItemID    string      `json:"itemId" bson:"item_id"`
	ItemType  ListingType `json:"itemType" bson:"item_type"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// FavoriteKey builds the membership key used by the in-memory tracker.
func FavoriteKey(itemID string, itemType ListingType) string {
	return itemID + "_" + string(itemType)
}
