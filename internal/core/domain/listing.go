package domain

import "time"

// ListingType discriminates the two posting pools sharing one collection.
type ListingType string

const (
	TypeJob     ListingType = "job"
	TypeService ListingType = "service"
)

// ValidListingType reports whether t names a known listing pool.
func ValidListingType(t ListingType) bool {
	return t == TypeJob || t == TypeService
}

// Listing is a job or service posting. Code is unique across the union of
// both pools (enforced by a unique index, not by a client-side pre-check).
// Surface is set on jobs only.
type Listing struct {
	ID              string      `json:"id" bson:"_id,omitempty"`
	Type            ListingType `json:"type" bson:"type"`
	Title           string      `json:"title" bson:"title"`
	Code            string      `json:"code" bson:"code"`
	CategoryID      string      `json:"categoryId" bson:"category_id"`
	Description     string      `json:"description" bson:"description"`
	FullDescription string      `json:"fullDescription" bson:"full_description"`
	Price           float64     `json:"price" bson:"price"`
	Location        string      `json:"location" bson:"location"`
	Surface         float64     `json:"surface,omitempty" bson:"surface,omitempty"`
	Images          []string    `json:"images" bson:"images"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" bson:"updated_at"`
}
