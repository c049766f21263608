package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductEntity represents a document in the products collection.
// SellerName is a snapshot of the seller's display name at creation time
// and is not kept in sync with later renames.
type ProductEntity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Images      []string           `bson:"images" json:"images"`
	Stock       int64              `bson:"stock" json:"stock"`
	Seller      primitive.ObjectID `bson:"seller" json:"seller"`
	SellerName  string             `bson:"seller_name" json:"seller_name"`
	Featured    bool               `bson:"featured" json:"featured"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ProductFilter for listing products
type ProductFilter struct {
	Category string
	Search   string
	Sort     string
	Seller   primitive.ObjectID
}

// CreateProductRequest for POST /api/products
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=3"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,category"`
	Images      []string `json:"images"`
	Stock       *int64   `json:"stock" validate:"omitempty,gte=0"`
}

// UpdateProductRequest for PUT /api/products/:id. Every field is a pointer
// so that a field absent from the payload can be told apart from a field
// explicitly set to its zero value (price 0, featured false).
type UpdateProductRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=3"`
	Description *string   `json:"description" validate:"omitempty,min=10"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	Category    *string   `json:"category" validate:"omitempty,category"`
	Images      *[]string `json:"images"`
	Stock       *int64    `json:"stock" validate:"omitempty,gte=0"`
	Featured    *bool     `json:"featured"`
}

// Empty reports whether the update carries no fields at all.
func (r *UpdateProductRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil &&
		r.Category == nil && r.Images == nil && r.Stock == nil && r.Featured == nil
}

// ProductResponse wraps a product with a human-readable message.
type ProductResponse struct {
	Message string         `json:"message"`
	Product *ProductEntity `json:"product"`
}

// MessageResponse is a bare message body (e.g. after delete).
type MessageResponse struct {
	Message string `json:"message"`
}
