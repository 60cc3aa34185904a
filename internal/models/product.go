package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item. Price and stock are required and non-negative
// by convention; the category reference is optional.
type Product struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Price       Money               `bson:"price" json:"price"`
	Stock       int                 `bson:"stock" json:"stock"`
	CategoryID  *primitive.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
	Images      string              `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
