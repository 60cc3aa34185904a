package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderDetail is one line item belonging to exactly one order. Line items
// are created, replaced and deleted in the same atomic unit as their header.
type OrderDetail struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   primitive.ObjectID `bson:"orderId" json:"orderId"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     Money              `bson:"price" json:"price"`
}
