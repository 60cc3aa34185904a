package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartFindItem(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	cart := Cart{Items: []CartItem{
		{ProductID: first, Quantity: 1},
		{ProductID: second, Quantity: 2},
	}}

	if got := cart.FindItem(second); got != 1 {
		t.Fatalf("want index 1 got %d", got)
	}
	if got := cart.FindItem(primitive.NewObjectID()); got != -1 {
		t.Fatalf("absent product want -1 got %d", got)
	}
}
