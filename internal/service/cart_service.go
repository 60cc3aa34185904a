package service

import (
	"context"

	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService manages the single cart of each user. Cart mutations are
// whole-document read/modify/write without a transactional envelope, so two
// concurrent writers to the same cart can lose one update.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// CartItemView is a cart item joined with its product snapshot. Product is
// nil when the referenced product no longer exists.
type CartItemView struct {
	models.CartItem
	Product *models.Product `json:"product,omitempty"`
}

// CartView is a cart with product snapshots resolved onto its items.
type CartView struct {
	models.Cart
	Items []CartItemView `json:"items"`
}

// Get returns the cart of a user with product snapshots on every item.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*CartView, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	productIDs := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	view := CartView{Cart: *cart, Items: make([]CartItemView, 0, len(cart.Items))}
	for _, item := range cart.Items {
		view.Items = append(view.Items, CartItemView{CartItem: item, Product: byID[item.ProductID]})
	}
	return &view, nil
}

// AddItem adds a product to the cart, creating the cart on first use. An
// already-present product has its quantity incremented instead of a second
// entry being appended.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, newValidationError("quantity", "must be greater than zero")
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	if i := cart.FindItem(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of an item already in the cart.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, newValidationError("quantity", "must be greater than zero")
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	i := cart.FindItem(productID)
	if i < 0 {
		return nil, ErrCartItemNotFound
	}
	cart.Items[i].Quantity = quantity

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem removes a product from the cart. Removing a product that is not
// in the cart leaves the cart unchanged and succeeds.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
