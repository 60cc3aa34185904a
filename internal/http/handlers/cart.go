package handlers

import (
	"github.com/cartloom/cartloom/internal/http/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItemRequest is the cart add/update payload.
type CartItemRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartRemoveRequest is the cart item removal payload.
type CartRemoveRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
}

func parseCartIDs(c *gin.Context, rawUserID, rawProductID string) (primitive.ObjectID, primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(rawUserID)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid userId", nil)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	productID, err := primitive.ObjectIDFromHex(rawProductID)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid productId", nil)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return userID, productID, true
}

// GetCart returns the cart of one user.
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := objectIDParam(c, "userId")
	if !ok {
		return
	}

	cart, err := h.CartService.Get(c.Request.Context(), userID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, "failed to fetch cart")
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// AddCartItem adds a product to a cart, creating the cart on first use.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	userID, productID, ok := parseCartIDs(c, req.UserID, req.ProductID)
	if !ok {
		return
	}

	cart, err := h.CartService.AddItem(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, "failed to add item to cart")
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// UpdateCartItem sets the quantity of an item already in a cart.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	userID, productID, ok := parseCartIDs(c, req.UserID, req.ProductID)
	if !ok {
		return
	}

	cart, err := h.CartService.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, "failed to update cart item")
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// RemoveCartItem removes a product from a cart. Removing an absent product
// succeeds without changing the cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	var req CartRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	userID, productID, ok := parseCartIDs(c, req.UserID, req.ProductID)
	if !ok {
		return
	}

	cart, err := h.CartService.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, "failed to remove cart item")
		return
	}
	response.Success(c, gin.H{"cart": cart})
}
