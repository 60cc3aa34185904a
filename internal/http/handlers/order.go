package handlers

import (
	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderDetailRequest is one line item of an order payload.
type OrderDetailRequest struct {
	ProductID string       `json:"productId"`
	Quantity  int          `json:"quantity"`
	Price     models.Money `json:"price"`
}

// OrderRequest is the order create/replace payload. The total amount is
// taken as supplied, it is not recomputed from the line items.
type OrderRequest struct {
	User            string               `json:"user"`
	TotalAmount     models.Money         `json:"totalAmount"`
	Status          string               `json:"status"`
	PaymentMethod   string               `json:"paymentMethod"`
	ShippingAddress string               `json:"shippingAddress"`
	OrderDetails    []OrderDetailRequest `json:"orderDetails"`
}

func (h *Handler) bindOrderInput(c *gin.Context) (service.OrderInput, bool) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return service.OrderInput{}, false
	}
	userID, err := primitive.ObjectIDFromHex(req.User)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid user id", nil)
		return service.OrderInput{}, false
	}

	details := make([]service.OrderDetailInput, 0, len(req.OrderDetails))
	for _, d := range req.OrderDetails {
		productID, err := primitive.ObjectIDFromHex(d.ProductID)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid productId in order details", nil)
			return service.OrderInput{}, false
		}
		details = append(details, service.OrderDetailInput{
			ProductID: productID,
			Quantity:  d.Quantity,
			Price:     d.Price,
		})
	}

	return service.OrderInput{
		UserID:          userID,
		TotalAmount:     req.TotalAmount,
		Status:          req.Status,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		Details:         details,
	}, true
}

// ListOrders returns every order with its owner summary and line items.
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.OrderService.List(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "failed to list orders")
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// GetOrder returns one order with its line items.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	order, details, err := h.OrderService.Get(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "failed to fetch order")
		return
	}
	response.Success(c, gin.H{"order": order, "orderDetails": details})
}

// CreateOrder writes an order header and its line items atomically.
func (h *Handler) CreateOrder(c *gin.Context) {
	input, ok := h.bindOrderInput(c)
	if !ok {
		return
	}

	order, details, err := h.OrderService.Create(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "failed to create order")
		return
	}
	response.Created(c, gin.H{"order": order, "orderDetails": details})
}

// UpdateOrder replaces an order header and swaps its full line-item set
// atomically. Admin only.
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	input, ok := h.bindOrderInput(c)
	if !ok {
		return
	}

	order, details, err := h.OrderService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "failed to update order")
		return
	}
	response.Success(c, gin.H{"order": order, "orderDetails": details})
}

// DeleteOrder removes an order and all its line items atomically. Admin only.
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Delete(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "failed to delete order")
		return
	}
	response.SuccessWithMsg(c, "order deleted", gin.H{"order": order})
}
