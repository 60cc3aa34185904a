package handlers

import (
	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRequest is the product create/replace payload.
type ProductRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       *models.Money `json:"price"`
	Stock       *int          `json:"stock"`
	Category    *string       `json:"category"`
	Images      string        `json:"images"`
}

// ProductPatchRequest is the partial-update payload; only present fields are
// applied.
type ProductPatchRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Price       *models.Money `json:"price"`
	Stock       *int          `json:"stock"`
	Category    *string       `json:"category"`
	Images      *string       `json:"images"`
}

func parseCategoryID(c *gin.Context, raw *string) (*primitive.ObjectID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(*raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid category id", nil)
		return nil, false
	}
	return &id, true
}

// ListProducts returns every product.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.ProductService.List(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, "failed to list products")
		return
	}
	response.Success(c, gin.H{"products": products})
}

// GetProduct returns one product.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.Get(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, "failed to fetch product")
		return
	}
	response.Success(c, gin.H{"product": product})
}

// CreateProduct inserts a product. Admin only.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	categoryID, ok := parseCategoryID(c, req.Category)
	if !ok {
		return
	}

	product, err := h.ProductService.Create(c.Request.Context(), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  categoryID,
		Images:      req.Images,
	})
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, "failed to create product")
		return
	}
	response.Created(c, gin.H{"product": product})
}

// ReplaceProduct overwrites the full product field set. Fields omitted from
// the request are reset. Admin only.
func (h *Handler) ReplaceProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	categoryID, ok := parseCategoryID(c, req.Category)
	if !ok {
		return
	}

	product, err := h.ProductService.Replace(c.Request.Context(), id, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  categoryID,
		Images:      req.Images,
	})
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, "failed to update product")
		return
	}
	response.Success(c, gin.H{"product": product})
}

// PatchProduct applies only the present fields. Admin only.
func (h *Handler) PatchProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	categoryID, ok := parseCategoryID(c, req.Category)
	if !ok {
		return
	}

	product, err := h.ProductService.Patch(c.Request.Context(), id, repository.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  categoryID,
		Images:      req.Images,
	})
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, "failed to update product")
		return
	}
	response.Success(c, gin.H{"product": product})
}
