package handlers

import (
	"github.com/cartloom/cartloom/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CategoryRequest is the category create/update payload.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListCategories returns every category.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "failed to list categories")
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// GetCategory returns one category.
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.CategoryService.Get(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "failed to fetch category")
		return
	}
	response.Success(c, gin.H{"category": category})
}

// CreateCategory inserts a category. Admin only.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	category, err := h.CategoryService.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "failed to create category")
		return
	}
	response.Created(c, gin.H{"category": category})
}

// UpdateCategory replaces name and description. Admin only.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	category, err := h.CategoryService.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "failed to update category")
		return
	}
	response.Success(c, gin.H{"category": category})
}
