package handlers

import (
	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateUserRequest carries the optional fields of a user update.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

// ListUsers returns every user. Admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserService.List(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "failed to list users")
		return
	}
	response.Success(c, gin.H{"users": users})
}

// GetUser returns one user. Owner or admin.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if !h.requireOwnerOrAdmin(c, id) {
		return
	}

	user, err := h.UserService.Get(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "failed to fetch user")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// UpdateUser applies the present fields to one user. Owner or admin; role
// and active changes are admin only.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if !h.requireOwnerOrAdmin(c, id) {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if (req.Role != nil || req.Active != nil) && currentUserRole(c) != constants.RoleAdmin {
		response.Forbidden(c, "only admins may change role or active status")
		return
	}

	user, err := h.UserService.Update(c.Request.Context(), id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Phone:    req.Phone,
		Role:     req.Role,
		Active:   req.Active,
	})
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "failed to update user")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// DeleteUser removes one user. Admin only.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.UserService.Delete(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "failed to delete user")
		return
	}
	response.SuccessWithMsg(c, "user deleted", gin.H{"user": user})
}

// requireOwnerOrAdmin answers 403 unless the caller is an admin or owns the
// target record.
func (h *Handler) requireOwnerOrAdmin(c *gin.Context, targetID primitive.ObjectID) bool {
	if currentUserRole(c) == constants.RoleAdmin {
		return true
	}
	callerID, ok := currentUserID(c)
	if !ok {
		return false
	}
	if callerID != targetID {
		response.Forbidden(c, "insufficient permissions")
		return false
	}
	return true
}
