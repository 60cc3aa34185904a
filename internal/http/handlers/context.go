package handlers

import (
	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// requestLog returns a logger carrying the request id when present.
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondError writes an error response and, when an original error exists,
// records it server-side.
func respondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get(constants.ContextUserIDKey)
	if !exists {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	if !ok || id.IsZero() {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

// currentUserRole reads the authenticated role set by the auth middleware.
func currentUserRole(c *gin.Context) string {
	if value, exists := c.Get(constants.ContextUserRoleKey); exists {
		if role, ok := value.(string); ok {
			return role
		}
	}
	return ""
}

// objectIDParam parses a path parameter as an ObjectID, answering 400 on a
// malformed value.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return primitive.NilObjectID, false
	}
	return id, true
}
