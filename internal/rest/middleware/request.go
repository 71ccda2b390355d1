package middleware

import (
	"context"

	"github.com/laundrycare/lce/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware assigns every request an ID and threads the caller
// identity into the request context for audit columns.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	if userID := c.GetHeader(types.HeaderUserID); userID != "" {
		ctx = types.SetUserID(ctx, userID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
