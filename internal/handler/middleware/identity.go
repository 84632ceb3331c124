package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDHeader carries the caller's identity. The platform trusts an
// upstream gateway to have authenticated the user, so the header value
// is taken at face value here.
const UserIDHeader = "X-Sharer-User-Id"

const ctxUserIDKey = "user_id"

// RequireUser extracts the caller's ID from the identity header and puts
// it on the request context. Requests without a parseable ID are
// rejected before they reach a handler.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Missing " + UserIDHeader + " header",
			})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid " + UserIDHeader + " header",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
