package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/service-provider-api/internal/caller"
)

// RequireCaller требует заголовок user-id и кладёт его в контекст запроса.
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := caller.ParseID(c.GetHeader(caller.HeaderKey))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.Request = c.Request.WithContext(caller.WithID(c.Request.Context(), id))
		c.Next()
	}
}
