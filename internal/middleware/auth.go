package middleware

import (
	"net/http"

	"github.com/vuminhhoangg/E-Store-sub000/internal/auth"
	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"
	"github.com/vuminhhoangg/E-Store-sub000/internal/user"
	"github.com/vuminhhoangg/E-Store-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticate resolves the access token (cookie first, then bearer header)
// and attaches the user identity to the request context. Requests without a
// valid token pass through anonymous; handlers behind RequireAuth reject them.
func Authenticate(revocations *auth.RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		if revocations != nil {
			revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.FromCtx(c.Request.Context()).Error("revocation check failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication unavailable"})
				return
			}
			if revoked {
				c.Next()
				return
			}
		}

		ctx := utils.WithUser(c.Request.Context(), claims.UserID, claims.Email, claims.IsAdmin)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth rejects requests that did not authenticate.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin users.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !utils.IsAdminFromContext(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
