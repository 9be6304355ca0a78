package middleware

import (
	"net/http"
	"strings"

	accountRepo "traintrack/database/repository/account"
	"traintrack/models"
	"traintrack/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and resolves the account. The
// resolved account ID and role are placed in the request context.
func JWTAuthMiddleware(accounts accountRepo.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		accountID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if session := utils.GetCachedAuthSession(c.Request.Context(), tokenString); session != nil && session.AccountID == accountID {
			c.Set("accountID", session.AccountID)
			c.Set("accountRole", session.Role)
			c.Next()
			return
		}

		account, err := accounts.GetByID(c.Request.Context(), accountID)
		if err != nil || account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown account"})
			return
		}
		utils.CacheAuthSession(c.Request.Context(), tokenString, utils.AuthSession{
			AccountID: account.ID,
			Role:      account.Role,
		})

		c.Set("accountID", account.ID)
		c.Set("accountRole", account.Role)
		c.Next()
	}
}

// RequireAdmin gates an endpoint to accounts with the ADMIN role. Must run
// after JWTAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("accountRole")
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
