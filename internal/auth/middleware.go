package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const accountContextKey = "filehubAccount"

// ContextAccount represents the authenticated principal stored in the
// request context.
type ContextAccount struct {
	ID      string
	Account string
}

// Middleware validates bearer tokens and injects the authenticated account.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"message": "missing authorization header"})
			return
		}

		token := extractBearerToken(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(401, gin.H{"message": "invalid authorization header"})
			return
		}

		claims, err := service.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set(accountContextKey, ContextAccount{
			ID:      claims.AccountID.String(),
			Account: claims.Account,
		})

		c.Next()
	}
}

// CurrentAccount extracts the authenticated account from the context.
func CurrentAccount(c *gin.Context) (ContextAccount, bool) {
	value, exists := c.Get(accountContextKey)
	if !exists {
		return ContextAccount{}, false
	}
	acc, ok := value.(ContextAccount)
	return acc, ok
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
