package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arka-labs/course-market-api/internal/models"
	"github.com/arka-labs/course-market-api/internal/service"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
	"github.com/arka-labs/course-market-api/pkg/response"
)

// ContextClaimsKey is the gin context key storing verified token claims.
const ContextClaimsKey = "currentPrincipal"

// RequireClass protects routes by requiring a valid token for the given
// principal class. The guard never touches the credential store; downstream
// operations re-resolve the principal where they need the full record.
func RequireClass(tokens *service.TokenService, class models.PrincipalClass) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.Verify(class, parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// Claims returns the verified claims stored by RequireClass.
func Claims(c *gin.Context) (*models.Claims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	return claims, ok
}
