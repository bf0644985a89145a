package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/observability"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClaimsKey is the gin context key holding verified researcher claims
const ClaimsKey = "claims"

// TokenVerifier validates researcher session tokens
type TokenVerifier interface {
	Verify(token string) (*models.ResearcherClaims, error)
}

// RequireResearcher rejects requests without a valid researcher bearer token
func RequireResearcher(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": models.MessageUnauthorized})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": models.MessageUnauthorized})
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			observability.Logger().Warn("researcher token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": models.MessageUnauthorized})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetResearcherClaims returns the claims stored by RequireResearcher
func GetResearcherClaims(c *gin.Context) (*models.ResearcherClaims, error) {
	claims, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, fmt.Errorf("claims not found")
	}

	researcherClaims, ok := claims.(*models.ResearcherClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type")
	}
	return researcherClaims, nil
}
