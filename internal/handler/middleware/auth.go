package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"notify-dispatch/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	jwtService *jwt.Service
}

const (
	ctxTenantIDKey = "tenant_id"
	ctxServiceKey  = "service_origin"
	ctxClaimsKey   = "claims"
)

func NewAuthMiddleware(jwtService *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			c.Abort()
			return
		}

		c.Set(ctxTenantIDKey, claims.TenantID)
		c.Set(ctxServiceKey, claims.Service)
		c.Set(ctxClaimsKey, claims)
		c.Set("jwt_claims", map[string]any{
			"tenant_id": claims.TenantID.String(),
			"service":   claims.Service,
		})
		c.Next()
	}
}

// RequireScope gates a route group on one token scope. Must run after
// RequireAuth.
func (m *AuthMiddleware) RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "Internal server error"},
			})
			c.Abort()
			return
		}

		if !claims.HasScope(scope) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "Insufficient scope"},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	tenantID, exists := c.Get(ctxTenantIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := tenantID.(uuid.UUID)
	return id, ok
}

func GetServiceOrigin(c *gin.Context) (string, bool) {
	service, exists := c.Get(ctxServiceKey)
	if !exists {
		return "", false
	}

	name, ok := service.(string)
	return name, ok
}

func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ctxClaimsKey)
	if !exists {
		return nil, false
	}

	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
