package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/config"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/logging"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/middleware"
)

// Claims is the token payload. Subject carries the user ID.
type Claims struct {
	Name     string   `json:"name,omitempty"`
	Language string   `json:"language,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Middleware verifies the bearer token and stores the authenticated user on
// the request context. Requests without a valid token are rejected with 401.
func Middleware(cfg config.AuthConfig, logger *logging.Logger) gin.HandlerFunc {
	key := []byte(cfg.SigningKey)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "missing bearer token",
			})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return key, nil
		}, jwt.WithIssuer(cfg.Issuer))
		if err != nil || !token.Valid {
			logger.Warn("Rejected token", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "invalid token",
			})
			return
		}

		user := domain.User{
			ID:       claims.Subject,
			Name:     claims.Name,
			Language: claims.Language,
			Roles:    claims.Roles,
		}
		c.Set(middleware.ContextKeyUser, user)

		ctx := context.WithValue(c.Request.Context(), logging.UserIDKey, user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// UserFrom returns the authenticated user stored by the middleware
func UserFrom(c *gin.Context) domain.User {
	if v, exists := c.Get(middleware.ContextKeyUser); exists {
		if user, ok := v.(domain.User); ok {
			return user
		}
	}
	return domain.User{}
}
