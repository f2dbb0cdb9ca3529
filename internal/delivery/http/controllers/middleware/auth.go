package middleware

import (
	"errors"
	"net/http"
	"strings"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TokenVerifier interface {
	Claims(token string) (*models.AuthClaims, error)
}

type AuthProvider struct {
	log      logger.Log
	verifier TokenVerifier
}

func NewAuthProvider(log logger.Log, v TokenVerifier) *AuthProvider {
	return &AuthProvider{log: log, verifier: v}
}

// Auth verifies the bearer token and attaches its claims to the request
// context. The header may carry either "Bearer <token>" or the raw token.
// Missing, malformed, badly signed and expired tokens are all rejected with
// 403.
func (p *AuthProvider) Auth(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "authentication JWT is not present, access denied",
		})
		return
	}

	token := authHeader
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		token = after
	}

	claims, err := p.verifier.Claims(token)
	if err != nil {
		p.log.Warn("could not validate the authentication JWT",
			"request_id", c.GetString(RequestIDCtx), logger.Err(err))
		if errors.Is(err, app_errors.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": app_errors.ErrTokenExpired.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": app_errors.ErrInvalidToken.Error()})
		return
	}

	c.Set(ClaimsCtx, claims)
	c.Next()
}

// RequireAdmin gates a route on the isAdmin claim. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil || !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": app_errors.ErrNotAdmin.Error()})
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) *models.AuthClaims {
	raw, exists := c.Get(ClaimsCtx)
	if !exists {
		return nil
	}
	claims, ok := raw.(*models.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}
