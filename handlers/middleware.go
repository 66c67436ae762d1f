package handlers

import (
	"net/http"
	"strings"

	"github.com/blogware/auth-service/internal/session"
	"github.com/gin-gonic/gin"
)

const claimsContextKey = "authClaims"

// RequireAuth verifies the bearer JWT and the database session it is
// bound to; a revoked session invalidates an otherwise well-signed
// token.
func (s *Service) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := s.JWT.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		if _, err := s.Sessions.Validate(c.Request.Context(), claims.SessionToken); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid session"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func getClaims(c *gin.Context) *session.Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*session.Claims)
	return claims
}
