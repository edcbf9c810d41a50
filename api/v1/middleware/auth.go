package middleware

import (
	"errors"
	"strings"

	"go_redirect/internal/auth"
	"go_redirect/internal/httpx"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired validates the admin bearer token
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpx.AbortErr(c, httpx.ErrUnauthorized("missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpx.AbortErr(c, httpx.ErrUnauthorized("invalid authorization header format"))
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				httpx.AbortErr(c, httpx.ErrTokenExpired("token expired"))
			} else {
				httpx.AbortErr(c, httpx.ErrInvalidToken("invalid token"))
			}
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}
