package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"protrack-backend/internal/domain/user"
	"protrack-backend/internal/usecase/auth"
)

const principalKey = "principal"

// AuthMiddleware verifies the bearer token and stores the resulting
// principal in the echo context. A missing or bad token is uniformly 401;
// role decisions happen later, in the usecases.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			p, err := auth.ParsePrincipal(strings.TrimSpace(token), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// Principal returns the authenticated caller, or nil outside the auth
// middleware — usecases treat nil as unauthenticated.
func Principal(c echo.Context) *user.Principal {
	p, _ := c.Get(principalKey).(*user.Principal)
	return p
}
