package middleware

import (
	"net/http"
	"strings"

	"github.com/Eursukkul/hotel-booking/pkg/jwt"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Auth requires an "Authorization: Bearer <token>" header and stores the
// token subject as the current user.
func Auth(tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := tokens.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(userIDKey, claims.UserID())
			return next(c)
		}
	}
}

// UserID returns the user authenticated by Auth, or "" outside of it.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// SetUserID marks the request as authenticated for id.
func SetUserID(c echo.Context, id string) {
	c.Set(userIDKey, id)
}
