package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenContextKey is the echo.Context key holding the bearer token.
const TokenContextKey = "session_token"

// BearerToken copies the token of an "Authorization: Bearer <token>" header
// into the context. It never rejects a request: clients send the token in
// the JSON body, and the service decides whether the caller may proceed.
func BearerToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, found := strings.Cut(header, " ")
			if found && strings.EqualFold(scheme, "bearer") {
				if token = strings.TrimSpace(token); token != "" {
					c.Set(TokenContextKey, token)
				}
			}
			return next(c)
		}
	}
}
