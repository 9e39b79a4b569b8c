// Package middleware provides reusable HTTP middleware: the session guard
// around protected routes and the Redis-backed rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject into the request context under
// "user_id". The provided secret must match the one used when issuing
// tokens. Every protected route runs this guard before its handler, so the
// session check always completes (or rejects) before any data query is
// issued.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := BearerClaims(c, secret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("user_id", claims["sub"])
			return next(c)
		}
	}
}

// RejectAuthenticated is the inverse guard for login and register. A
// client presenting a valid session is answered with 409 so it bounces to
// the profile instead of signing in twice. A missing, malformed or expired
// token is treated as logged-out and the request proceeds normally.
func RejectAuthenticated(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := BearerClaims(c, secret); ok {
				return c.JSON(http.StatusConflict, echo.Map{"error": "already_authenticated"})
			}
			return next(c)
		}
	}
}

// BearerClaims parses the Authorization header and returns the token claims
// when a valid HMAC-signed bearer token is present. Every place that reads
// an access token goes through this parser.
func BearerClaims(c echo.Context, secret string) (jwt.MapClaims, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}
