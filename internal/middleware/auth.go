package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/Eursukkul/hbnb-service/internal/auth"
	"github.com/labstack/echo/v4"
)

const (
	ctxUserID  = "userID"
	ctxIsAdmin = "isAdmin"
)

// TokenParser validates an access token. *auth.TokenManager satisfies it.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the
// caller's identity on the context.
func JWTAuth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization token missing")
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				log.Printf("[Auth] rejected token on %s: %v", c.Path(), err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			setIdentity(c, claims)
			return next(c)
		}
	}
}

// OptionalJWT identifies the caller when a valid token is present and lets
// anonymous requests through.
func OptionalJWT(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := bearerToken(c); raw != "" {
				if claims, err := tokens.Parse(raw); err == nil {
					setIdentity(c, claims)
				}
			}
			return next(c)
		}
	}
}

// AdminOnly must run after JWTAuth.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			log.Printf("[Auth] admin check failed for user %q on %s", UserID(c), c.Path())
			return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
		}
		return next(c)
	}
}

// UserID is the authenticated caller, or "" for anonymous requests.
func UserID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}

func IsAdmin(c echo.Context) bool {
	admin, _ := c.Get(ctxIsAdmin).(bool)
	return admin
}

func setIdentity(c echo.Context, claims *auth.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxIsAdmin, claims.IsAdmin)
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
