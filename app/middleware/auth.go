package middleware

import (
	"net/http"
	"strings"

	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	// TokenCookie is the session carrier cookie name.
	TokenCookie = "token"

	identityKey = "identity"
)

type tokenValidator interface {
	Validate(tokenString string) (*service.Claims, error)
}

type AuthMiddleware struct {
	tokens tokenValidator
}

func NewAuthMiddleware(tokens tokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth authenticates the request from the Authorization header or the
// token cookie and stores the caller identity in the request context.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			logrus.Debug("Missing bearer token and token cookie")
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"error":   "not authorized to access this route",
			})
		}

		claims, err := m.tokens.Validate(tokenString)
		if err != nil {
			logrus.Debug("Invalid or expired session token")
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"error":   "invalid or expired token",
			})
		}

		c.Set(identityKey, claims.Identity())
		return next(c)
	}
}

// RequireRoles restricts a route to the given roles. It must run after
// RequireAuth.
func (m *AuthMiddleware) RequireRoles(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "not authorized to access this route",
				})
			}

			if err := service.RequireRole(ident, roles...); err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": ident.UserID,
					"role":    ident.Role,
				}).Warn("Role not permitted for route")
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false,
					"error":   "role is not authorized to access this route",
				})
			}

			return next(c)
		}
	}
}

// IdentityFrom returns the authenticated identity stored by RequireAuth.
func IdentityFrom(c echo.Context) (service.Identity, bool) {
	ident, ok := c.Get(identityKey).(service.Identity)
	return ident, ok
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(TokenCookie)
	if err != nil || cookie.Value == "none" {
		return ""
	}
	return cookie.Value
}
