package middleware

import (
	"net/http"
	"strings"

	"spc-api/pkg/jwtutil"
	"spc-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the JWT token and extracts claims
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Extract the token from the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		// Check if the header format is valid
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Warn("Invalid authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header format"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Warn("Invalid or expired token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store user information in the context
		c.Set("user_id", claims.UserID())
		c.Set("email", claims.Email)
		c.Set("roles", claims.Roles)

		log.Debug("JWT token validated",
			zap.Uint("user_id", claims.UserID()),
			zap.String("email", claims.Email))

		return next(c)
	}
}

// RequireRoles gates a route on the caller holding at least one of the given
// roles. Must run after AuthMiddleware has stored the validated claim set.
func RequireRoles(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			roles, ok := c.Get("roles").([]string)
			if !ok {
				log.Warn("Missing roles in context")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			for _, have := range roles {
				for _, want := range required {
					if have == want {
						return next(c)
					}
				}
			}

			log.Warn("Insufficient role for route",
				zap.Strings("roles", roles),
				zap.Strings("required", required))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
		}
	}
}
