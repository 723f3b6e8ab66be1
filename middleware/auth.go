package middleware

import (
	"fmt"
	"strings"

	"shopadmin/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// StaffUser identifies the logged-in back-office user for the request.
// Handlers read it from c.Locals(StaffKey); tests can set it directly.
type StaffUser struct {
	ID       uint
	Username string
}

const StaffKey = "staff"

// RequireStaff validates the bearer token and stores the staff identity in
// the request context. Token issuance belongs to the identity provider.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication token required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Expected a Bearer token",
			})
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(config.Get().JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		staff := StaffUser{}
		if id, ok := claims["user_id"].(float64); ok {
			staff.ID = uint(id)
		}
		if username, ok := claims["username"].(string); ok {
			staff.Username = username
		}
		if staff.ID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid user context",
			})
		}

		c.Locals(StaffKey, staff)
		return c.Next()
	}
}

// Staff returns the authenticated user for the request, if any.
func Staff(c *fiber.Ctx) (StaffUser, bool) {
	staff, ok := c.Locals(StaffKey).(StaffUser)
	return staff, ok
}
