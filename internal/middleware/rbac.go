package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole gates a route on the role hierarchy (admin > faculty > student).
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasRole(requiredRole) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func IsAdmin(c *fiber.Ctx) bool {
	user := GetCurrentUser(c)
	return user != nil && user.IsAdmin()
}

func IsFacultyOrAdmin(c *fiber.Ctx) bool {
	user := GetCurrentUser(c)
	return user != nil && (user.IsFaculty() || user.IsAdmin())
}
