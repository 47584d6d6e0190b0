package middleware

import (
	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const userIDKey = "userID"

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// RoleMiddleware gates management routes on a role tag from the user_roles
// table. Runs after AuthMiddleware.
func RoleMiddleware(db *gorm.DB, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == uuid.Nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		var count int64
		if err := db.Model(&models.UserRole{}).
			Where("user_id = ? AND role = ?", userID, role).
			Count(&count).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not query database",
			})
		}

		if count == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied. " + roleLabel(role) + " only.",
			})
		}

		return c.Next()
	}
}

// UserID returns the authenticated user's ID set by AuthMiddleware, or
// uuid.Nil when the request is unauthenticated.
func UserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func roleLabel(role string) string {
	switch role {
	case models.RoleEducator:
		return "Educators"
	case models.RoleRecruiter:
		return "Recruiters"
	case models.RoleStudent:
		return "Students"
	}
	return "Members"
}
