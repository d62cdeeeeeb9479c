package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Đọc thông tin đã được AuthMiddleware lưu vào Locals.

func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Thiếu user ID trong phiên đăng nhập")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User ID không hợp lệ")
	}
	return id, nil
}

func GetRolesFromLocals(c *fiber.Ctx) []string {
	if roles, ok := c.Locals("roles").([]string); ok {
		return roles
	}
	return nil
}

func HasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func HasAnyRole(roles []string, allowed []string) bool {
	for _, r := range roles {
		for _, a := range allowed {
			if r == a {
				return true
			}
		}
	}
	return false
}

// GetClassIDFromLocals trả về class_id của GVCN (nil nếu không phải GVCN).
func GetClassIDFromLocals(c *fiber.Ctx) *uuid.UUID {
	raw, ok := c.Locals("class_id").(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
