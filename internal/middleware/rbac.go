package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/models"
	"github.com/noah-isme/campus-od-api/internal/repository"
	"github.com/noah-isme/campus-od-api/internal/utils"
)

// RequireRole ensures the caller holds one of the allowed roles. Staff
// callers have their role re-fetched from the staff table on every request,
// so a role change takes effect without re-login; student callers carry a
// single fixed role and the token claim is trusted.
func RequireRole(staff repository.StaffRepository, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := strings.ToLower(strings.TrimSpace(role))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		role := localString(c, LocalUserRole)

		if localString(c, LocalUserType) == models.UserTypeStaff {
			current, err := staff.GetRole(c.Context(), localString(c, LocalUserID))
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.SendError(c, fiber.StatusForbidden, "forbidden")
				}
				return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
			}
			role = current
		}

		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "forbidden")
		}

		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	if v := c.Locals(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
