package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/repository"
	"github.com/noah-isme/campus-od-api/internal/session"
	"github.com/noah-isme/campus-od-api/internal/utils"
)

// Locals keys set by the session middleware.
const (
	LocalCredentialID = "credential_id"
	LocalUserID       = "user_id"
	LocalUserType     = "user_type"
	LocalUserRole     = "user_role"
)

// Protected resolves the caller's identity from the session cookie before
// any handler runs. The credential row is re-loaded on every request; the
// role attached here is the one baked into the token at login.
func Protected(sessions *session.Service, credentials repository.CredentialRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized - no token provided")
		}

		claims, err := sessions.Verify(token)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized - invalid token")
		}

		credential, err := credentials.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendError(c, fiber.StatusNotFound, "user not found")
			}
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}

		c.Locals(LocalCredentialID, credential.ID)
		c.Locals(LocalUserID, credential.UserID)
		c.Locals(LocalUserType, credential.UserType)
		c.Locals(LocalUserRole, claims.Role)

		return c.Next()
	}
}
