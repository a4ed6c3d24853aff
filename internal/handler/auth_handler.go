package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-od-api/internal/dto"
	"github.com/noah-isme/campus-od-api/internal/service"
	"github.com/noah-isme/campus-od-api/internal/session"
	"github.com/noah-isme/campus-od-api/internal/utils"
)

// AuthHandler wires login, logout and password reset endpoints.
type AuthHandler struct {
	service  service.AuthService
	sessions *session.Service
	limiter  fiber.Handler
	logger   zerolog.Logger
}

// NewAuthHandler constructs the handler. The limiter guards the login route
// and may be nil in tests.
func NewAuthHandler(svc service.AuthService, sessions *session.Service, limiter fiber.Handler, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  svc,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches auth routes to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	if h.limiter != nil {
		router.Post("/login", h.limiter, h.login)
	} else {
		router.Post("/login", h.login)
	}
	router.Post("/logout", h.logout)
	router.Post("/reset-password", h.resetPassword)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Login(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid email or password")
		case errors.Is(err, service.ErrPasswordResetRequired):
			return utils.SendError(c, fiber.StatusForbidden, "reset your password")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	token, err := h.sessions.Issue(user.ID, user.Role)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to issue session token")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	c.Cookie(h.sessions.Cookie(token))

	return utils.SendSuccess(c, "logged in", user)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	c.Cookie(h.sessions.ClearCookie())
	return utils.SendSuccess(c, "logged out successfully", nil)
}

func (h *AuthHandler) resetPassword(c *fiber.Ctx) error {
	var payload dto.ResetPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ResetPassword(c.Context(), payload); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrPasswordResetNotRequired):
			return utils.SendError(c, fiber.StatusForbidden, "password reset not required")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("password reset failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccess(c, "password reset successfully", nil)
}
