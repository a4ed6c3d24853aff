package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-od-api/internal/dto"
	"github.com/noah-isme/campus-od-api/internal/service"
	"github.com/noah-isme/campus-od-api/internal/utils"
)

// StudentHandler wires the student-facing application lifecycle endpoints.
type StudentHandler struct {
	service service.ApplicationService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(svc service.ApplicationService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: svc,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches student routes to the router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Post("/applications", h.create)
	router.Get("/search", h.search)
	router.Get("/applications/status", h.status)
	router.Delete("/applications/:applicationId", h.delete)
	router.Get("/applications/:applicationId/activities", h.activities)
	router.Delete("/applications/:applicationId/students/:regno", h.removeStudent)
	router.Post("/applications/:applicationId/students", h.addStudents)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateApplicationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	applicationID, err := h.service.Create(c.Context(), regnoFromContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create application")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendCreated(c, "application created successfully", dto.CreateApplicationResponse{ApplicationID: applicationID})
}

func (h *StudentHandler) delete(c *fiber.Ctx) error {
	applicationID, err := parseUintParam(c, "applicationId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid application id")
	}

	if err := h.service.Delete(c.Context(), regnoFromContext(c), applicationID); err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "application not found or unauthorized")
		case errors.Is(err, service.ErrApplicationLocked):
			return utils.SendError(c, fiber.StatusForbidden, "cannot delete an approved application")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete application")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccess(c, "application deleted successfully", nil)
}

func (h *StudentHandler) search(c *fiber.Ctx) error {
	students, err := h.service.Search(c.Context(), c.Query("regno"))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to search students")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) status(c *fiber.Ctx) error {
	rows, err := h.service.Status(c.Context(), regnoFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch application status")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "applications retrieved", rows)
}

func (h *StudentHandler) activities(c *fiber.Ctx) error {
	applicationID, err := parseUintParam(c, "applicationId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid application id")
	}

	row, err := h.service.Activity(c.Context(), applicationID, regnoFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "application not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch application activities")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "application activities retrieved", row)
}

func (h *StudentHandler) removeStudent(c *fiber.Ctx) error {
	applicationID, err := parseUintParam(c, "applicationId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid application id")
	}

	if err := h.service.RemoveStudent(c.Context(), regnoFromContext(c), applicationID, c.Params("regno")); err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "application not found or unauthorized")
		case errors.Is(err, service.ErrApplicationLocked):
			return utils.SendError(c, fiber.StatusForbidden, "cannot delete students from an approved application")
		case errors.Is(err, service.ErrParticipantNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found in application")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to remove student")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccess(c, "student removed from application successfully", nil)
}

func (h *StudentHandler) addStudents(c *fiber.Ctx) error {
	applicationID, err := parseUintParam(c, "applicationId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid application id")
	}

	var payload dto.AddStudentsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	added, err := h.service.AddStudents(c.Context(), regnoFromContext(c), applicationID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "application not found or unauthorized access")
		case errors.Is(err, service.ErrApplicationLocked):
			return utils.SendError(c, fiber.StatusForbidden, "cannot add students to an approved application")
		case errors.Is(err, service.ErrNoNewStudents):
			return utils.SendError(c, fiber.StatusBadRequest, "no new valid students to add")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to add students")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccess(c, "students added successfully", dto.AddStudentsResponse{AddedCount: added})
}
