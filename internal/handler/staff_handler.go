package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-od-api/internal/dto"
	"github.com/noah-isme/campus-od-api/internal/service"
	"github.com/noah-isme/campus-od-api/internal/utils"
)

// StaffHandler wires the mentor/HOD-facing review endpoints.
type StaffHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewStaffHandler constructs the handler.
func NewStaffHandler(svc service.ReviewService, logger zerolog.Logger) *StaffHandler {
	return &StaffHandler{
		service: svc,
		logger:  logger.With().Str("component", "staff_handler").Logger(),
	}
}

// Register attaches staff routes to the router group.
func (h *StaffHandler) Register(router fiber.Router) {
	router.Get("/department-applications", h.departmentApplications)
	router.Get("/mentee-applications", h.menteeApplications)
	router.Post("/applications/:applicationId/students/:regno/approve", h.approve)
	router.Get("/student-applications", h.studentApplications)
}

func (h *StaffHandler) departmentApplications(c *fiber.Ctx) error {
	termID, err := strconv.ParseUint(strings.TrimSpace(c.Query("semester")), 10, 32)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid semester")
	}

	req := dto.DepartmentApplicationsRequest{
		Department: c.Query("department"),
		Section:    c.Query("section"),
		TermID:     uint(termID),
	}

	rows, err := h.service.DepartmentApplications(c.Context(), req)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch department applications")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "applications retrieved", rows)
}

func (h *StaffHandler) menteeApplications(c *fiber.Ctx) error {
	rows, err := h.service.PendingMentees(c.Context(), regnoFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch mentee applications")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "mentee applications retrieved", rows)
}

func (h *StaffHandler) approve(c *fiber.Ctx) error {
	applicationID, err := parseUintParam(c, "applicationId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid application id")
	}

	var payload dto.DecisionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Decide(c.Context(), regnoFromContext(c), applicationID, c.Params("regno"), payload); err != nil {
		switch {
		case errors.Is(err, service.ErrNotMentor):
			return utils.SendError(c, fiber.StatusForbidden, "unauthorized - not the student's mentor")
		case errors.Is(err, service.ErrParticipantNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found in application")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record decision")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccess(c, "application status updated", nil)
}

func (h *StaffHandler) studentApplications(c *fiber.Ctx) error {
	regno := strings.TrimSpace(c.Query("regno"))
	if regno == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "regno is required")
	}

	rows, err := h.service.StudentApplications(c.Context(), regnoFromContext(c), regno)
	if err != nil {
		if errors.Is(err, service.ErrNotMentor) {
			return utils.SendError(c, fiber.StatusForbidden, "unauthorized - not the student's mentor")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch student applications")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "student applications retrieved", rows)
}
