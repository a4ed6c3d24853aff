package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-od-api/internal/dto"
	"github.com/noah-isme/campus-od-api/internal/observability"
	"github.com/noah-isme/campus-od-api/internal/repository"
)

// ErrNotMentor rejects staff acting on students they do not mentor.
var ErrNotMentor = errors.New("not the student's mentor")

// ReviewService owns the mentor/HOD-facing reads and the mentor decision.
type ReviewService interface {
	DepartmentApplications(ctx context.Context, req dto.DepartmentApplicationsRequest) ([]repository.DepartmentRow, error)
	PendingMentees(ctx context.Context, staffID string) ([]repository.MenteeRow, error)
	Decide(ctx context.Context, staffID string, applicationID uint, regno string, req dto.DecisionRequest) error
	StudentApplications(ctx context.Context, staffID, regno string) ([]repository.MenteeApplicationRow, error)
}

type reviewService struct {
	reviews   repository.ReviewRepository
	students  repository.StudentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewReviewService constructs the staff review service.
func NewReviewService(reviews repository.ReviewRepository, students repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviews:   reviews,
		students:  students,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "review_service").Logger(),
	}
}

// DepartmentApplications is the broad three-dimension listing. Any staff
// role may query any department; only the route role gate applies.
func (s *reviewService) DepartmentApplications(ctx context.Context, req dto.DepartmentApplicationsRequest) ([]repository.DepartmentRow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	return s.reviews.ListByDepartment(ctx, strings.TrimSpace(req.Department), strings.TrimSpace(req.Section), req.TermID)
}

// PendingMentees lists roster entries awaiting this mentor's decision.
func (s *reviewService) PendingMentees(ctx context.Context, staffID string) ([]repository.MenteeRow, error) {
	return s.reviews.ListPendingMentees(ctx, staffID)
}

// Decide records an approve/reject decision. The status enum is validated
// before any store write, and the mentorship relation is checked first; a
// decision on a student missing from the roster reports not-found.
func (s *reviewService) Decide(ctx context.Context, staffID string, applicationID uint, regno string, req dto.DecisionRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	mentor, err := s.students.IsMentor(ctx, regno, staffID)
	if err != nil {
		return err
	}
	if !mentor {
		return ErrNotMentor
	}

	comment := s.sanitizer.Sanitize(strings.TrimSpace(req.Comment))
	affected, err := s.reviews.UpdateDecision(ctx, applicationID, regno, req.Status, comment, time.Now())
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrParticipantNotFound
	}

	observability.ApprovalDecisions().WithLabelValues(req.Status).Inc()
	s.logger.Info().
		Uint("application_id", applicationID).
		Str("regno", regno).
		Str("staff_id", staffID).
		Str("status", req.Status).
		Msg("mentor decision recorded")

	return nil
}

// StudentApplications lists a mentee's HOD-approved applications, mentor only.
func (s *reviewService) StudentApplications(ctx context.Context, staffID, regno string) ([]repository.MenteeApplicationRow, error) {
	mentor, err := s.students.IsMentor(ctx, regno, staffID)
	if err != nil {
		return nil, err
	}
	if !mentor {
		return nil, ErrNotMentor
	}

	return s.reviews.ListApprovedByRegno(ctx, regno)
}
