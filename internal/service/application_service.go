package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/dto"
	"github.com/noah-isme/campus-od-api/internal/models"
	"github.com/noah-isme/campus-od-api/internal/repository"
)

// Application lifecycle errors surfaced to handlers. Not-found and
// not-owner are deliberately merged into one error.
var (
	ErrApplicationNotFound = errors.New("application not found or unauthorized")
	ErrApplicationLocked   = errors.New("application already approved by hod")
	ErrNoNewStudents       = errors.New("no new valid students to add")
	ErrParticipantNotFound = errors.New("student not found in application")
	ErrStudentNotFound     = errors.New("student not found")
)

const searchResultLimit = 10

const dateLayout = "2006-01-02"

// ApplicationService owns the student-facing application lifecycle.
type ApplicationService interface {
	Create(ctx context.Context, creatorRegno string, req dto.CreateApplicationRequest) (uint, error)
	Delete(ctx context.Context, requesterRegno string, applicationID uint) error
	AddStudents(ctx context.Context, requesterRegno string, applicationID uint, req dto.AddStudentsRequest) (int, error)
	RemoveStudent(ctx context.Context, requesterRegno string, applicationID uint, regno string) error
	Search(ctx context.Context, fragment string) ([]dto.StudentSearchResponse, error)
	Status(ctx context.Context, regno string) ([]repository.StatusRow, error)
	Activity(ctx context.Context, applicationID uint, regno string) (repository.ActivityRow, error)
}

type applicationService struct {
	applications repository.ApplicationRepository
	students     repository.StudentRepository
	validator    *validator.Validate
	sanitizer    *bluemonday.Policy
	logger       zerolog.Logger
}

// NewApplicationService constructs the application lifecycle service.
func NewApplicationService(applications repository.ApplicationRepository, students repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		applications: applications,
		students:     students,
		validator:    validate,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger.With().Str("component", "application_service").Logger(),
	}
}

// Create inserts the application and its roster atomically. Department and
// term are copied from the creator's student row, and the creator is always
// on the roster, as pending like everyone else: the mentor stays in the
// approval loop for the creator too.
func (s *applicationService) Create(ctx context.Context, creatorRegno string, req dto.CreateApplicationRequest) (uint, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, err
	}

	creator, err := s.students.GetByRegno(ctx, creatorRegno)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrStudentNotFound
		}
		return 0, err
	}

	fromDate, err := time.Parse(dateLayout, req.FromDate)
	if err != nil {
		return 0, err
	}
	toDate, err := time.Parse(dateLayout, req.ToDate)
	if err != nil {
		return 0, err
	}

	roster := dedupeRegnos(creatorRegno, req.Students)

	application := models.Application{
		EventName:         s.sanitizer.Sanitize(strings.TrimSpace(req.EventName)),
		FromDate:          fromDate,
		ToDate:            toDate,
		Type:              req.Type,
		AppliedBy:         creator.Regno,
		DepID:             creator.DepID,
		AcademicTermID:    creator.AcademicTermID,
		Status:            models.ApprovalPending,
		HodApprovalStatus: models.ApprovalPending,
	}

	if err := s.applications.CreateWithParticipants(ctx, &application, roster); err != nil {
		return 0, err
	}

	s.logger.Info().Uint("application_id", application.ID).Str("applied_by", creator.Regno).Int("participants", len(roster)).Msg("application created")

	return application.ID, nil
}

// Delete removes the application and its roster together, creator only.
// Once the HOD has approved, the application is immutable.
func (s *applicationService) Delete(ctx context.Context, requesterRegno string, applicationID uint) error {
	application, err := s.ownedUnlocked(ctx, requesterRegno, applicationID)
	if err != nil {
		return err
	}

	if err := s.applications.DeleteCascade(ctx, application.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("application_id", application.ID).Str("applied_by", requesterRegno).Msg("application deleted")

	return nil
}

// AddStudents extends the roster. Regnos already present are dropped
// silently; an empty effective set is an error. The store's unique index
// backs the de-dup against concurrent adds.
func (s *applicationService) AddStudents(ctx context.Context, requesterRegno string, applicationID uint, req dto.AddStudentsRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, err
	}

	application, err := s.ownedUnlocked(ctx, requesterRegno, applicationID)
	if err != nil {
		return 0, err
	}

	existing, err := s.applications.RosterRegnos(ctx, application.ID)
	if err != nil {
		return 0, err
	}

	present := make(map[string]struct{}, len(existing))
	for _, regno := range existing {
		present[regno] = struct{}{}
	}

	fresh := make([]string, 0, len(req.Students))
	for _, regno := range req.Students {
		regno = strings.TrimSpace(regno)
		if regno == "" {
			continue
		}
		if _, ok := present[regno]; ok {
			continue
		}
		present[regno] = struct{}{}
		fresh = append(fresh, regno)
	}

	if len(fresh) == 0 {
		return 0, ErrNoNewStudents
	}

	if err := s.applications.AddParticipants(ctx, application.ID, fresh); err != nil {
		return 0, err
	}

	s.logger.Info().Uint("application_id", application.ID).Int("added", len(fresh)).Msg("students added to application")

	return len(fresh), nil
}

// RemoveStudent deletes one roster row, creator only, never after HOD approval.
func (s *applicationService) RemoveStudent(ctx context.Context, requesterRegno string, applicationID uint, regno string) error {
	application, err := s.ownedUnlocked(ctx, requesterRegno, applicationID)
	if err != nil {
		return err
	}

	affected, err := s.applications.RemoveParticipant(ctx, application.ID, regno)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrParticipantNotFound
	}

	s.logger.Info().Uint("application_id", application.ID).Str("regno", regno).Msg("student removed from application")

	return nil
}

// Search is a lookup helper over regnos, capped at ten rows.
func (s *applicationService) Search(ctx context.Context, fragment string) ([]dto.StudentSearchResponse, error) {
	students, err := s.students.Search(ctx, strings.TrimSpace(fragment), searchResultLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StudentSearchResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentSearchResponse(student))
	}

	return responses, nil
}

// Status lists every application the student participates in.
func (s *applicationService) Status(ctx context.Context, regno string) ([]repository.StatusRow, error) {
	return s.applications.ListStatusByParticipant(ctx, regno)
}

// Activity returns the detailed view for one application the student is on.
func (s *applicationService) Activity(ctx context.Context, applicationID uint, regno string) (repository.ActivityRow, error) {
	row, err := s.applications.GetActivity(ctx, applicationID, regno)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ActivityRow{}, ErrApplicationNotFound
		}
		return repository.ActivityRow{}, err
	}

	return row, nil
}

// ownedUnlocked runs the shared ownership + mutability precondition for
// every mutation on an existing application.
func (s *applicationService) ownedUnlocked(ctx context.Context, requesterRegno string, applicationID uint) (models.Application, error) {
	application, err := s.applications.GetOwned(ctx, applicationID, requesterRegno)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Application{}, ErrApplicationNotFound
		}
		return models.Application{}, err
	}

	if application.HodApprovalStatus == models.ApprovalApproved {
		return models.Application{}, ErrApplicationLocked
	}

	return application, nil
}

func dedupeRegnos(creatorRegno string, regnos []string) []string {
	seen := map[string]struct{}{creatorRegno: {}}
	roster := []string{creatorRegno}
	for _, regno := range regnos {
		regno = strings.TrimSpace(regno)
		if regno == "" {
			continue
		}
		if _, ok := seen[regno]; ok {
			continue
		}
		seen[regno] = struct{}{}
		roster = append(roster, regno)
	}

	return roster
}
