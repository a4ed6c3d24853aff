package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/models"
)

// StatusRow is the joined projection a student sees for each application
// they participate in.
type StatusRow struct {
	ID                   uint      `json:"id"`
	EventName            string    `json:"event_name"`
	FromDate             time.Time `json:"from_date"`
	ToDate               time.Time `json:"to_date"`
	Type                 string    `json:"type"`
	Status               string    `json:"status"`
	HodApprovalStatus    string    `json:"hod_approval_status"`
	MentorApprovalStatus string    `json:"mentor_approval_status"`
}

// ActivityRow is the detailed projection for one (application, participant)
// pair, including department and term names.
type ActivityRow struct {
	ID                   uint       `json:"id"`
	EventName            string     `json:"event_name"`
	AppliedDate          time.Time  `json:"applied_date"`
	Status               string     `json:"status"`
	HodApprovalStatus    string     `json:"hod_approval_status"`
	Department           string     `json:"department"`
	AcademicTerm         string     `json:"academic_term"`
	MentorApprovalStatus string     `json:"mentor_approval_status"`
	MentorApprovalDate   *time.Time `json:"mentor_approval_date,omitempty"`
	MentorComment        string     `json:"mentor_comment"`
}

// ApplicationRepository persists applications and their participant rosters.
// Every multi-row mutation runs inside one transaction.
type ApplicationRepository interface {
	CreateWithParticipants(ctx context.Context, application *models.Application, regnos []string) error
	GetOwned(ctx context.Context, id uint, regno string) (models.Application, error)
	DeleteCascade(ctx context.Context, id uint) error
	RosterRegnos(ctx context.Context, id uint) ([]string, error)
	AddParticipants(ctx context.Context, id uint, regnos []string) error
	RemoveParticipant(ctx context.Context, id uint, regno string) (int64, error)
	ListStatusByParticipant(ctx context.Context, regno string) ([]StatusRow, error)
	GetActivity(ctx context.Context, id uint, regno string) (ActivityRow, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository constructs an application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// CreateWithParticipants inserts the application row and one roster row per
// regno, all-or-nothing. The unique index on (application_id, regno) fails
// the whole transaction on a duplicate.
func (r *applicationRepository) CreateWithParticipants(ctx context.Context, application *models.Application, regnos []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(application).Error; err != nil {
			return err
		}

		participants := make([]models.ApplicationStudent, 0, len(regnos))
		for _, regno := range regnos {
			participants = append(participants, models.ApplicationStudent{
				ApplicationID:        application.ID,
				Regno:                regno,
				MentorApprovalStatus: models.ApprovalPending,
			})
		}

		return tx.Create(&participants).Error
	})
}

// GetOwned fetches the application only when the regno is its creator.
// Not-found and not-owner are indistinguishable to the caller.
func (r *applicationRepository) GetOwned(ctx context.Context, id uint, regno string) (models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).
		Where("id = ? AND applied_by = ?", id, regno).
		First(&application).Error
	if err != nil {
		return models.Application{}, err
	}

	return application, nil
}

// DeleteCascade removes the roster rows and the application together.
func (r *applicationRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", id).Delete(&models.ApplicationStudent{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Application{}, id).Error
	})
}

func (r *applicationRepository) RosterRegnos(ctx context.Context, id uint) ([]string, error) {
	var regnos []string
	err := r.db.WithContext(ctx).
		Model(&models.ApplicationStudent{}).
		Where("application_id = ?", id).
		Pluck("regno", &regnos).Error
	if err != nil {
		return nil, err
	}

	return regnos, nil
}

func (r *applicationRepository) AddParticipants(ctx context.Context, id uint, regnos []string) error {
	participants := make([]models.ApplicationStudent, 0, len(regnos))
	for _, regno := range regnos {
		participants = append(participants, models.ApplicationStudent{
			ApplicationID:        id,
			Regno:                regno,
			MentorApprovalStatus: models.ApprovalPending,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&participants).Error
	})
}

// RemoveParticipant deletes one roster row and reports how many rows matched.
func (r *applicationRepository) RemoveParticipant(ctx context.Context, id uint, regno string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("application_id = ? AND regno = ?", id, regno).
		Delete(&models.ApplicationStudent{})

	return result.RowsAffected, result.Error
}

func (r *applicationRepository) ListStatusByParticipant(ctx context.Context, regno string) ([]StatusRow, error) {
	var rows []StatusRow
	err := r.db.WithContext(ctx).
		Table("applications").
		Select(`applications.id, applications.event_name, applications.from_date, applications.to_date,
			applications.type, applications.status, applications.hod_approval_status,
			application_students.mentor_approval_status`).
		Joins("JOIN application_students ON application_students.application_id = applications.id").
		Where("application_students.regno = ?", regno).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *applicationRepository) GetActivity(ctx context.Context, id uint, regno string) (ActivityRow, error) {
	var row ActivityRow
	result := r.db.WithContext(ctx).
		Table("applications").
		Select(`applications.id, applications.event_name, applications.applied_date, applications.status,
			applications.hod_approval_status, departments.name AS department,
			academic_terms.name AS academic_term, application_students.mentor_approval_status,
			application_students.mentor_approval_date, application_students.mentor_comment`).
		Joins("JOIN application_students ON application_students.application_id = applications.id").
		Joins("JOIN departments ON departments.id = applications.dep_id").
		Joins("JOIN academic_terms ON academic_terms.id = applications.academic_term_id").
		Where("applications.id = ? AND application_students.regno = ?", id, regno).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return ActivityRow{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ActivityRow{}, gorm.ErrRecordNotFound
	}

	return row, nil
}
