package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/models"
)

// DepartmentRow is an application joined with its creator for the broad
// department/section/term listing.
type DepartmentRow struct {
	ID                uint      `json:"id"`
	EventName         string    `json:"event_name"`
	FromDate          time.Time `json:"from_date"`
	ToDate            time.Time `json:"to_date"`
	Type              string    `json:"type"`
	AppliedBy         string    `json:"applied_by"`
	Status            string    `json:"status"`
	HodApprovalStatus string    `json:"hod_approval_status"`
	AppliedDate       time.Time `json:"applied_date"`
	Regno             string    `json:"regno"`
	StudentName       string    `json:"student_name"`
}

// MenteeRow is a pending roster entry belonging to one of the mentor's
// mentees.
type MenteeRow struct {
	ID          uint      `json:"id"`
	EventName   string    `json:"event_name"`
	FromDate    time.Time `json:"from_date"`
	ToDate      time.Time `json:"to_date"`
	Type        string    `json:"type"`
	Regno       string    `json:"regno"`
	StudentName string    `json:"student_name"`
}

// MenteeApplicationRow is a HOD-approved application of a specific mentee,
// including the mentor's own decision trail.
type MenteeApplicationRow struct {
	ID                   uint       `json:"id"`
	EventName            string     `json:"event_name"`
	FromDate             time.Time  `json:"from_date"`
	ToDate               time.Time  `json:"to_date"`
	Type                 string     `json:"type"`
	Status               string     `json:"status"`
	HodApprovalStatus    string     `json:"hod_approval_status"`
	MentorApprovalStatus string     `json:"mentor_approval_status"`
	MentorApprovalDate   *time.Time `json:"mentor_approval_date,omitempty"`
	MentorComment        string     `json:"mentor_comment"`
}

// ReviewRepository serves the staff-facing reads and the mentor decision write.
type ReviewRepository interface {
	ListByDepartment(ctx context.Context, department, section string, termID uint) ([]DepartmentRow, error)
	ListPendingMentees(ctx context.Context, staffID string) ([]MenteeRow, error)
	UpdateDecision(ctx context.Context, applicationID uint, regno, status, comment string, decidedAt time.Time) (int64, error)
	ListApprovedByRegno(ctx context.Context, regno string) ([]MenteeApplicationRow, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository constructs a review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) ListByDepartment(ctx context.Context, department, section string, termID uint) ([]DepartmentRow, error) {
	var rows []DepartmentRow
	err := r.db.WithContext(ctx).
		Table("applications").
		Select(`applications.id, applications.event_name, applications.from_date, applications.to_date,
			applications.type, applications.applied_by, applications.status,
			applications.hod_approval_status, applications.applied_date,
			students.regno, students.name AS student_name`).
		Joins("JOIN students ON students.regno = applications.applied_by").
		Joins("JOIN departments ON departments.id = students.dep_id").
		Where("departments.name = ? AND students.section = ? AND students.academic_term_id = ?",
			department, section, termID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *reviewRepository) ListPendingMentees(ctx context.Context, staffID string) ([]MenteeRow, error) {
	var rows []MenteeRow
	err := r.db.WithContext(ctx).
		Table("applications").
		Select(`applications.id, applications.event_name, applications.from_date, applications.to_date,
			applications.type, students.regno, students.name AS student_name`).
		Joins("JOIN application_students ON application_students.application_id = applications.id").
		Joins("JOIN students ON students.regno = application_students.regno").
		Where("students.tutor_id = ? AND application_students.mentor_approval_status = ?",
			staffID, models.ApprovalPending).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// UpdateDecision writes the mentor's decision onto one roster row and
// reports how many rows matched.
func (r *reviewRepository) UpdateDecision(ctx context.Context, applicationID uint, regno, status, comment string, decidedAt time.Time) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ApplicationStudent{}).
			Where("application_id = ? AND regno = ?", applicationID, regno).
			Updates(map[string]interface{}{
				"mentor_approval_status": status,
				"mentor_approval_date":   decidedAt,
				"mentor_comment":         comment,
			})
		affected = result.RowsAffected
		return result.Error
	})

	return affected, err
}

func (r *reviewRepository) ListApprovedByRegno(ctx context.Context, regno string) ([]MenteeApplicationRow, error) {
	var rows []MenteeApplicationRow
	err := r.db.WithContext(ctx).
		Table("applications").
		Select(`applications.id, applications.event_name, applications.from_date, applications.to_date,
			applications.type, applications.status, applications.hod_approval_status,
			application_students.mentor_approval_status, application_students.mentor_approval_date,
			application_students.mentor_comment`).
		Joins("JOIN application_students ON application_students.application_id = applications.id").
		Where("application_students.regno = ? AND applications.hod_approval_status = ?",
			regno, models.ApprovalApproved).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
