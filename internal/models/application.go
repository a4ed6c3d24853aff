package models

import "time"

// Approval statuses shared by the mentor and HOD stages.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Application types accepted at creation.
const (
	ApplicationTypeOD    = "od"
	ApplicationTypeLeave = "leave"
)

// Application is a leave/on-duty request submitted by a student. AppliedBy
// is the regno of the creating student; department and term are copied from
// the creator's student row at creation time.
type Application struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	EventName         string    `gorm:"size:255;not null" json:"event_name"`
	FromDate          time.Time `gorm:"not null" json:"from_date"`
	ToDate            time.Time `gorm:"not null" json:"to_date"`
	Type              string    `gorm:"size:16;not null" json:"type"`
	AppliedBy         string    `gorm:"size:64;index;not null" json:"applied_by"`
	DepID             uint      `gorm:"not null" json:"dep_id"`
	AcademicTermID    uint      `gorm:"not null" json:"academic_term_id"`
	Status            string    `gorm:"size:16;not null;default:pending" json:"status"`
	HodApprovalStatus string    `gorm:"size:16;not null;default:pending" json:"hod_approval_status"`
	AppliedDate       time.Time `gorm:"autoCreateTime" json:"applied_date"`
}

// ApplicationStudent is one participant on an application's roster. The
// composite unique index makes duplicate roster entries impossible at the
// store, regardless of concurrent add requests.
type ApplicationStudent struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	ApplicationID        uint       `gorm:"uniqueIndex:idx_application_regno;not null" json:"application_id"`
	Regno                string     `gorm:"size:64;uniqueIndex:idx_application_regno;not null" json:"regno"`
	MentorApprovalStatus string     `gorm:"size:16;not null;default:pending" json:"mentor_approval_status"`
	MentorApprovalDate   *time.Time `json:"mentor_approval_date,omitempty"`
	MentorComment        string     `gorm:"size:1000" json:"mentor_comment"`
}
