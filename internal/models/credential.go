package models

// User types stored on a credential row.
const (
	UserTypeStudent = "student"
	UserTypeStaff   = "staff"
)

// UserCredential holds login identity for both students and staff.
// UserID is the business key: a regno for students, a staff id for staff.
type UserCredential struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	UserID                string `gorm:"size:64;uniqueIndex;not null" json:"user_id"`
	Email                 string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	UserType              string `gorm:"size:16;not null" json:"user_type"`
	PasswordHash          string `gorm:"size:255;not null" json:"-"`
	PasswordResetRequired bool   `gorm:"not null;default:false" json:"password_reset_required"`
}
