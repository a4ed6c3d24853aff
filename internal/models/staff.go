package models

// Staff roles recognised by the role guard.
const (
	RoleStaff = "staff"
	RoleHod   = "hod"
	RoleAdmin = "admin"
)

// Staff represents a staff member and the role that gates their access.
// StaffID matches the UserID of the staff-type credential.
type Staff struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	StaffID string `gorm:"size:64;uniqueIndex;not null" json:"staff_id"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Role    string `gorm:"size:16;not null;default:staff" json:"role"`
	DepID   uint   `json:"dep_id"`
}
