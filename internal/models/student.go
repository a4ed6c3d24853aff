package models

// Student represents an enrolled student. TutorID references the staff
// member (Staff.StaffID) acting as the student's mentor.
type Student struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Regno          string `gorm:"size:64;uniqueIndex;not null" json:"regno"`
	Name           string `gorm:"size:255;not null" json:"name"`
	Section        string `gorm:"size:16" json:"section"`
	DepID          uint   `gorm:"not null" json:"dep_id"`
	AcademicTermID uint   `gorm:"not null" json:"academic_term_id"`
	TutorID        string `gorm:"size:64;index" json:"tutor_id"`
}

// Department is a lookup row referenced by students and applications.
type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

// AcademicTerm is a lookup row for the semester an application belongs to.
type AcademicTerm struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;not null" json:"name"`
}
