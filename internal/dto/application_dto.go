package dto

import (
	"github.com/noah-isme/campus-od-api/internal/models"
)

// CreateApplicationRequest submits a new OD/leave application. Students
// lists the participating regnos; the creator is always included whether or
// not it appears here.
type CreateApplicationRequest struct {
	EventName string   `json:"event_name" validate:"required,max=200"`
	FromDate  string   `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate    string   `json:"to_date" validate:"required,datetime=2006-01-02"`
	Type      string   `json:"type" validate:"required,oneof=od leave"`
	Students  []string `json:"students" validate:"omitempty,dive,required"`
}

// CreateApplicationResponse returns the id of the created application.
type CreateApplicationResponse struct {
	ApplicationID uint `json:"applicationId"`
}

// AddStudentsRequest extends an application roster.
type AddStudentsRequest struct {
	Students []string `json:"students" validate:"required,min=1,dive,required"`
}

// AddStudentsResponse reports how many roster rows were inserted.
type AddStudentsResponse struct {
	AddedCount int `json:"addedCount"`
}

// StudentSearchResponse is one row of the regno lookup helper.
type StudentSearchResponse struct {
	Regno   string `json:"regno"`
	Name    string `json:"name"`
	Section string `json:"section"`
}

// NewStudentSearchResponse converts a student model into the search projection.
func NewStudentSearchResponse(student models.Student) StudentSearchResponse {
	return StudentSearchResponse{
		Regno:   student.Regno,
		Name:    student.Name,
		Section: student.Section,
	}
}
