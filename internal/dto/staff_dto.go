package dto

// DepartmentApplicationsRequest filters the broad staff listing.
type DepartmentApplicationsRequest struct {
	Department string `validate:"required"`
	Section    string `validate:"required"`
	TermID     uint   `validate:"required"`
}

// DecisionRequest is a mentor's approve/reject decision on one roster row.
// The status enum is closed at the boundary; pending is not a decision.
type DecisionRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved rejected"`
	Comment string `json:"comment" validate:"max=1000"`
}
