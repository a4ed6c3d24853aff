package dto

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResetPasswordRequest replaces a password flagged for reset.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// AuthUserResponse is the identity returned on successful login.
type AuthUserResponse struct {
	ID       uint   `json:"id"`
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
	Role     string `json:"role"`
}
