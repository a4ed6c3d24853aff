package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/auth"
	"github.com/noah-isme/campus-od-api/internal/dto"
	"github.com/noah-isme/campus-od-api/internal/models"
	"github.com/noah-isme/campus-od-api/internal/repository"
)

// Auth errors surfaced to handlers.
var (
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrPasswordResetRequired    = errors.New("password reset required")
	ErrPasswordResetNotRequired = errors.New("password reset not required")
	ErrUserNotFound             = errors.New("user not found")
)

// AuthService handles login and password reset use cases.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthUserResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

type authService struct {
	credentials repository.CredentialRepository
	staff       repository.StaffRepository
	hasher      auth.Hasher
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(credentials repository.CredentialRepository, staff repository.StaffRepository, hasher auth.Hasher, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		credentials: credentials,
		staff:       staff,
		hasher:      hasher,
		validator:   validate,
		logger:      logger.With().Str("component", "auth_service").Logger(),
	}
}

// Login checks the credential and resolves the caller's role. Staff roles
// are read from the staff table at login time, never from a cached value.
// The reset-required flag blocks login before the password is even checked.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthUserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthUserResponse{}, err
	}

	credential, err := s.credentials.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthUserResponse{}, ErrInvalidCredentials
		}
		return dto.AuthUserResponse{}, err
	}

	if credential.PasswordResetRequired {
		return dto.AuthUserResponse{}, ErrPasswordResetRequired
	}

	if !s.hasher.Compare(credential.PasswordHash, req.Password) {
		return dto.AuthUserResponse{}, ErrInvalidCredentials
	}

	role := models.UserTypeStudent
	if credential.UserType == models.UserTypeStaff {
		role, err = s.staff.GetRole(ctx, credential.UserID)
		if err != nil {
			return dto.AuthUserResponse{}, err
		}
	}

	s.logger.Info().Str("user_id", credential.UserID).Str("role", role).Msg("login succeeded")

	return dto.AuthUserResponse{
		ID:       credential.ID,
		UserID:   credential.UserID,
		UserType: credential.UserType,
		Role:     role,
	}, nil
}

// ResetPassword replaces the hash and clears the reset flag, but only for
// accounts actually flagged for reset.
func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	credential, err := s.credentials.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !credential.PasswordResetRequired {
		return ErrPasswordResetNotRequired
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.credentials.ReplacePassword(ctx, credential.Email, hash); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", credential.UserID).Msg("password reset completed")

	return nil
}
