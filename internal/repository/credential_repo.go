package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/models"
)

// CredentialRepository provides access to login credentials.
type CredentialRepository interface {
	GetByID(ctx context.Context, id uint) (models.UserCredential, error)
	GetByEmail(ctx context.Context, email string) (models.UserCredential, error)
	ReplacePassword(ctx context.Context, email, passwordHash string) error
}

type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository constructs a credential repository.
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) GetByID(ctx context.Context, id uint) (models.UserCredential, error) {
	var credential models.UserCredential
	if err := r.db.WithContext(ctx).First(&credential, id).Error; err != nil {
		return models.UserCredential{}, err
	}

	return credential, nil
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (models.UserCredential, error) {
	var credential models.UserCredential
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&credential).Error; err != nil {
		return models.UserCredential{}, err
	}

	return credential, nil
}

// ReplacePassword stores a new hash and clears the reset-required flag in one update.
func (r *credentialRepository) ReplacePassword(ctx context.Context, email, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&models.UserCredential{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"password_hash":           passwordHash,
			"password_reset_required": false,
		}).Error
}
