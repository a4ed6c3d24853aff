package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/models"
)

// StaffRepository provides access to staff records. GetRole reads the
// current role straight from the store so role changes take effect without
// re-login.
type StaffRepository interface {
	GetByStaffID(ctx context.Context, staffID string) (models.Staff, error)
	GetRole(ctx context.Context, staffID string) (string, error)
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository constructs a staff repository.
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) GetByStaffID(ctx context.Context, staffID string) (models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Where("staff_id = ?", staffID).First(&staff).Error; err != nil {
		return models.Staff{}, err
	}

	return staff, nil
}

func (r *staffRepository) GetRole(ctx context.Context, staffID string) (string, error) {
	staff, err := r.GetByStaffID(ctx, staffID)
	if err != nil {
		return "", err
	}

	return staff.Role, nil
}
