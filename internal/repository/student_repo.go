package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/models"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	GetByRegno(ctx context.Context, regno string) (models.Student, error)
	Search(ctx context.Context, fragment string, limit int) ([]models.Student, error)
	IsMentor(ctx context.Context, regno, staffID string) (bool, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) GetByRegno(ctx context.Context, regno string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("regno = ?", regno).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) Search(ctx context.Context, fragment string, limit int) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).
		Where("regno LIKE ?", "%"+fragment+"%").
		Limit(limit).
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	return students, nil
}

// IsMentor reports whether the staff member is the assigned tutor of the student.
func (r *studentRepository) IsMentor(ctx context.Context, regno, staffID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("regno = ? AND tutor_id = ?", regno, staffID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
