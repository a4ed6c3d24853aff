package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserCredential{},
		&models.Staff{},
		&models.Department{},
		&models.AcademicTerm{},
		&models.Student{},
		&models.Application{},
		&models.ApplicationStudent{},
	))

	return db
}

func seedStudent(t *testing.T, db *gorm.DB, regno, tutorID string, depID, termID uint) models.Student {
	t.Helper()

	student := models.Student{
		Regno:          regno,
		Name:           "Student " + regno,
		Section:        "A",
		DepID:          depID,
		AcademicTermID: termID,
		TutorID:        tutorID,
	}
	require.NoError(t, db.Create(&student).Error)

	return student
}
