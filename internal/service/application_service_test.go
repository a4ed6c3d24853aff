package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/dto"
	"github.com/noah-isme/campus-od-api/internal/models"
	"github.com/noah-isme/campus-od-api/internal/repository"
)

type fakeApplicationRepo struct {
	applications   map[uint]models.Application
	rosters        map[uint][]string
	createdRoster  []string
	addedRoster    []string
	removeAffected int64
	deleteCalls    int
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[uint]models.Application),
		rosters:      make(map[uint][]string),
	}
}

func (f *fakeApplicationRepo) CreateWithParticipants(_ context.Context, application *models.Application, regnos []string) error {
	application.ID = uint(len(f.applications) + 1)
	f.applications[application.ID] = *application
	f.rosters[application.ID] = regnos
	f.createdRoster = regnos
	return nil
}

func (f *fakeApplicationRepo) GetOwned(_ context.Context, id uint, regno string) (models.Application, error) {
	application, ok := f.applications[id]
	if !ok || application.AppliedBy != regno {
		return models.Application{}, gorm.ErrRecordNotFound
	}
	return application, nil
}

func (f *fakeApplicationRepo) DeleteCascade(_ context.Context, id uint) error {
	f.deleteCalls++
	delete(f.applications, id)
	delete(f.rosters, id)
	return nil
}

func (f *fakeApplicationRepo) RosterRegnos(_ context.Context, id uint) ([]string, error) {
	return f.rosters[id], nil
}

func (f *fakeApplicationRepo) AddParticipants(_ context.Context, id uint, regnos []string) error {
	f.addedRoster = regnos
	f.rosters[id] = append(f.rosters[id], regnos...)
	return nil
}

func (f *fakeApplicationRepo) RemoveParticipant(_ context.Context, id uint, regno string) (int64, error) {
	return f.removeAffected, nil
}

func (f *fakeApplicationRepo) ListStatusByParticipant(_ context.Context, regno string) ([]repository.StatusRow, error) {
	return nil, nil
}

func (f *fakeApplicationRepo) GetActivity(_ context.Context, id uint, regno string) (repository.ActivityRow, error) {
	return repository.ActivityRow{}, gorm.ErrRecordNotFound
}

type fakeStudentLookup struct {
	students map[string]models.Student
	mentors  map[string]string
}

func (f *fakeStudentLookup) GetByRegno(_ context.Context, regno string) (models.Student, error) {
	student, ok := f.students[regno]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (f *fakeStudentLookup) Search(_ context.Context, fragment string, limit int) ([]models.Student, error) {
	var matches []models.Student
	for _, student := range f.students {
		matches = append(matches, student)
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

func (f *fakeStudentLookup) IsMentor(_ context.Context, regno, staffID string) (bool, error) {
	return f.mentors[regno] == staffID, nil
}

func newApplicationFixture() (ApplicationService, *fakeApplicationRepo, *fakeStudentLookup) {
	applications := newFakeApplicationRepo()
	students := &fakeStudentLookup{
		students: map[string]models.Student{
			"REG001": {Regno: "REG001", Name: "Asha", Section: "A", DepID: 3, AcademicTermID: 6, TutorID: "ST01"},
		},
		mentors: map[string]string{"REG001": "ST01"},
	}
	svc := NewApplicationService(applications, students, testValidator(), testLogger())

	return svc, applications, students
}

func validCreateRequest() dto.CreateApplicationRequest {
	return dto.CreateApplicationRequest{
		EventName: "Hackathon",
		FromDate:  "2026-03-10",
		ToDate:    "2026-03-12",
		Type:      models.ApplicationTypeOD,
		Students:  []string{"REG002", "REG003"},
	}
}

func TestCreateIncludesCreatorAndCopiesDepartment(t *testing.T) {
	svc, applications, _ := newApplicationFixture()

	id, err := svc.Create(context.Background(), "REG001", validCreateRequest())
	require.NoError(t, err)
	require.NotZero(t, id)
	require.Equal(t, []string{"REG001", "REG002", "REG003"}, applications.createdRoster)

	created := applications.applications[id]
	require.Equal(t, "REG001", created.AppliedBy)
	require.EqualValues(t, 3, created.DepID)
	require.EqualValues(t, 6, created.AcademicTermID)
	require.Equal(t, models.ApprovalPending, created.HodApprovalStatus)
}

func TestCreateDedupesSubmittedRoster(t *testing.T) {
	svc, applications, _ := newApplicationFixture()

	req := validCreateRequest()
	req.Students = []string{"REG002", "REG002", "REG001", " "}

	_, err := svc.Create(context.Background(), "REG001", req)
	require.NoError(t, err)
	require.Equal(t, []string{"REG001", "REG002"}, applications.createdRoster)
}

func TestCreateUnknownCreator(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	_, err := svc.Create(context.Background(), "REG999", validCreateRequest())
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestCreateRejectsBadPayload(t *testing.T) {
	svc, applications, _ := newApplicationFixture()

	req := validCreateRequest()
	req.Type = "vacation"
	_, err := svc.Create(context.Background(), "REG001", req)
	require.Error(t, err)

	req = validCreateRequest()
	req.FromDate = "10-03-2026"
	_, err = svc.Create(context.Background(), "REG001", req)
	require.Error(t, err)

	require.Empty(t, applications.applications)
}

func TestCreateStripsMarkupFromEventName(t *testing.T) {
	svc, applications, _ := newApplicationFixture()

	req := validCreateRequest()
	req.EventName = "<script>alert(1)</script>Symposium"

	id, err := svc.Create(context.Background(), "REG001", req)
	require.NoError(t, err)
	require.Equal(t, "Symposium", applications.applications[id].EventName)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc, applications, _ := newApplicationFixture()

	id, err := svc.Create(context.Background(), "REG001", validCreateRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "REG002", id)
	require.ErrorIs(t, err, ErrApplicationNotFound)
	require.Zero(t, applications.deleteCalls)

	require.NoError(t, svc.Delete(context.Background(), "REG001", id))
	require.Equal(t, 1, applications.deleteCalls)
}

func TestDeleteRefusedOnceHodApproved(t *testing.T) {
	svc, applications, _ := newApplicationFixture()

	id, err := svc.Create(context.Background(), "REG001", validCreateRequest())
	require.NoError(t, err)

	locked := applications.applications[id]
	locked.HodApprovalStatus = models.ApprovalApproved
	applications.applications[id] = locked

	err = svc.Delete(context.Background(), "REG001", id)
	require.ErrorIs(t, err, ErrApplicationLocked)
	require.Zero(t, applications.deleteCalls)
}

func TestAddStudentsDropsExistingAndCounts(t *testing.T) {
	svc, applications, _ := newApplicationFixture()

	id, err := svc.Create(context.Background(), "REG001", validCreateRequest())
	require.NoError(t, err)

	added, err := svc.AddStudents(context.Background(), "REG001", id, dto.AddStudentsRequest{
		Students: []string{"REG002", "REG004", "REG004", "REG005"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, added)
	require.Equal(t, []string{"REG004", "REG005"}, applications.addedRoster)
}

func TestAddStudentsAllDuplicatesIsBadRequest(t *testing.T) {
	svc, applications, _ := newApplicationFixture()

	id, err := svc.Create(context.Background(), "REG001", validCreateRequest())
	require.NoError(t, err)

	_, err = svc.AddStudents(context.Background(), "REG001", id, dto.AddStudentsRequest{Students: []string{"REG002"}})
	require.ErrorIs(t, err, ErrNoNewStudents)
	require.Empty(t, applications.addedRoster)
}

func TestAddStudentsLockedApplication(t *testing.T) {
	svc, applications, _ := newApplicationFixture()

	id, err := svc.Create(context.Background(), "REG001", validCreateRequest())
	require.NoError(t, err)

	locked := applications.applications[id]
	locked.HodApprovalStatus = models.ApprovalApproved
	applications.applications[id] = locked

	_, err = svc.AddStudents(context.Background(), "REG001", id, dto.AddStudentsRequest{Students: []string{"REG009"}})
	require.ErrorIs(t, err, ErrApplicationLocked)
	require.Empty(t, applications.addedRoster)
}

func TestRemoveStudentNotOnRoster(t *testing.T) {
	svc, applications, _ := newApplicationFixture()

	id, err := svc.Create(context.Background(), "REG001", validCreateRequest())
	require.NoError(t, err)

	applications.removeAffected = 0
	err = svc.RemoveStudent(context.Background(), "REG001", id, "REG999")
	require.ErrorIs(t, err, ErrParticipantNotFound)

	applications.removeAffected = 1
	require.NoError(t, svc.RemoveStudent(context.Background(), "REG001", id, "REG002"))
}
