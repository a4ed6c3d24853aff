package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/auth"
	"github.com/noah-isme/campus-od-api/internal/dto"
	"github.com/noah-isme/campus-od-api/internal/models"
)

type fakeCredentialRepo struct {
	byEmail          map[string]models.UserCredential
	replacedEmail    string
	replacedPassword string
}

func (f *fakeCredentialRepo) GetByID(_ context.Context, id uint) (models.UserCredential, error) {
	for _, credential := range f.byEmail {
		if credential.ID == id {
			return credential, nil
		}
	}
	return models.UserCredential{}, gorm.ErrRecordNotFound
}

func (f *fakeCredentialRepo) GetByEmail(_ context.Context, email string) (models.UserCredential, error) {
	credential, ok := f.byEmail[email]
	if !ok {
		return models.UserCredential{}, gorm.ErrRecordNotFound
	}
	return credential, nil
}

func (f *fakeCredentialRepo) ReplacePassword(_ context.Context, email, passwordHash string) error {
	f.replacedEmail = email
	f.replacedPassword = passwordHash
	return nil
}

type fakeStaffRoleRepo struct {
	roles map[string]string
}

func (f *fakeStaffRoleRepo) GetByStaffID(_ context.Context, staffID string) (models.Staff, error) {
	role, ok := f.roles[staffID]
	if !ok {
		return models.Staff{}, gorm.ErrRecordNotFound
	}
	return models.Staff{StaffID: staffID, Role: role}, nil
}

func (f *fakeStaffRoleRepo) GetRole(ctx context.Context, staffID string) (string, error) {
	staff, err := f.GetByStaffID(ctx, staffID)
	if err != nil {
		return "", err
	}
	return staff.Role, nil
}

func newAuthFixture(t *testing.T, credential models.UserCredential, roles map[string]string) (AuthService, *fakeCredentialRepo) {
	t.Helper()

	credentials := &fakeCredentialRepo{byEmail: map[string]models.UserCredential{credential.Email: credential}}
	staff := &fakeStaffRoleRepo{roles: roles}
	svc := NewAuthService(credentials, staff, auth.NewHasher(4), testValidator(), testLogger())

	return svc, credentials
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.NewHasher(4).Hash(password)
	require.NoError(t, err)
	return hash
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t, models.UserCredential{Email: "known@example.edu"}, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "unknown@example.edu", Password: "whatever1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t, models.UserCredential{
		ID:           1,
		UserID:       "REG001",
		Email:        "reg001@example.edu",
		UserType:     models.UserTypeStudent,
		PasswordHash: hashed(t, "right-password"),
	}, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "reg001@example.edu", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginResetRequiredBlocksEvenCorrectPassword(t *testing.T) {
	svc, _ := newAuthFixture(t, models.UserCredential{
		ID:                    1,
		UserID:                "REG001",
		Email:                 "reg001@example.edu",
		UserType:              models.UserTypeStudent,
		PasswordHash:          hashed(t, "right-password"),
		PasswordResetRequired: true,
	}, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "reg001@example.edu", Password: "right-password"})
	require.ErrorIs(t, err, ErrPasswordResetRequired)
}

func TestLoginResolvesStaffRoleFromStore(t *testing.T) {
	svc, _ := newAuthFixture(t, models.UserCredential{
		ID:           7,
		UserID:       "ST01",
		Email:        "st01@example.edu",
		UserType:     models.UserTypeStaff,
		PasswordHash: hashed(t, "staff-password"),
	}, map[string]string{"ST01": models.RoleHod})

	user, err := svc.Login(context.Background(), dto.LoginRequest{Email: "st01@example.edu", Password: "staff-password"})
	require.NoError(t, err)
	require.Equal(t, models.RoleHod, user.Role)
	require.Equal(t, models.UserTypeStaff, user.UserType)
	require.Equal(t, "ST01", user.UserID)
}

func TestLoginStudentRole(t *testing.T) {
	svc, _ := newAuthFixture(t, models.UserCredential{
		ID:           2,
		UserID:       "REG002",
		Email:        "reg002@example.edu",
		UserType:     models.UserTypeStudent,
		PasswordHash: hashed(t, "student-password"),
	}, nil)

	user, err := svc.Login(context.Background(), dto.LoginRequest{Email: "reg002@example.edu", Password: "student-password"})
	require.NoError(t, err)
	require.Equal(t, models.UserTypeStudent, user.Role)
}

func TestResetPasswordUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t, models.UserCredential{Email: "known@example.edu"}, nil)

	err := svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Email: "unknown@example.edu", NewPassword: "new-password"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetPasswordNotFlagged(t *testing.T) {
	svc, credentials := newAuthFixture(t, models.UserCredential{
		Email:                 "reg001@example.edu",
		PasswordResetRequired: false,
	}, nil)

	err := svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Email: "reg001@example.edu", NewPassword: "new-password"})
	require.ErrorIs(t, err, ErrPasswordResetNotRequired)
	require.Empty(t, credentials.replacedEmail)
}

func TestResetPasswordReplacesHash(t *testing.T) {
	svc, credentials := newAuthFixture(t, models.UserCredential{
		Email:                 "reg001@example.edu",
		PasswordResetRequired: true,
	}, nil)

	err := svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Email: "reg001@example.edu", NewPassword: "new-password"})
	require.NoError(t, err)
	require.Equal(t, "reg001@example.edu", credentials.replacedEmail)
	require.True(t, auth.NewHasher(4).Compare(credentials.replacedPassword, "new-password"))
}
