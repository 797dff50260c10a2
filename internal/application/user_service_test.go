package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/tenant"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/repository/mock"
	"github.com/linskybing/formflow/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --------------------- Setup ---------------------
func setupUserServiceMocks(t *testing.T) (*UserService, *mock.MockUserRepo, *mock.MockTenantRepo, *mock.MockAuditRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockUser := mock.NewMockUserRepo(ctrl)
	mockTenant := mock.NewMockTenantRepo(ctrl)
	mockAudit := mock.NewMockAuditRepo(ctrl)
	repos := &repository.Repos{
		User:   mockUser,
		Tenant: mockTenant,
		Audit:  mockAudit,
	}
	return NewUserService(repos), mockUser, mockTenant, mockAudit
}

func stubToken(t *testing.T) {
	oldGen := middleware.GenerateToken
	middleware.GenerateToken = func(u user.User, exp time.Duration) (string, error) {
		return "token-" + u.Name, nil
	}
	t.Cleanup(func() { middleware.GenerateToken = oldGen })
}

func ptrString(s string) *string { return &s }

var editor = form.Viewer{UserID: 1, TenantID: 10, Role: user.RoleEditor}

// --------------------- LoginUser ---------------------
func TestLoginUser_Success(t *testing.T) {
	svc, mockUser, mockTenant, _ := setupUserServiceMocks(t)
	stubToken(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	usr := user.User{ID: 1, TenantID: 10, Name: "bob", Email: "bob@test.com", Password: string(hashed), Role: user.RoleAdmin}

	mockUser.EXPECT().GetUserByEmail("bob@test.com").Return(usr, nil)
	mockTenant.EXPECT().GetByID(uint(10)).Return(tenant.Tenant{ID: 10, Name: "Acme"}, nil)

	sess, err := svc.LoginUser(context.Background(), user.LoginInput{Email: "  Bob@Test.com ", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "token-bob", sess.Token)
	assert.Equal(t, "Acme", sess.TenantName)
	assert.Equal(t, user.RoleAdmin, sess.Role)
}

func TestLoginUser_InvalidCredentials(t *testing.T) {
	svc, mockUser, _, _ := setupUserServiceMocks(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	mockUser.EXPECT().GetUserByEmail("bob@test.com").Return(user.User{Password: string(hashed)}, nil)
	_, err := svc.LoginUser(context.Background(), user.LoginInput{Email: "bob@test.com", Password: "wrong"})
	assert.Equal(t, ErrInvalidCredentials, err)

	mockUser.EXPECT().GetUserByEmail("ghost@test.com").Return(user.User{}, gorm.ErrRecordNotFound)
	_, err = svc.LoginUser(context.Background(), user.LoginInput{Email: "ghost@test.com", Password: "x"})
	assert.Equal(t, ErrInvalidCredentials, err)
}

// --------------------- FindUserByID ---------------------
func TestFindUserByID_OtherTenantHidden(t *testing.T) {
	svc, mockUser, _, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(uint(5)).Return(user.User{ID: 5, TenantID: 99}, nil)
	_, err := svc.FindUserByID(context.Background(), editor, 5)
	assert.Equal(t, ErrUserNotFound, err)

	mockUser.EXPECT().GetUserByID(uint(6)).Return(user.User{}, gorm.ErrRecordNotFound)
	_, err = svc.FindUserByID(context.Background(), editor, 6)
	assert.Equal(t, ErrUserNotFound, err)
}

// --------------------- CreateUser ---------------------
func TestCreateUser_ScopedToCallerTenant(t *testing.T) {
	svc, mockUser, _, mockAudit := setupUserServiceMocks(t)

	mockUser.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *user.User) error {
		assert.Equal(t, uint(10), u.TenantID)
		assert.Equal(t, "new@test.com", u.Email)
		assert.Equal(t, user.RoleAdmin, u.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")))
		u.ID = 7
		return nil
	})
	mockAudit.EXPECT().CreateAuditLog(gomock.Any()).DoAndReturn(func(entry *audit.AuditLog) error {
		assert.Equal(t, audit.ActionCreate, entry.Action)
		assert.Equal(t, "7", entry.ResourceID)
		assert.NotContains(t, string(entry.NewData), "secret1")
		return nil
	})

	usr, err := svc.CreateUser(context.Background(), editor, user.CreateUserInput{
		Name:     "New",
		Email:    "NEW@test.com",
		Password: "secret1",
		Role:     ptrString("Admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), usr.ID)
}

func TestCreateUser_EmailTaken(t *testing.T) {
	svc, mockUser, _, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().CreateUser(gomock.Any()).Return(repository.ErrEmailTaken)
	_, err := svc.CreateUser(context.Background(), editor, user.CreateUserInput{Name: "A", Email: "a@test.com", Password: "123456"})
	assert.True(t, errors.Is(err, ErrEmailTaken))
}

// --------------------- UpdateUser ---------------------
func TestUpdateUser_Success(t *testing.T) {
	svc, mockUser, _, mockAudit := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(uint(1)).Return(user.User{ID: 1, TenantID: 10, Name: "Old", Email: "old@test.com"}, nil)
	mockUser.EXPECT().SaveUser(gomock.Any()).Return(nil)
	mockAudit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	age := 31
	usr, err := svc.UpdateUser(context.Background(), editor, 1, user.UpdateUserInput{
		Name:  ptrString(" New "),
		Email: ptrString("New@Test.com"),
		Age:   &age,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", usr.Name)
	assert.Equal(t, "new@test.com", usr.Email)
	assert.Equal(t, 31, usr.Age)
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, mockUser, _, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(uint(2)).Return(user.User{}, gorm.ErrRecordNotFound)
	_, err := svc.UpdateUser(context.Background(), editor, 2, user.UpdateUserInput{})
	assert.Equal(t, ErrUserNotFound, err)
}

// --------------------- RemoveUser ---------------------
func TestRemoveUser(t *testing.T) {
	svc, mockUser, _, mockAudit := setupUserServiceMocks(t)

	assert.Equal(t, ErrCannotDeleteSelf, svc.RemoveUser(context.Background(), editor, editor.UserID))

	mockUser.EXPECT().GetUserByID(uint(3)).Return(user.User{ID: 3, TenantID: 10}, nil)
	mockUser.EXPECT().DeleteUser(uint(3)).Return(nil)
	mockAudit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)
	assert.NoError(t, svc.RemoveUser(context.Background(), editor, 3))
}

// --------------------- RegisterUser ---------------------
func TestRegisterUser_CreatesOrganization(t *testing.T) {
	stubToken(t)
	repos := repository.NewRepositories(testutils.NewSQLiteDB(t))
	svc := NewUserService(repos)

	sess, err := svc.RegisterUser(context.Background(), user.RegisterInput{Name: "Ali", Email: "Ali@NB.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "Ali's Organization", sess.TenantName)
	assert.Equal(t, user.RoleEditor, sess.Role)
	assert.Equal(t, "token-Ali", sess.Token)

	stored, err := repos.User.GetUserByEmail("ali@nb.com")
	require.NoError(t, err)
	assert.Equal(t, sess.TenantID, stored.TenantID)

	_, err = svc.RegisterUser(context.Background(), user.RegisterInput{Name: "Ali", Email: "ali@nb.com", Password: "password"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	tenants, err := repos.Tenant.List()
	require.NoError(t, err)
	assert.Len(t, tenants, 1)
}
