package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/tenant"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resourceUser = "user"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPasswordHashFailure = errors.New("failed to hash password")
	ErrEmailTaken          = repository.ErrEmailTaken
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
)

type UserService struct {
	Repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{
		Repos: repos,
	}
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrPasswordHashFailure
	}
	return string(hashed), nil
}

// RegisterUser opens a new organization for the caller and makes them its
// first member.
func (s *UserService) RegisterUser(ctx context.Context, input user.RegisterInput) (*user.Session, error) {
	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	t := tenant.Tenant{Name: name + "'s Organization"}
	usr := user.User{
		Name:     name,
		Email:    user.NormalizeEmail(input.Email),
		Password: hashed,
		Role:     user.RoleEditor,
	}

	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		if err := tx.Tenant.Create(&t); err != nil {
			return err
		}
		usr.TenantID = t.ID
		if err := tx.User.CreateUser(&usr); err != nil {
			return err
		}
		return utils.LogAudit(ctx, tx.Audit, t.ID, usr.ID, audit.ActionCreate, resourceUser, idString(usr.ID), nil, usr, "user registered")
	})
	if err != nil {
		return nil, err
	}
	return s.session(usr, t.Name)
}

func (s *UserService) LoginUser(ctx context.Context, input user.LoginInput) (*user.Session, error) {
	repos := s.Repos.WithContext(ctx)
	usr, err := repos.User.GetUserByEmail(user.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	t, err := repos.Tenant.GetByID(usr.TenantID)
	if err != nil {
		return nil, fmt.Errorf("load tenant of user %d: %w", usr.ID, err)
	}
	return s.session(usr, t.Name)
}

func (s *UserService) session(usr user.User, tenantName string) (*user.Session, error) {
	token, err := middleware.GenerateToken(usr, config.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &user.Session{
		Token:      token,
		UserID:     usr.ID,
		Name:       usr.Name,
		Role:       usr.Role,
		TenantID:   usr.TenantID,
		TenantName: tenantName,
	}, nil
}

func (s *UserService) ListUsers(ctx context.Context, v form.Viewer) ([]user.User, error) {
	return s.Repos.WithContext(ctx).User.ListByTenant(v.TenantID)
}

// FindUserByID hides users of other tenants behind ErrUserNotFound.
func (s *UserService) FindUserByID(ctx context.Context, v form.Viewer, id uint) (user.User, error) {
	usr, err := s.Repos.WithContext(ctx).User.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}
	if usr.TenantID != v.TenantID {
		return user.User{}, ErrUserNotFound
	}
	return usr, nil
}

// CreateUser adds a member to the caller's tenant.
func (s *UserService) CreateUser(ctx context.Context, v form.Viewer, input user.CreateUserInput) (user.User, error) {
	hashed, err := hashPassword(input.Password)
	if err != nil {
		return user.User{}, err
	}

	usr := user.User{
		TenantID:    v.TenantID,
		Name:        strings.TrimSpace(input.Name),
		Email:       user.NormalizeEmail(input.Email),
		Password:    hashed,
		PhoneNumber: input.PhoneNumber,
		Age:         input.Age,
		Role:        user.RoleEditor,
	}
	if input.Role != nil {
		usr.Role = user.Role(*input.Role)
	}

	repos := s.Repos.WithContext(ctx)
	if err := repos.User.CreateUser(&usr); err != nil {
		return user.User{}, err
	}
	if err := utils.LogAudit(ctx, repos.Audit, v.TenantID, v.UserID, audit.ActionCreate, resourceUser, idString(usr.ID), nil, usr, "user created"); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (s *UserService) UpdateUser(ctx context.Context, v form.Viewer, id uint, input user.UpdateUserInput) (user.User, error) {
	usr, err := s.FindUserByID(ctx, v, id)
	if err != nil {
		return user.User{}, err
	}
	before := usr

	if input.Name != nil {
		usr.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		usr.Email = user.NormalizeEmail(*input.Email)
	}
	if input.PhoneNumber != nil {
		usr.PhoneNumber = *input.PhoneNumber
	}
	if input.Age != nil {
		usr.Age = *input.Age
	}

	repos := s.Repos.WithContext(ctx)
	if err := repos.User.SaveUser(&usr); err != nil {
		return user.User{}, err
	}
	if err := utils.LogAudit(ctx, repos.Audit, v.TenantID, v.UserID, audit.ActionUpdate, resourceUser, idString(usr.ID), before, usr, "user updated"); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (s *UserService) RemoveUser(ctx context.Context, v form.Viewer, id uint) error {
	if id == v.UserID {
		return ErrCannotDeleteSelf
	}
	usr, err := s.FindUserByID(ctx, v, id)
	if err != nil {
		return err
	}

	repos := s.Repos.WithContext(ctx)
	if err := repos.User.DeleteUser(id); err != nil {
		return err
	}
	return utils.LogAudit(ctx, repos.Audit, v.TenantID, v.UserID, audit.ActionDelete, resourceUser, idString(id), usr, nil, "user deleted")
}
