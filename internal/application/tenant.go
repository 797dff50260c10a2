package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/tenant"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/storage"
	"github.com/linskybing/formflow/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const resourceTenant = "tenant"

var (
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrStorageDisabled   = errors.New("object storage is not configured")
	ErrUnsupportedLogo   = errors.New("logo must be a png, jpeg, gif, svg or webp image")
	ErrForeignTenantEdit = errors.New("cannot modify another tenant")
)

var logoExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
	"image/webp":    ".webp",
}

type TenantService struct {
	Repos  *repository.Repos
	Store  storage.ObjectStore
	Logger *zap.Logger
}

// NewTenantService wires tenant management. store may be nil, in which case
// logo uploads fail with ErrStorageDisabled.
func NewTenantService(repos *repository.Repos, store storage.ObjectStore, logger *zap.Logger) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{Repos: repos, Store: store, Logger: logger}
}

func (s *TenantService) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	return s.Repos.WithContext(ctx).Tenant.List()
}

func (s *TenantService) get(repos *repository.Repos, v form.Viewer, id uint) (tenant.Tenant, error) {
	if id != v.TenantID {
		return tenant.Tenant{}, ErrForeignTenantEdit
	}
	t, err := repos.Tenant.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tenant.Tenant{}, ErrTenantNotFound
		}
		return tenant.Tenant{}, err
	}
	return t, nil
}

func (s *TenantService) UpdateTenant(ctx context.Context, v form.Viewer, id uint, input tenant.UpdateTenantDTO) (tenant.Tenant, error) {
	repos := s.Repos.WithContext(ctx)
	t, err := s.get(repos, v, id)
	if err != nil {
		return tenant.Tenant{}, err
	}
	before := t
	if input.Name != nil {
		t.Name = strings.TrimSpace(*input.Name)
	}
	if err := repos.Tenant.Save(&t); err != nil {
		return tenant.Tenant{}, err
	}
	if err := utils.LogAudit(ctx, repos.Audit, t.ID, v.UserID, audit.ActionUpdate, resourceTenant, idString(t.ID), before, t, "tenant renamed"); err != nil {
		return tenant.Tenant{}, err
	}
	return t, nil
}

// UploadLogo stores the image under a fresh key, points the tenant at it and
// removes the previous object. A failed removal only leaves an orphan.
func (s *TenantService) UploadLogo(ctx context.Context, v form.Viewer, id uint, r io.Reader, size int64, contentType string) (tenant.Tenant, error) {
	if s.Store == nil {
		return tenant.Tenant{}, ErrStorageDisabled
	}
	ext, ok := logoExtensions[contentType]
	if !ok {
		return tenant.Tenant{}, ErrUnsupportedLogo
	}

	repos := s.Repos.WithContext(ctx)
	t, err := s.get(repos, v, id)
	if err != nil {
		return tenant.Tenant{}, err
	}

	key := path.Join("tenants", idString(t.ID), "logo-"+uuid.NewString()+ext)
	url, err := s.Store.Put(ctx, key, r, size, contentType)
	if err != nil {
		return tenant.Tenant{}, fmt.Errorf("upload logo: %w", err)
	}

	before := t
	t.LogoURL = url
	if err := repos.Tenant.Save(&t); err != nil {
		if rmErr := s.Store.Remove(ctx, key); rmErr != nil {
			s.Logger.Warn("remove orphaned logo", zap.String("key", key), zap.Error(rmErr))
		}
		return tenant.Tenant{}, err
	}

	if oldKey, ok := s.Store.KeyFromURL(before.LogoURL); ok {
		if err := s.Store.Remove(ctx, oldKey); err != nil {
			s.Logger.Warn("remove previous logo", zap.String("key", oldKey), zap.Error(err))
		}
	}
	if err := utils.LogAudit(ctx, repos.Audit, t.ID, v.UserID, audit.ActionUpdate, resourceTenant, idString(t.ID), before, t, "tenant logo replaced"); err != nil {
		return tenant.Tenant{}, err
	}
	return t, nil
}
