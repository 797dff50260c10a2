package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/domain/tenant"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTenantServiceMocks(t *testing.T) (*TenantService, *mock.MockTenantRepo, *mock.MockObjectStore, *mock.MockAuditRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockTenant := mock.NewMockTenantRepo(ctrl)
	mockStore := mock.NewMockObjectStore(ctrl)
	mockAudit := mock.NewMockAuditRepo(ctrl)
	repos := &repository.Repos{Tenant: mockTenant, Audit: mockAudit}
	return NewTenantService(repos, mockStore, nil), mockTenant, mockStore, mockAudit
}

func TestUpdateTenant_Rename(t *testing.T) {
	svc, mockTenant, _, mockAudit := setupTenantServiceMocks(t)

	mockTenant.EXPECT().GetByID(uint(10)).Return(tenant.Tenant{ID: 10, Name: "Old"}, nil)
	mockTenant.EXPECT().Save(gomock.Any()).Return(nil)
	mockAudit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	got, err := svc.UpdateTenant(context.Background(), editor, 10, tenant.UpdateTenantDTO{Name: ptrString(" Acme ")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestUpdateTenant_Foreign(t *testing.T) {
	svc, _, _, _ := setupTenantServiceMocks(t)

	_, err := svc.UpdateTenant(context.Background(), editor, 11, tenant.UpdateTenantDTO{Name: ptrString("x")})
	assert.Equal(t, ErrForeignTenantEdit, err)
}

func TestUploadLogo_ReplacesPrevious(t *testing.T) {
	svc, mockTenant, mockStore, mockAudit := setupTenantServiceMocks(t)

	oldURL := "http://cdn/formflow/tenants/10/logo-old.png"
	mockTenant.EXPECT().GetByID(uint(10)).Return(tenant.Tenant{ID: 10, Name: "Acme", LogoURL: oldURL}, nil)
	mockStore.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), int64(4), "image/png").
		DoAndReturn(func(_ context.Context, key string, _ io.Reader, _ int64, _ string) (string, error) {
			assert.True(t, strings.HasPrefix(key, "tenants/10/logo-"))
			assert.True(t, strings.HasSuffix(key, ".png"))
			return "http://cdn/formflow/" + key, nil
		})
	mockTenant.EXPECT().Save(gomock.Any()).Return(nil)
	mockStore.EXPECT().KeyFromURL(oldURL).Return("tenants/10/logo-old.png", true)
	mockStore.EXPECT().Remove(gomock.Any(), "tenants/10/logo-old.png").Return(errors.New("gone"))
	mockAudit.EXPECT().CreateAuditLog(gomock.Any()).Return(nil)

	got, err := svc.UploadLogo(context.Background(), editor, 10, strings.NewReader("logo"), 4, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.LogoURL, "http://cdn/formflow/tenants/10/logo-"))
}

func TestUploadLogo_Rejects(t *testing.T) {
	svc, _, _, _ := setupTenantServiceMocks(t)

	_, err := svc.UploadLogo(context.Background(), editor, 10, strings.NewReader("x"), 1, "application/pdf")
	assert.Equal(t, ErrUnsupportedLogo, err)

	svc.Store = nil
	_, err = svc.UploadLogo(context.Background(), editor, 10, strings.NewReader("x"), 1, "image/png")
	assert.Equal(t, ErrStorageDisabled, err)
}

func TestUploadLogo_SaveFailureRemovesUpload(t *testing.T) {
	svc, mockTenant, mockStore, _ := setupTenantServiceMocks(t)

	mockTenant.EXPECT().GetByID(uint(10)).Return(tenant.Tenant{ID: 10}, nil)
	mockStore.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("http://cdn/formflow/k", nil)
	mockTenant.EXPECT().Save(gomock.Any()).Return(errors.New("db down"))
	mockStore.EXPECT().Remove(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.UploadLogo(context.Background(), editor, 10, strings.NewReader("x"), 1, "image/jpeg")
	assert.EqualError(t, err, "db down")
}

func TestAuditService_ScopesTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mock.NewMockAuditRepo(ctrl)
	svc := NewAuditService(&repository.Repos{Audit: mockAudit})

	mockAudit.EXPECT().GetAuditLogs(gomock.Any()).DoAndReturn(func(p repository.AuditQueryParams) ([]audit.AuditLog, error) {
		assert.Equal(t, uint(10), p.TenantID)
		assert.Equal(t, defaultAuditLimit, p.Limit)
		return nil, nil
	})
	_, err := svc.QueryAuditLogs(context.Background(), editor, repository.AuditQueryParams{TenantID: 99})
	assert.NoError(t, err)

	mockAudit.EXPECT().DeleteOldAuditLogs(30).Return(int64(4), nil)
	n, err := svc.CleanupOldLogs(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
