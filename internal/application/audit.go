package application

import (
	"context"

	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/repository"
)

const defaultAuditLimit = 100

type AuditService struct {
	Repos *repository.Repos
}

func NewAuditService(repos *repository.Repos) *AuditService {
	return &AuditService{
		Repos: repos,
	}
}

// QueryAuditLogs always scopes the query to the caller's tenant.
func (s *AuditService) QueryAuditLogs(ctx context.Context, v form.Viewer, params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	params.TenantID = v.TenantID
	if params.Limit <= 0 {
		params.Limit = defaultAuditLimit
	}
	return s.Repos.WithContext(ctx).Audit.GetAuditLogs(params)
}

func (s *AuditService) CleanupOldLogs(ctx context.Context, days int) (int64, error) {
	return s.Repos.WithContext(ctx).Audit.DeleteOldAuditLogs(days)
}
