package utils

import (
	"context"
	"encoding/json"

	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/repository"
	"go.uber.org/zap"
)

// LogAudit records one change. Pass the transaction's AuditRepo so the entry
// commits or rolls back with the change itself.
var LogAudit = func(
	ctx context.Context,
	repo repository.AuditRepo,
	tenantID uint,
	userID uint,
	action string,
	resourceType string,
	resourceID string,
	before any,
	after any,
	description string,
) error {
	var oldData, newData []byte
	var err error

	if before != nil {
		oldData, err = json.Marshal(before)
		if err != nil {
			zap.L().Warn("audit marshal old data", zap.String("action", action), zap.Error(err))
		}
	}
	if after != nil {
		newData, err = json.Marshal(after)
		if err != nil {
			zap.L().Warn("audit marshal new data", zap.String("action", action), zap.Error(err))
		}
	}

	meta := audit.MetaFromContext(ctx)
	entry := &audit.AuditLog{
		UserID:       userID,
		TenantID:     tenantID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldData:      oldData,
		NewData:      newData,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		Description:  description,
	}

	return repo.CreateAuditLog(entry)
}
