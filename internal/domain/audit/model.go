package audit

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActionCreate          = "create"
	ActionUpdate          = "update"
	ActionFork            = "fork"
	ActionSoftDelete      = "soft_delete"
	ActionRestore         = "restore"
	ActionPermanentDelete = "permanent_delete"
	ActionDelete          = "delete"
)

type AuditLog struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index"`
	TenantID     uint           `json:"tenant_id" gorm:"index"`
	Action       string         `json:"action" gorm:"size:50;not null"`
	ResourceType string         `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   string         `json:"resource_id" gorm:"size:100"`
	OldData      datatypes.JSON `json:"old_data,omitempty"`
	NewData      datatypes.JSON `json:"new_data,omitempty"`
	IPAddress    string         `json:"ip_address" gorm:"size:64"`
	UserAgent    string         `json:"user_agent"`
	Description  string         `json:"description"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
