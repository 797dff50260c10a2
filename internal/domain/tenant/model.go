package tenant

import "time"

// Tenant is the isolation boundary for users and forms. Only Name and LogoURL
// change after creation.
type Tenant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	LogoURL   string    `json:"logo_url" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}
