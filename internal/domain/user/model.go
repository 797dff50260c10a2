package user

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
)

// User belongs to exactly one tenant. Password holds a bcrypt hash.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TenantID    uint      `json:"tenant_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Email       string    `json:"email" gorm:"size:320;not null;uniqueIndex"`
	Password    string    `json:"-" gorm:"not null"`
	PhoneNumber string    `json:"phone_number" gorm:"size:50"`
	Age         int       `json:"age"`
	Role        Role      `json:"role" gorm:"size:20;not null;default:'Editor'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail folds compatibility characters and case so that lookups
// match regardless of how the address was typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(email)))
}
