package form

import "github.com/linskybing/formflow/internal/domain/user"

// Viewer is the authenticated caller as seen by form operations.
type Viewer struct {
	UserID   uint
	TenantID uint
	Role     user.Role
}

func (v Viewer) IsAdmin() bool {
	return v.Role == user.RoleAdmin
}

// CanSee applies the listing filter: same tenant, and for non-admins only
// their own forms plus legacy unowned ones.
func (v Viewer) CanSee(f *Form) bool {
	if f.TenantID != v.TenantID {
		return false
	}
	return v.IsAdmin() || f.CreatedBy == v.UserID || f.CreatedBy == LegacyOwner
}

// Authorize guards reads and writes of a single version. Forms of another
// tenant are reported as missing.
func (v Viewer) Authorize(f *Form) error {
	if f.TenantID != v.TenantID {
		return ErrNotFound
	}
	if !v.CanSee(f) {
		return ErrForbidden
	}
	return nil
}
