package form

import "time"

type State string

const (
	StateActive  State = "active"
	StateDeleted State = "deleted"
)

func (f *Form) State() State {
	if f.IsDeleted {
		return StateDeleted
	}
	return StateActive
}

// SoftDelete moves an active version to the trash.
func (f *Form) SoftDelete(by uint, now time.Time) error {
	if f.IsDeleted {
		return ErrAlreadyDeleted
	}
	f.IsDeleted = true
	f.DeletedAt = &now
	f.DeletedBy = &by
	return nil
}

func (f *Form) Restore() error {
	if !f.IsDeleted {
		return ErrNotDeleted
	}
	f.IsDeleted = false
	f.DeletedAt = nil
	f.DeletedBy = nil
	return nil
}
