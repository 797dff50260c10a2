package form

import "time"

func (c Content) ValidateWindow() error {
	if c.StartAt != nil && c.EndAt != nil && c.EndAt.Before(*c.StartAt) {
		return ErrInvalidWindow
	}
	return nil
}

// CheckWindow reports whether submissions are accepted at now. Both bounds
// are inclusive.
func (c Content) CheckWindow(now time.Time) error {
	if c.StartAt != nil && now.Before(*c.StartAt) {
		return ErrWindowNotOpen
	}
	if c.EndAt != nil && now.After(*c.EndAt) {
		return ErrWindowClosed
	}
	return nil
}
