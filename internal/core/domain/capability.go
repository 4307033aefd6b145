package domain

import "fmt"

// Capability names a privileged action.
type Capability string

const (
	CapViewRooms   Capability = "rooms:view"
	CapManageRooms Capability = "rooms:manage"
	CapManageUsers Capability = "users:manage"
)

// Can reports whether u holds capability c.
func (u *User) Can(c Capability) bool {
	if u == nil {
		return false
	}
	switch c {
	case CapViewRooms:
		return true
	case CapManageRooms:
		return u.Role == RoleAdmin && u.Department == DepartmentFrontDesk
	case CapManageUsers:
		return u.Role == RoleAdmin
	default:
		return false
	}
}

// Authorize returns ErrUnauthorizedUser unless u holds c.
func Authorize(u *User, c Capability) error {
	if !u.Can(c) {
		return fmt.Errorf("%w: missing capability %s", ErrUnauthorizedUser, c)
	}
	return nil
}
