package domain

import (
	"errors"
	"time"
)

// Role is the privilege level of a user.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Department is the hotel area a user works in. The zero value means the
// user is not attached to any department.
type Department string

const (
	DepartmentNone         Department = ""
	DepartmentFrontDesk    Department = "FrontDesk"
	DepartmentHousekeeping Department = "Housekeeping"
	DepartmentMaintenance  Department = "Maintenance"
	DepartmentBackOffice   Department = "BackOffice"
)

// Valid reports whether d is a known department (including none).
func (d Department) Valid() bool {
	switch d {
	case DepartmentNone, DepartmentFrontDesk, DepartmentHousekeeping, DepartmentMaintenance, DepartmentBackOffice:
		return true
	}
	return false
}

var (
	ErrInvalidUserCredentials = errors.New("invalid user credentials")
	ErrUserDoesNotExist       = errors.New("user does not exist")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrCreatorDoesNotExist    = errors.New("creator does not exist")
	ErrCreatorIsNotAdmin      = errors.New("creator is not an admin")
	ErrInvalidToken           = errors.New("invalid token")
	ErrTokenSigning           = errors.New("failed to sign token")
	ErrUnauthorizedUser       = errors.New("user is not authorized")
	ErrLastAdmin              = errors.New("cannot demote the last admin")
)

// User models a hotel staff account.
type User struct {
	ID           string     `json:"id,omitempty"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Department   Department `json:"department,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the user holds the Admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
