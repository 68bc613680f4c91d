package models

import "fmt"

// Role is the closed classification of an account. Adding a role means
// extending ParseRole and every switch that matches on it.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a raw role string against the closed set
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleTeacher:
		return RoleTeacher, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether the role is one of the defined constants
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// HasProfile reports whether accounts with this role own a profile row
func (r Role) HasProfile() bool {
	switch r {
	case RoleStudent, RoleTeacher:
		return true
	case RoleAdmin:
		return false
	}
	return false
}
