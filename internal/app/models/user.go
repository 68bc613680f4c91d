package models

import (
	"time"
)

// User defines the account model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`                                  // Unique identifier for the account
	Username     string     `json:"username" db:"username" example:"student1"`               // Unique login name
	PasswordHash string     `json:"-" db:"password_hash"`                                    // Salted bcrypt digest (excluded from JSON)
	Role         Role       `json:"role" db:"role" example:"student"`                        // Account role (student, teacher or admin)
	StudentID    *int64     `json:"studentId,omitempty" db:"student_id"`                     // Owned student profile, set when role is student
	TeacherID    *int64     `json:"teacherId,omitempty" db:"teacher_id"`                     // Owned teacher profile, set when role is teacher
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                // Timestamp of the last successful login (nullable)
}

// AssociatedID returns the id of the profile row owned by this account,
// nil for admin accounts.
func (u *User) AssociatedID() *int64 {
	switch u.Role {
	case RoleStudent:
		return u.StudentID
	case RoleTeacher:
		return u.TeacherID
	case RoleAdmin:
		return nil
	}
	return nil
}
