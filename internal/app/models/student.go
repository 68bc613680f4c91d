package models

import "time"

// Student defines the student profile model based on the 'students' table
type Student struct {
	ID             int64      `json:"id" db:"id"`
	FirstName      string     `json:"firstName" db:"first_name"`
	LastName       string     `json:"lastName" db:"last_name"`
	Email          string     `json:"email" db:"email"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	EnrollmentDate time.Time  `json:"enrollmentDate" db:"enrollment_date"`
	ClassID        *int64     `json:"classId,omitempty" db:"class_id"`
	Class          *Class     `json:"class,omitempty"` // Relation, no db tag
}
