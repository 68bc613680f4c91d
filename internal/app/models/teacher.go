package models

import "time"

// Teacher defines the teacher profile model based on the 'teachers' table
type Teacher struct {
	ID         int64     `json:"id" db:"id"`
	FirstName  string    `json:"firstName" db:"first_name"`
	LastName   string    `json:"lastName" db:"last_name"`
	Email      string    `json:"email" db:"email"`
	Phone      *string   `json:"phone,omitempty" db:"phone"`
	HireDate   time.Time `json:"hireDate" db:"hire_date"`
	Department *string   `json:"department,omitempty" db:"department"`
}
