package dto

// CreateTeacherRequest represents a new teacher record
type CreateTeacherRequest struct {
	FirstName  string  `json:"firstName" binding:"required"`
	LastName   string  `json:"lastName" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      *string `json:"phone,omitempty"`
	HireDate   *string `json:"hireDate,omitempty"`
	Department *string `json:"department,omitempty"`
}

// UpdateTeacherRequest represents a partial teacher update
type UpdateTeacherRequest struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
}
