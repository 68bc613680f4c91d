package dto

// CreateStudentRequest represents a new student record
type CreateStudentRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	ClassID     *int64  `json:"classId,omitempty"`
}

// UpdateStudentRequest represents a partial student update
type UpdateStudentRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	ClassID   *int64  `json:"classId,omitempty"`
}
