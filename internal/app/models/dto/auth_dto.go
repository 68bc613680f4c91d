package dto

import (
	"time"

	"github.com/kaganyildiz/academix/internal/app/models"
)

// RegisterRequest represents a registration request. Role-specific profile
// fields ride alongside the account fields; which ones are required depends
// on the role and is enforced by the auth service.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`

	// Profile fields (student and teacher)
	FirstName   string  `json:"firstName,omitempty"`
	LastName    string  `json:"lastName,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`

	// Student-only
	ClassID *int64 `json:"classId,omitempty"`

	// Teacher-only
	HireDate   *string `json:"hireDate,omitempty"`
	Department *string `json:"department,omitempty"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
}

// AccountData represents account information without the password digest
type AccountData struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Role         string     `json:"role"`
	AssociatedID *int64     `json:"associatedId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// NewAccountData maps an account model into its response shape
func NewAccountData(user *models.User) AccountData {
	return AccountData{
		ID:           user.ID,
		Username:     user.Username,
		Role:         string(user.Role),
		AssociatedID: user.AssociatedID(),
		CreatedAt:    user.CreatedAt,
		LastLoginAt:  user.LastLoginAt,
	}
}

// RegisterResponse is the payload returned on successful registration
type RegisterResponse struct {
	Account AccountData `json:"account"`
	Token   string      `json:"token"`
}

// LoginResponse is the payload returned on successful login
type LoginResponse struct {
	Account AccountData `json:"account"`
	Profile interface{} `json:"profile,omitempty"`
	Token   string      `json:"token"`
}

// ProfileResponse is the payload returned by the profile endpoints
type ProfileResponse struct {
	Account AccountData `json:"account"`
	Profile interface{} `json:"profile,omitempty"`
}
