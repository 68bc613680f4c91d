package dto

// CreateClassRequest represents a new class
type CreateClassRequest struct {
	Name       string `json:"name" binding:"required"`
	GradeLevel int    `json:"gradeLevel" binding:"required,min=1,max=12"`
	TeacherID  *int64 `json:"teacherId,omitempty"`
}

// UpdateClassRequest represents a partial class update
type UpdateClassRequest struct {
	Name       *string `json:"name,omitempty"`
	GradeLevel *int    `json:"gradeLevel,omitempty" binding:"omitempty,min=1,max=12"`
	TeacherID  *int64  `json:"teacherId,omitempty"`
}
