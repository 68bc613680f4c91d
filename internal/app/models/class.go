package models

// Class defines the class model based on the 'classes' table
type Class struct {
	ID         int64    `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	GradeLevel int      `json:"gradeLevel" db:"grade_level"`
	TeacherID  *int64   `json:"teacherId,omitempty" db:"teacher_id"`
	Teacher    *Teacher `json:"teacher,omitempty"` // Relation, no db tag
}
