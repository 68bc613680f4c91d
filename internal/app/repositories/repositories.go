package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	StudentRepository *StudentRepository
	TeacherRepository *TeacherRepository
	ClassRepository   *ClassRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		StudentRepository: NewStudentRepository(db),
		TeacherRepository: NewTeacherRepository(db),
		ClassRepository:   NewClassRepository(db),
	}
}
