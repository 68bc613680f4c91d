package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/pkg/apperrors"
	"github.com/kaganyildiz/academix/internal/pkg/dberrors"
)

// IStudentRepository defines the interface for student profile operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	GetByClassID(ctx context.Context, classID int64) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error

	// TaughtBy reports whether the student sits in a class assigned to the
	// given teacher. The ownership guard uses this for the teacher branch.
	TaughtBy(ctx context.Context, studentID, teacherID int64) (bool, error)
}

// StudentRepository is the pgx-backed implementation of IStudentRepository
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: pool}
}

const studentColumns = `id, first_name, last_name, email, phone, date_of_birth, enrollment_date, class_id`

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone,
		&s.DateOfBirth, &s.EnrollmentDate, &s.ClassID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return s, nil
}

// Create inserts a new student profile
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (first_name, last_name, email, phone, date_of_birth, enrollment_date, class_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		student.FirstName, student.LastName, student.Email, student.Phone,
		student.DateOfBirth, student.EnrollmentDate, student.ClassID).Scan(&student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "students_email_key") {
			return apperrors.ErrEmailExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student by ID with the class they are enrolled in,
// if any
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	s := &models.Student{}
	var (
		classID    *int64
		className  *string
		gradeLevel *int
		teacherID  *int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT s.id, s.first_name, s.last_name, s.email, s.phone,
		       s.date_of_birth, s.enrollment_date, s.class_id,
		       c.id, c.name, c.grade_level, c.teacher_id
		FROM students s
		LEFT JOIN classes c ON c.id = s.class_id
		WHERE s.id = $1`, id).Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone,
		&s.DateOfBirth, &s.EnrollmentDate, &s.ClassID,
		&classID, &className, &gradeLevel, &teacherID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error loading student: %w", err)
	}

	if classID != nil {
		s.Class = &models.Class{
			ID:         *classID,
			Name:       *className,
			GradeLevel: *gradeLevel,
			TeacherID:  teacherID,
		}
	}
	return s, nil
}

// GetAll retrieves all students ordered by name
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+studentColumns+`
		FROM students
		ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

// GetByClassID retrieves all students enrolled in a class
func (r *StudentRepository) GetByClassID(ctx context.Context, classID int64) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE class_id = $1
		ORDER BY last_name, first_name`, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing students by class: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

func collectStudents(rows pgx.Rows) ([]*models.Student, error) {
	students := make([]*models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}

// Update rewrites the mutable student fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students
		SET first_name = $1, last_name = $2, email = $3, phone = $4, class_id = $5
		WHERE id = $6`,
		student.FirstName, student.LastName, student.Email, student.Phone,
		student.ClassID, student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "students_email_key") {
			return apperrors.ErrEmailExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student profile
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// TaughtBy checks whether the student's class is assigned to the teacher
func (r *StudentRepository) TaughtBy(ctx context.Context, studentID, teacherID int64) (bool, error) {
	var taught bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM students s
			JOIN classes c ON c.id = s.class_id
			WHERE s.id = $1 AND c.teacher_id = $2
		)`, studentID, teacherID).Scan(&taught)
	if err != nil {
		return false, fmt.Errorf("error checking class assignment: %w", err)
	}
	return taught, nil
}
