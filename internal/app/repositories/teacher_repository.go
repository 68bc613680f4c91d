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

// ITeacherRepository defines the interface for teacher profile operations
type ITeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// TeacherRepository is the pgx-backed implementation of ITeacherRepository
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: pool}
}

const teacherColumns = `id, first_name, last_name, email, phone, hire_date, department`

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	t := &models.Teacher{}
	err := row.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone,
		&t.HireDate, &t.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error scanning teacher: %w", err)
	}
	return t, nil
}

// Create inserts a new teacher profile
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO teachers (first_name, last_name, email, phone, hire_date, department)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		teacher.FirstName, teacher.LastName, teacher.Email, teacher.Phone,
		teacher.HireDate, teacher.Department).Scan(&teacher.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "teachers_email_key") {
			return apperrors.ErrEmailExists
		}
		return fmt.Errorf("error creating teacher: %w", err)
	}
	return nil
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return scanTeacher(r.db.QueryRow(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers
		WHERE id = $1`, id))
}

// GetAll retrieves all teachers ordered by name
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers
		ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	teachers := make([]*models.Teacher, 0)
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teachers: %w", err)
	}
	return teachers, nil
}

// Update rewrites the mutable teacher fields
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE teachers
		SET first_name = $1, last_name = $2, email = $3, phone = $4, department = $5
		WHERE id = $6`,
		teacher.FirstName, teacher.LastName, teacher.Email, teacher.Phone,
		teacher.Department, teacher.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "teachers_email_key") {
			return apperrors.ErrEmailExists
		}
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// Delete removes a teacher profile
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}
