package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/pkg/apperrors"
)

// IClassRepository defines the interface for class operations
type IClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetAll(ctx context.Context) ([]*models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// ClassRepository is the pgx-backed implementation of IClassRepository
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: pool}
}

func scanClass(row pgx.Row) (*models.Class, error) {
	c := &models.Class{}
	err := row.Scan(&c.ID, &c.Name, &c.GradeLevel, &c.TeacherID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error scanning class: %w", err)
	}
	return c, nil
}

// Create inserts a new class
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO classes (name, grade_level, teacher_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		class.Name, class.GradeLevel, class.TeacherID).Scan(&class.ID)
	if err != nil {
		return fmt.Errorf("error creating class: %w", err)
	}
	return nil
}

// GetByID retrieves a class by ID with its assigned teacher, if any
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	c := &models.Class{}
	teacher := &models.Teacher{}
	var (
		teacherID *int64
		firstName *string
		lastName  *string
		email     *string
		hireDate  *time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT c.id, c.name, c.grade_level, c.teacher_id,
		       t.id, t.first_name, t.last_name, t.email, t.phone, t.hire_date, t.department
		FROM classes c
		LEFT JOIN teachers t ON t.id = c.teacher_id
		WHERE c.id = $1`, id).Scan(
		&c.ID, &c.Name, &c.GradeLevel, &c.TeacherID,
		&teacherID, &firstName, &lastName, &email, &teacher.Phone, &hireDate, &teacher.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error loading class: %w", err)
	}

	if teacherID != nil {
		teacher.ID = *teacherID
		teacher.FirstName = *firstName
		teacher.LastName = *lastName
		teacher.Email = *email
		teacher.HireDate = *hireDate
		c.Teacher = teacher
	}
	return c, nil
}

// GetAll retrieves all classes ordered by grade and name
func (r *ClassRepository) GetAll(ctx context.Context) ([]*models.Class, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, grade_level, teacher_id
		FROM classes
		ORDER BY grade_level, name`)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	classes := make([]*models.Class, 0)
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating classes: %w", err)
	}
	return classes, nil
}

// Update rewrites the mutable class fields
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE classes
		SET name = $1, grade_level = $2, teacher_id = $3
		WHERE id = $4`,
		class.Name, class.GradeLevel, class.TeacherID, class.ID)
	if err != nil {
		return fmt.Errorf("error updating class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// Delete removes a class
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}
