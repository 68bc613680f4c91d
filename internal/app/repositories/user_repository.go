package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/db"
	"github.com/kaganyildiz/academix/internal/pkg/apperrors"
	"github.com/kaganyildiz/academix/internal/pkg/dberrors"
)

// IUserRepository defines the interface for account database operations
type IUserRepository interface {
	// Registration. The account row and its profile row are inserted in one
	// transaction so a duplicate username never leaves an orphaned profile.
	CreateStudentUser(ctx context.Context, user *models.User, student *models.Student) error
	CreateTeacherUser(ctx context.Context, user *models.User, teacher *models.Teacher) error
	CreateAdminUser(ctx context.Context, user *models.User) error

	// Authentication
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error

	// Lifecycle
	Delete(ctx context.Context, user *models.User) error
}

// UserRepository is the pgx-backed implementation of IUserRepository
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

const userColumns = `id, username, password_hash, role, student_id, teacher_id, created_at, last_login_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Role,
		&user.StudentID, &user.TeacherID, &user.CreatedAt, &user.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return user, nil
}

// CreateStudentUser inserts the student profile and the owning account in one
// transaction. A username collision surfaces as apperrors.ErrUsernameExists
// via the users_username_key constraint; relying on the constraint instead of
// a prior existence check closes the concurrent-registration race.
func (r *UserRepository) CreateStudentUser(ctx context.Context, user *models.User, student *models.Student) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO students (first_name, last_name, email, phone, date_of_birth, enrollment_date, class_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			student.FirstName, student.LastName, student.Email, student.Phone,
			student.DateOfBirth, student.EnrollmentDate, student.ClassID).Scan(&student.ID)
		if err != nil {
			return mapProfileInsertError(err)
		}

		user.StudentID = &student.ID
		return insertUser(ctx, tx, user)
	})
}

// CreateTeacherUser inserts the teacher profile and the owning account in one
// transaction.
func (r *UserRepository) CreateTeacherUser(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO teachers (first_name, last_name, email, phone, hire_date, department)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			teacher.FirstName, teacher.LastName, teacher.Email, teacher.Phone,
			teacher.HireDate, teacher.Department).Scan(&teacher.ID)
		if err != nil {
			return mapProfileInsertError(err)
		}

		user.TeacherID = &teacher.ID
		return insertUser(ctx, tx, user)
	})
}

// CreateAdminUser inserts an account with no profile row
func (r *UserRepository) CreateAdminUser(ctx context.Context, user *models.User) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		return insertUser(ctx, tx, user)
	})
}

func insertUser(ctx context.Context, tx pgx.Tx, user *models.User) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role, student_id, teacher_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		user.Username, user.PasswordHash, user.Role, user.StudentID, user.TeacherID).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "users_username_key") {
			return apperrors.ErrUsernameExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func mapProfileInsertError(err error) error {
	if dberrors.IsAnyUniqueViolation(err) {
		return apperrors.ErrEmailExists
	}
	return fmt.Errorf("error creating profile: %w", err)
}

// GetByID retrieves an account by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`, id))
}

// GetByUsername retrieves an account by its login name
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1`, username))
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET last_login_at = $1
		WHERE id = $2`,
		time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update last login time: %w", err)
	}
	return nil
}

// Delete removes the account and its profile row in one transaction
func (r *UserRepository) Delete(ctx context.Context, user *models.User) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
		if err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}

		switch user.Role {
		case models.RoleStudent:
			if user.StudentID != nil {
				if _, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, *user.StudentID); err != nil {
					return fmt.Errorf("error deleting student profile: %w", err)
				}
			}
		case models.RoleTeacher:
			if user.TeacherID != nil {
				if _, err := tx.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, *user.TeacherID); err != nil {
					return fmt.Errorf("error deleting teacher profile: %w", err)
				}
			}
		case models.RoleAdmin:
			// No profile row to remove
		}
		return nil
	})
}
