package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/pkg/apperrors"
	"github.com/kaganyildiz/academix/internal/pkg/auth"
)

type memoryUserRepo struct {
	users      map[int64]*models.User
	nextUserID int64
	nextProfID int64
	lastLogins []int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[int64]*models.User{}, nextUserID: 1, nextProfID: 100}
}

func (r *memoryUserRepo) insert(user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return apperrors.ErrUsernameExists
		}
	}
	user.ID = r.nextUserID
	user.CreatedAt = time.Now()
	r.nextUserID++
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) CreateStudentUser(ctx context.Context, user *models.User, student *models.Student) error {
	student.ID = r.nextProfID
	r.nextProfID++
	user.StudentID = &student.ID
	return r.insert(user)
}

func (r *memoryUserRepo) CreateTeacherUser(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	teacher.ID = r.nextProfID
	r.nextProfID++
	user.TeacherID = &teacher.ID
	return r.insert(user)
}

func (r *memoryUserRepo) CreateAdminUser(ctx context.Context, user *models.User) error {
	return r.insert(user)
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memoryUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memoryUserRepo) UpdateLastLogin(ctx context.Context, userID int64) error {
	r.lastLogins = append(r.lastLogins, userID)
	return nil
}

func (r *memoryUserRepo) Delete(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, user.ID)
	return nil
}

type memoryStudentRepo struct {
	students map[int64]*models.Student
}

func (r *memoryStudentRepo) Create(ctx context.Context, student *models.Student) error { return nil }
func (r *memoryStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := r.students[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}
func (r *memoryStudentRepo) GetAll(ctx context.Context) ([]*models.Student, error) {
	return nil, nil
}
func (r *memoryStudentRepo) GetByClassID(ctx context.Context, classID int64) ([]*models.Student, error) {
	return nil, nil
}
func (r *memoryStudentRepo) Update(ctx context.Context, student *models.Student) error {
	r.students[student.ID] = student
	return nil
}
func (r *memoryStudentRepo) Delete(ctx context.Context, id int64) error { return nil }
func (r *memoryStudentRepo) TaughtBy(ctx context.Context, studentID, teacherID int64) (bool, error) {
	return false, nil
}

type memoryTeacherRepo struct {
	teachers map[int64]*models.Teacher
}

func (r *memoryTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error { return nil }
func (r *memoryTeacherRepo) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if teacher, ok := r.teachers[id]; ok {
		return teacher, nil
	}
	return nil, apperrors.ErrTeacherNotFound
}
func (r *memoryTeacherRepo) GetAll(ctx context.Context) ([]*models.Teacher, error) { return nil, nil }
func (r *memoryTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	r.teachers[teacher.ID] = teacher
	return nil
}
func (r *memoryTeacherRepo) Delete(ctx context.Context, id int64) error { return nil }

func newAuthService(userRepo *memoryUserRepo) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "service-test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "academix-test",
	})
	return NewAuthService(
		userRepo,
		&memoryStudentRepo{students: map[int64]*models.Student{}},
		&memoryTeacherRepo{teachers: map[int64]*models.Teacher{}},
		jwtService,
		nil,
		zerolog.Nop(),
	)
}

func studentRegistration(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:  username,
		Password:  "password123",
		Role:      "student",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     username + "@example.com",
	}
}

func TestRegisterStudent(t *testing.T) {
	svc := newAuthService(newMemoryUserRepo())

	resp, err := svc.Register(context.Background(), studentRegistration("jane"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Account.Role != "student" {
		t.Fatalf("unexpected role: %s", resp.Account.Role)
	}
	if resp.Account.AssociatedID == nil {
		t.Fatal("expected a linked student profile id")
	}
}

func TestRegisterMissingProfileFields(t *testing.T) {
	svc := newAuthService(newMemoryUserRepo())

	cases := []struct {
		role    string
		message string
	}{
		{"student", "First name, last name, and email are required for students"},
		{"teacher", "First name, last name, and email are required for teachers"},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Username: "someone",
			Password: "password123",
			Role:     tc.role,
		})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("role %s: expected validation error, got %v", tc.role, err)
		}
		if err.Error() != tc.message {
			t.Fatalf("role %s: expected message %q, got %q", tc.role, tc.message, err.Error())
		}
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newAuthService(newMemoryUserRepo())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "someone",
		Password: "password123",
		Role:     "superuser",
	})
	if !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthService(newMemoryUserRepo())

	if _, err := svc.Register(context.Background(), studentRegistration("jane")); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	req := studentRegistration("jane")
	req.Email = "other@example.com"
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, apperrors.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestLoginCredentialFailuresAreIndistinguishable(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), studentRegistration("jane")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody", Password: "password123"})
	_, wrongPassErr := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "jane", Password: "not-the-password"})

	if !errors.Is(unknownErr, apperrors.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPassErr, apperrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Fatalf("error text differs: %q vs %q", unknownErr.Error(), wrongPassErr.Error())
	}
	if len(repo.lastLogins) != 0 {
		t.Fatal("failed logins must not touch last login")
	}
}

type brokenUserRepo struct {
	*memoryUserRepo
	err error
}

func (r *brokenUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, r.err
}

func TestLoginPropagatesDatabaseFailure(t *testing.T) {
	dbErr := errors.New("connection refused")
	svc := newAuthService(newMemoryUserRepo())
	svc.userRepo = &brokenUserRepo{memoryUserRepo: newMemoryUserRepo(), err: dbErr}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "jane", Password: "password123"})
	if errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatal("a database failure must not be reported as invalid credentials")
	}
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected the lookup error to propagate, got %v", err)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newAuthService(repo)

	registered, err := svc.Register(context.Background(), studentRegistration("jane"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "jane", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Account.ID != registered.Account.ID {
		t.Fatalf("account mismatch: %d vs %d", resp.Account.ID, registered.Account.ID)
	}
	if len(repo.lastLogins) != 1 || repo.lastLogins[0] != registered.Account.ID {
		t.Fatalf("expected one last-login update for account %d, got %v",
			registered.Account.ID, repo.lastLogins)
	}
}

func TestDeleteAccount(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newAuthService(repo)

	registered, err := svc.Register(context.Background(), studentRegistration("jane"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), registered.Account.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Username: "jane", Password: "password123"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected login to fail after deletion, got %v", err)
	}
}
