package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/app/repositories"
	"github.com/kaganyildiz/academix/internal/pkg/apperrors"
	"github.com/kaganyildiz/academix/internal/pkg/auth"
	"github.com/kaganyildiz/academix/internal/pkg/cache"
)

const dateLayout = "2006-01-02"

// AuthService handles registration, login and account lifecycle
type AuthService struct {
	userRepo    repositories.IUserRepository
	studentRepo repositories.IStudentRepository
	teacherRepo repositories.ITeacherRepository
	jwtService  *auth.JWTService
	userCache   *cache.UserCache
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService. userCache may be nil.
func NewAuthService(
	userRepo repositories.IUserRepository,
	studentRepo repositories.IStudentRepository,
	teacherRepo repositories.ITeacherRepository,
	jwtService *auth.JWTService,
	userCache *cache.UserCache,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		jwtService:  jwtService,
		userCache:   userCache,
		logger:      logger,
	}
}

// Register creates an account and, for students and teachers, its profile row.
// Username uniqueness is left to the database constraint so two concurrent
// registrations of the same name cannot both succeed.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, apperrors.ErrInvalidRole
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         role,
	}

	switch role {
	case models.RoleStudent:
		if req.FirstName == "" || req.LastName == "" || req.Email == "" {
			return nil, apperrors.NewValidationError("First name, last name, and email are required for students")
		}
		student := &models.Student{
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Email:          req.Email,
			Phone:          req.Phone,
			EnrollmentDate: time.Now(),
			ClassID:        req.ClassID,
		}
		if student.DateOfBirth, err = parseOptionalDate(req.DateOfBirth); err != nil {
			return nil, apperrors.NewValidationError("dateOfBirth must be in YYYY-MM-DD format")
		}
		if err := s.userRepo.CreateStudentUser(ctx, user, student); err != nil {
			return nil, err
		}

	case models.RoleTeacher:
		if req.FirstName == "" || req.LastName == "" || req.Email == "" {
			return nil, apperrors.NewValidationError("First name, last name, and email are required for teachers")
		}
		teacher := &models.Teacher{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Phone:      req.Phone,
			HireDate:   time.Now(),
			Department: req.Department,
		}
		if req.HireDate != nil {
			hireDate, err := time.Parse(dateLayout, *req.HireDate)
			if err != nil {
				return nil, apperrors.NewValidationError("hireDate must be in YYYY-MM-DD format")
			}
			teacher.HireDate = hireDate
		}
		if err := s.userRepo.CreateTeacherUser(ctx, user, teacher); err != nil {
			return nil, err
		}

	case models.RoleAdmin:
		if err := s.userRepo.CreateAdminUser(ctx, user); err != nil {
			return nil, err
		}
	}

	token, _, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("Account registered")

	return &dto.RegisterResponse{
		Account: dto.NewAccountData(user),
		Token:   token,
	}, nil
}

// Login verifies credentials and issues a token. Unknown username and wrong
// password both surface as ErrInvalidCredentials so responses cannot be used
// to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Only a missing account collapses into the credentials error. An
		// infrastructure failure must keep its identity and surface as a 500.
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is best effort
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record login time")
	} else {
		now := time.Now()
		user.LastLoginAt = &now
		s.userCache.Invalidate(ctx, user.ID)
	}

	token, _, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	profile := s.loadProfile(ctx, user)

	s.logger.Info().Str("username", user.Username).Msg("Login successful")

	return &dto.LoginResponse{
		Account: dto.NewAccountData(user),
		Profile: profile,
		Token:   token,
	}, nil
}

// GetProfile returns the account and its role-specific profile
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		Account: dto.NewAccountData(user),
		Profile: s.loadProfile(ctx, user),
	}, nil
}

// UpdateProfile applies a partial update to the caller's profile row
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case models.RoleStudent:
		if user.StudentID == nil {
			return nil, apperrors.ErrStudentNotFound
		}
		student, err := s.studentRepo.GetByID(ctx, *user.StudentID)
		if err != nil {
			return nil, err
		}
		applyIfSet(&student.FirstName, req.FirstName)
		applyIfSet(&student.LastName, req.LastName)
		applyIfSet(&student.Email, req.Email)
		if req.Phone != nil {
			student.Phone = req.Phone
		}
		if err := s.studentRepo.Update(ctx, student); err != nil {
			return nil, err
		}

	case models.RoleTeacher:
		if user.TeacherID == nil {
			return nil, apperrors.ErrTeacherNotFound
		}
		teacher, err := s.teacherRepo.GetByID(ctx, *user.TeacherID)
		if err != nil {
			return nil, err
		}
		applyIfSet(&teacher.FirstName, req.FirstName)
		applyIfSet(&teacher.LastName, req.LastName)
		applyIfSet(&teacher.Email, req.Email)
		if req.Phone != nil {
			teacher.Phone = req.Phone
		}
		if err := s.teacherRepo.Update(ctx, teacher); err != nil {
			return nil, err
		}

	case models.RoleAdmin:
		return nil, apperrors.NewValidationError("Admin accounts have no profile to update")
	}

	return &dto.ProfileResponse{
		Account: dto.NewAccountData(user),
		Profile: s.loadProfile(ctx, user),
	}, nil
}

// DeleteAccount removes the account and its profile row, then drops the
// cached entry so stale identities cannot outlive the account by more than
// one cache round trip.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user); err != nil {
		return err
	}

	s.userCache.Invalidate(ctx, userID)
	s.logger.Info().Str("username", user.Username).Msg("Account deleted")
	return nil
}

// loadProfile fetches the role-specific profile. A missing profile is logged
// and returned as nil rather than failing the whole request.
func (s *AuthService) loadProfile(ctx context.Context, user *models.User) interface{} {
	if !user.Role.HasProfile() {
		return nil
	}

	switch user.Role {
	case models.RoleStudent:
		if user.StudentID == nil {
			return nil
		}
		student, err := s.studentRepo.GetByID(ctx, *user.StudentID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Student profile lookup failed")
			return nil
		}
		return student

	case models.RoleTeacher:
		if user.TeacherID == nil {
			return nil
		}
		teacher, err := s.teacherRepo.GetByID(ctx, *user.TeacherID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Teacher profile lookup failed")
			return nil
		}
		return teacher
	}
	return nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
