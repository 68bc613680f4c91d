package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/app/repositories"
	"github.com/kaganyildiz/academix/internal/pkg/apperrors"
)

// TeacherService handles teacher record operations
type TeacherService struct {
	teacherRepo repositories.ITeacherRepository
	logger      zerolog.Logger
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(teacherRepo repositories.ITeacherRepository, logger zerolog.Logger) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// Create inserts a new teacher record
func (s *TeacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	teacher := &models.Teacher{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		HireDate:   time.Now(),
		Department: req.Department,
	}

	if req.HireDate != nil && *req.HireDate != "" {
		hireDate, err := time.Parse(dateLayout, *req.HireDate)
		if err != nil {
			return nil, apperrors.NewValidationError("hireDate must be in YYYY-MM-DD format")
		}
		teacher.HireDate = hireDate
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("teacherID", teacher.ID).Msg("Teacher created")
	return teacher, nil
}

// GetByID returns one teacher record
func (s *TeacherService) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}

// GetAll returns every teacher record
func (s *TeacherService) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	return s.teacherRepo.GetAll(ctx)
}

// Update applies a partial update to a teacher record
func (s *TeacherService) Update(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyIfSet(&teacher.FirstName, req.FirstName)
	applyIfSet(&teacher.LastName, req.LastName)
	applyIfSet(&teacher.Email, req.Email)
	if req.Phone != nil {
		teacher.Phone = req.Phone
	}
	if req.Department != nil {
		teacher.Department = req.Department
	}

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// Delete removes a teacher record
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("teacherID", id).Msg("Teacher deleted")
	return nil
}
