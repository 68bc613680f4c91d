package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/app/repositories"
	"github.com/kaganyildiz/academix/internal/pkg/apperrors"
)

// ClassService handles class record operations
type ClassService struct {
	classRepo   repositories.IClassRepository
	studentRepo repositories.IStudentRepository
	teacherRepo repositories.ITeacherRepository
	logger      zerolog.Logger
}

// NewClassService creates a new ClassService
func NewClassService(
	classRepo repositories.IClassRepository,
	studentRepo repositories.IStudentRepository,
	teacherRepo repositories.ITeacherRepository,
	logger zerolog.Logger,
) *ClassService {
	return &ClassService{
		classRepo:   classRepo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// Create inserts a new class
func (s *ClassService) Create(ctx context.Context, req *dto.CreateClassRequest) (*models.Class, error) {
	if req.TeacherID != nil {
		if err := s.checkTeacherExists(ctx, *req.TeacherID); err != nil {
			return nil, err
		}
	}

	class := &models.Class{
		Name:       req.Name,
		GradeLevel: req.GradeLevel,
		TeacherID:  req.TeacherID,
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("classID", class.ID).Msg("Class created")
	return class, nil
}

// GetByID returns one class
func (s *ClassService) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

// GetAll returns every class
func (s *ClassService) GetAll(ctx context.Context) ([]*models.Class, error) {
	return s.classRepo.GetAll(ctx)
}

// GetStudents returns the students enrolled in a class
func (s *ClassService) GetStudents(ctx context.Context, classID int64) ([]*models.Student, error) {
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByClassID(ctx, classID)
}

// Update applies a partial update to a class
func (s *ClassService) Update(ctx context.Context, id int64, req *dto.UpdateClassRequest) (*models.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyIfSet(&class.Name, req.Name)
	if req.GradeLevel != nil {
		class.GradeLevel = *req.GradeLevel
	}
	if req.TeacherID != nil {
		if err := s.checkTeacherExists(ctx, *req.TeacherID); err != nil {
			return nil, err
		}
		class.TeacherID = req.TeacherID
	}

	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Delete removes a class
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	if err := s.classRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("classID", id).Msg("Class deleted")
	return nil
}

func (s *ClassService) checkTeacherExists(ctx context.Context, teacherID int64) error {
	_, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeacherNotFound) {
			return apperrors.NewValidationError("teacherId refers to a teacher that does not exist")
		}
		return err
	}
	return nil
}
