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
)

// StudentService handles student record operations
type StudentService struct {
	studentRepo repositories.IStudentRepository
	classRepo   repositories.IClassRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	classRepo repositories.IClassRepository,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		classRepo:   classRepo,
		logger:      logger,
	}
}

// Create inserts a new student record
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if req.ClassID != nil {
		if err := s.checkClassExists(ctx, *req.ClassID); err != nil {
			return nil, err
		}
	}

	student := &models.Student{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		EnrollmentDate: time.Now(),
		ClassID:        req.ClassID,
	}

	var err error
	if student.DateOfBirth, err = parseOptionalDate(req.DateOfBirth); err != nil {
		return nil, apperrors.NewValidationError("dateOfBirth must be in YYYY-MM-DD format")
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student created")
	return student, nil
}

// GetByID returns one student record
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetAll returns every student record
func (s *StudentService) GetAll(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// Update applies a partial update to a student record
func (s *StudentService) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyIfSet(&student.FirstName, req.FirstName)
	applyIfSet(&student.LastName, req.LastName)
	applyIfSet(&student.Email, req.Email)
	if req.Phone != nil {
		student.Phone = req.Phone
	}
	if req.ClassID != nil {
		if err := s.checkClassExists(ctx, *req.ClassID); err != nil {
			return nil, err
		}
		student.ClassID = req.ClassID
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student record
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

func (s *StudentService) checkClassExists(ctx context.Context, classID int64) error {
	_, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return apperrors.NewValidationError("classId refers to a class that does not exist")
		}
		return err
	}
	return nil
}
