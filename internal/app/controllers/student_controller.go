package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/app/services"
	"github.com/kaganyildiz/academix/internal/middleware"
)

// StudentController handles student record endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// Create handles POST /api/students
func (ctrl *StudentController) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := ctrl.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(student, "Student created successfully"))
}

// GetAll handles GET /api/students
func (ctrl *StudentController) GetAll(c *gin.Context) {
	students, err := ctrl.studentService.GetAll(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(students, ""))
}

// GetByID handles GET /api/students/:id
func (ctrl *StudentController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	student, err := ctrl.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}

// Update handles PUT /api/students/:id
func (ctrl *StudentController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := ctrl.studentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Student updated successfully"))
}

// Delete handles DELETE /api/students/:id
func (ctrl *StudentController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.studentService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Student deleted successfully"))
}
