package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/app/services"
	"github.com/kaganyildiz/academix/internal/middleware"
)

// TeacherController handles teacher record endpoints
type TeacherController struct {
	teacherService *services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService *services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// Create handles POST /api/teachers
func (ctrl *TeacherController) Create(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}

	teacher, err := ctrl.teacherService.Create(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(teacher, "Teacher created successfully"))
}

// GetAll handles GET /api/teachers
func (ctrl *TeacherController) GetAll(c *gin.Context) {
	teachers, err := ctrl.teacherService.GetAll(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(teachers, ""))
}

// GetByID handles GET /api/teachers/:id
func (ctrl *TeacherController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	teacher, err := ctrl.teacherService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(teacher, ""))
}

// Update handles PUT /api/teachers/:id
func (ctrl *TeacherController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}

	teacher, err := ctrl.teacherService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(teacher, "Teacher updated successfully"))
}

// Delete handles DELETE /api/teachers/:id
func (ctrl *TeacherController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.teacherService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Teacher deleted successfully"))
}
