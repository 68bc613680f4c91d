package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/app/services"
	"github.com/kaganyildiz/academix/internal/middleware"
)

// ClassController handles class endpoints
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

// Create handles POST /api/classes
func (ctrl *ClassController) Create(c *gin.Context) {
	var req dto.CreateClassRequest
	if !bindJSON(c, &req) {
		return
	}

	class, err := ctrl.classService.Create(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(class, "Class created successfully"))
}

// GetAll handles GET /api/classes
func (ctrl *ClassController) GetAll(c *gin.Context) {
	classes, err := ctrl.classService.GetAll(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(classes, ""))
}

// GetByID handles GET /api/classes/:id
func (ctrl *ClassController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	class, err := ctrl.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(class, ""))
}

// GetStudents handles GET /api/classes/:id/students
func (ctrl *ClassController) GetStudents(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	students, err := ctrl.classService.GetStudents(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(students, ""))
}

// Update handles PUT /api/classes/:id
func (ctrl *ClassController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if !bindJSON(c, &req) {
		return
	}

	class, err := ctrl.classService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(class, "Class updated successfully"))
}

// Delete handles DELETE /api/classes/:id
func (ctrl *ClassController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.classService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Class deleted successfully"))
}
