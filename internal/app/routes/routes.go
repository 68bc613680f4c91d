package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kaganyildiz/academix/internal/app/controllers"
	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/middleware"
	"github.com/kaganyildiz/academix/internal/pkg/metrics"
)

// Controllers bundles every route handler
type Controllers struct {
	Auth    *controllers.AuthController
	Student *controllers.StudentController
	Teacher *controllers.TeacherController
	Class   *controllers.ClassController
	Health  *controllers.HealthController
}

// SetupRoutes mounts the API surface on the router
func SetupRoutes(router *gin.Engine, ctrl Controllers, authMW *middleware.AuthMiddleware) {
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")

	api.GET("/health", ctrl.Health.Check)

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)

		protected := auth.Group("")
		protected.Use(authMW.JWTAuth())
		{
			protected.GET("/profile", ctrl.Auth.GetProfile)
			protected.PUT("/profile", ctrl.Auth.UpdateProfile)
			protected.DELETE("/account", ctrl.Auth.DeleteAccount)
		}
	}

	students := api.Group("/students")
	students.Use(authMW.JWTAuth())
	{
		students.GET("", authMW.RequireRole(models.RoleTeacher, models.RoleAdmin), ctrl.Student.GetAll)
		students.POST("", authMW.RequireRole(models.RoleTeacher, models.RoleAdmin), ctrl.Student.Create)
		students.GET("/:id", authMW.RequireStudentAccess("id"), ctrl.Student.GetByID)
		students.PUT("/:id", authMW.RequireStudentAccess("id"), ctrl.Student.Update)
		students.DELETE("/:id", authMW.RequireRole(models.RoleAdmin), ctrl.Student.Delete)
	}

	teachers := api.Group("/teachers")
	teachers.Use(authMW.JWTAuth())
	{
		teachers.GET("", ctrl.Teacher.GetAll)
		teachers.POST("", authMW.RequireRole(models.RoleAdmin), ctrl.Teacher.Create)
		teachers.GET("/:id", authMW.RequireOwnershipOrAdmin("id"), ctrl.Teacher.GetByID)
		teachers.PUT("/:id", authMW.RequireOwnershipOrAdmin("id"), ctrl.Teacher.Update)
		teachers.DELETE("/:id", authMW.RequireRole(models.RoleAdmin), ctrl.Teacher.Delete)
	}

	classes := api.Group("/classes")
	classes.Use(authMW.JWTAuth())
	{
		classes.GET("", ctrl.Class.GetAll)
		classes.GET("/:id", ctrl.Class.GetByID)
		classes.GET("/:id/students", authMW.RequireRole(models.RoleTeacher, models.RoleAdmin), ctrl.Class.GetStudents)
		classes.POST("", authMW.RequireRole(models.RoleTeacher, models.RoleAdmin), ctrl.Class.Create)
		classes.PUT("/:id", authMW.RequireRole(models.RoleTeacher, models.RoleAdmin), ctrl.Class.Update)
		classes.DELETE("/:id", authMW.RequireRole(models.RoleTeacher, models.RoleAdmin), ctrl.Class.Delete)
	}
}
