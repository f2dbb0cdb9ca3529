package http

import (
	"time"

	"CourseHub/internal/delivery/http/controllers"
	authcontroller "CourseHub/internal/delivery/http/controllers/auth"
	coursecontroller "CourseHub/internal/delivery/http/controllers/course"
	lessoncontroller "CourseHub/internal/delivery/http/controllers/lesson"
	"CourseHub/internal/delivery/http/controllers/middleware"
	"CourseHub/internal/service"
	"CourseHub/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	authController := authcontroller.NewAuthHandler(l, u.AuthService)
	courseQuery := coursecontroller.NewQueryHandler(l, u.CourseService)
	courseManagement := coursecontroller.NewManagementHandler(l, u.CourseService)
	lessonController := lessoncontroller.NewLessonHandler(l, u.LessonService)
	authProvider := middleware.NewAuthProvider(l, u.AuthService)

	r.GET("/", statusController.Root)

	api := r.Group("/api", middleware.RequestID(), middleware.Logging(l))
	{
		api.GET("/status", statusController.Status)
		api.POST("/login", authController.Login)

		protected := api.Group("", authProvider.Auth)
		{
			courses := protected.Group("/courses")
			{
				courses.GET("", courseQuery.GetAllCourses)
				courses.POST("", courseManagement.CreateCourse)
				courses.GET("/search", courseQuery.SearchCourses)
				courses.GET("/url/:courseUrl", courseQuery.FindCourseByURL)
				courses.GET("/id/:courseId", courseQuery.FindCourseByID)
				courses.PATCH("/id/:courseId", courseManagement.UpdateCourse)
				courses.DELETE("/id/:courseId", courseManagement.DeleteCourse)
				courses.GET("/id/:courseId/lessons", lessonController.FindLessonsForCourse)
				courses.POST("/id/:courseId/lessons", lessonController.CreateLesson)
			}
			protected.GET("/courses-include-lessons", courseQuery.GetAllCoursesWithLessons)

			admin := protected.Group("", middleware.RequireAdmin())
			{
				admin.POST("/users", authController.CreateUser)
				admin.PUT("/courses/id/:courseId/icon", courseManagement.UploadIcon)
			}
		}
	}
	return r
}
