package course

import (
	"context"
	"net/http"
	"strconv"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/delivery/http/controllers"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type QueryService interface {
	Courses(ctx context.Context) ([]models.Course, int, error)
	CoursesWithLessons(ctx context.Context) ([]models.Course, int, int, error)
	CourseByID(ctx context.Context, id int64) (*models.Course, int, error)
	CourseByURL(ctx context.Context, url string) (*models.Course, int, error)
	SearchCourses(ctx context.Context, query string, size int) ([]models.Course, int, error)
}

type QueryHandler struct {
	log     logger.Log
	service QueryService
}

func NewQueryHandler(l logger.Log, s QueryService) *QueryHandler {
	return &QueryHandler{log: l, service: s}
}

func (h *QueryHandler) GetAllCourses(c *gin.Context) {
	courses, total, err := h.service.Courses(c.Request.Context())
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	c.JSON(http.StatusOK, gin.H{
		"courses":      courses,
		"totalCourses": total,
	})
}

func (h *QueryHandler) GetAllCoursesWithLessons(c *gin.Context) {
	courses, totalCourses, totalLessons, err := h.service.CoursesWithLessons(c.Request.Context())
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	c.JSON(http.StatusOK, gin.H{
		"courses":      courses,
		"totalCourses": totalCourses,
		"totalLessons": totalLessons,
	})
}

func (h *QueryHandler) FindCourseByID(c *gin.Context) {
	courseID, err := ParseCourseID(c.Param("courseId"))
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	course, totalLessons, err := h.service.CourseByID(c.Request.Context(), courseID)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"course":       course,
		"totalLessons": totalLessons,
	})
}

func (h *QueryHandler) FindCourseByURL(c *gin.Context) {
	courseURL := c.Param("courseUrl")
	if courseURL == "" {
		controllers.RespondError(c, h.log, app_errors.ErrCourseNotFound)
		return
	}

	course, totalLessons, err := h.service.CourseByURL(c.Request.Context(), courseURL)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"course":       course,
		"totalLessons": totalLessons,
	})
}

func (h *QueryHandler) SearchCourses(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "query parameter q is required",
		})
		return
	}

	size := 10
	if raw := c.Query("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			controllers.RespondError(c, h.log, app_errors.ErrInvalidPaging)
			return
		}
		size = parsed
	}

	courses, total, err := h.service.SearchCourses(c.Request.Context(), query, size)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"courses":      courses,
		"totalCourses": total,
	})
}

// ParseCourseID enforces the positive-integer contract for course ids before
// anything touches the store.
func ParseCourseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, app_errors.ErrInvalidCourseID
	}
	return id, nil
}
