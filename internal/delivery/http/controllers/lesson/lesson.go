package lesson

import (
	"context"
	"net/http"
	"strconv"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/delivery/http/controllers"
	"CourseHub/internal/delivery/http/controllers/course"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageNumber = 0
	defaultPageSize   = 3
)

type LessonService interface {
	CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	LessonsForCourse(ctx context.Context, courseID int64, pageNumber, pageSize int) ([]models.Lesson, error)
}

type LessonHandler struct {
	log     logger.Log
	service LessonService
}

func NewLessonHandler(l logger.Log, s LessonService) *LessonHandler {
	return &LessonHandler{log: l, service: s}
}

type newLessonRequest struct {
	Title    string `json:"title" binding:"required"`
	Duration string `json:"duration"`
}

func (h *LessonHandler) CreateLesson(c *gin.Context) {
	courseID, err := course.ParseCourseID(c.Param("courseId"))
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	var input newLessonRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.RespondError(c, h.log, app_errors.ErrNoLessonPayload)
		return
	}

	lesson, err := h.service.CreateLesson(c.Request.Context(), models.Lesson{
		Title:    input.Title,
		Duration: input.Duration,
		CourseID: courseID,
	})
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lesson": lesson})
}

func (h *LessonHandler) FindLessonsForCourse(c *gin.Context) {
	courseID, err := course.ParseCourseID(c.Param("courseId"))
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	pageNumber, err := pagingParam(c, "pageNumber", defaultPageNumber)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	pageSize, err := pagingParam(c, "pageSize", defaultPageSize)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	lessons, err := h.service.LessonsForCourse(c.Request.Context(), courseID, pageNumber, pageSize)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

func pagingParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, app_errors.ErrInvalidPaging
	}
	return value, nil
}
