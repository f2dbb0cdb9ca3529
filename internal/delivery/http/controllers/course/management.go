package course

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/delivery/http/controllers"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ManagementService interface {
	CreateCourse(ctx context.Context, course models.Course) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, changes models.CourseChanges) error
	DeleteCourse(ctx context.Context, id int64) error
	UploadIcon(ctx context.Context, courseID int64, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type ManagementHandler struct {
	log     logger.Log
	service ManagementService
}

func NewManagementHandler(l logger.Log, s ManagementService) *ManagementHandler {
	return &ManagementHandler{log: l, service: s}
}

type newCourseRequest struct {
	Title           string `json:"title" binding:"required"`
	IconURL         string `json:"iconUrl"`
	LongDescription string `json:"longDescription"`
	Category        string `json:"category"`
	URL             string `json:"url" binding:"required"`
}

func (h *ManagementHandler) CreateCourse(c *gin.Context) {
	var input newCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.RespondError(c, h.log, app_errors.ErrNoPayload)
		return
	}

	course := models.Course{
		Title:           input.Title,
		IconURL:         input.IconURL,
		LongDescription: input.LongDescription,
		Category:        input.Category,
		URL:             input.URL,
	}
	savedCourse, err := h.service.CreateCourse(c.Request.Context(), course)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"savedCourse": savedCourse})
}

func (h *ManagementHandler) UpdateCourse(c *gin.Context) {
	courseID, err := ParseCourseID(c.Param("courseId"))
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	var changes models.CourseChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		controllers.RespondError(c, h.log, app_errors.ErrNoPayload)
		return
	}

	if err := h.service.UpdateCourse(c.Request.Context(), courseID, changes); err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Course %d was updated successfully", courseID),
	})
}

// DeleteCourse removes the course and its lessons as one unit. Unknown ids
// report success, matching delete-where semantics.
func (h *ManagementHandler) DeleteCourse(c *gin.Context) {
	courseID, err := ParseCourseID(c.Param("courseId"))
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	if err := h.service.DeleteCourse(c.Request.Context(), courseID); err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Course %d was deleted successfully", courseID),
	})
}

func (h *ManagementHandler) UploadIcon(c *gin.Context) {
	courseID, err := ParseCourseID(c.Param("courseId"))
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "file is required",
		})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename)))
	}

	url, err := h.service.UploadIcon(
		c.Request.Context(),
		courseID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		contentType,
	)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"iconUrl": url,
	})
}
