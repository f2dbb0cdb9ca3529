package controllers

import (
	"errors"
	"net/http"

	"CourseHub/internal/app_errors"
	"CourseHub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RespondError is the single point where service errors turn into HTTP
// statuses. Anything unrecognized is a store failure: logged with context and
// reported as a 500 without detail.
func RespondError(c *gin.Context, log logger.Log, err error) {
	switch {
	case errors.Is(err, app_errors.ErrNoPayload),
		errors.Is(err, app_errors.ErrNoLessonPayload),
		errors.Is(err, app_errors.ErrInvalidCourseID),
		errors.Is(err, app_errors.ErrInvalidPaging),
		errors.Is(err, app_errors.ErrEmailRequired),
		errors.Is(err, app_errors.ErrPasswordRequired),
		errors.Is(err, app_errors.ErrNotImage),
		errors.Is(err, app_errors.ErrCourseURLTaken):
		fail(c, http.StatusBadRequest, err)
	case errors.Is(err, app_errors.ErrCourseNotFound),
		errors.Is(err, app_errors.ErrIconNotFound):
		fail(c, http.StatusNotFound, err)
	case errors.Is(err, app_errors.ErrIncorrectPassword),
		errors.Is(err, app_errors.ErrTokenExpired),
		errors.Is(err, app_errors.ErrInvalidToken),
		errors.Is(err, app_errors.ErrNotAdmin):
		fail(c, http.StatusForbidden, err)
	case errors.Is(err, app_errors.ErrUserExists):
		fail(c, http.StatusConflict, err)
	case errors.Is(err, app_errors.ErrFileSize):
		fail(c, http.StatusRequestEntityTooLarge, err)
	default:
		log.ErrorErr("request failed", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Internal Server Error",
		})
	}
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{
		"status":  "fail",
		"message": err.Error(),
	})
}
