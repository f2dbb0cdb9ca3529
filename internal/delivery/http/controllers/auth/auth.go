package auth

import (
	"context"
	"net/http"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/delivery/http/controllers"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	CreateUser(ctx context.Context, email, password, pictureURL string, isAdmin bool) (*models.User, error)
}

type AuthHandler struct {
	log     logger.Log
	service AuthService
}

func NewAuthHandler(l logger.Log, s AuthService) *AuthHandler {
	return &AuthHandler{log: l, service: s}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.RespondError(c, h.log, app_errors.ErrEmailRequired)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user.Public(),
		"authJwtToken": token,
	})
}

type newUserRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	PictureURL string `json:"pictureUrl"`
	IsAdmin    bool   `json:"isAdmin"`
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var input newUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.RespondError(c, h.log, app_errors.ErrEmailRequired)
		return
	}

	user, err := h.service.CreateUser(
		c.Request.Context(),
		input.Email, input.Password, input.PictureURL, input.IsAdmin,
	)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}
