package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
}

func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

func (h *StatusHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Course catalog server is running...")
}

func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Available"})
}
