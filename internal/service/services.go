package service

import (
	"CourseHub/internal/service/auth"
	"CourseHub/internal/service/catalog"
)

type Collection struct {
	*auth.AuthService
	*catalog.CourseService
	*catalog.LessonService
}
