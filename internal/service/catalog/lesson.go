package catalog

import (
	"context"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"
)

type lessonRepo interface {
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	LessonsPage(ctx context.Context, courseID int64, pageNumber, pageSize int) ([]models.Lesson, error)
}

type LessonService struct {
	log        logger.Log
	lessonRepo lessonRepo
}

func NewLessonService(log logger.Log, repo lessonRepo) *LessonService {
	return &LessonService{log: log, lessonRepo: repo}
}

// CreateLesson persists a lesson under its course; the sequence number is
// assigned by the repository inside the creation transaction.
func (s *LessonService) CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	if lesson.Title == "" {
		return nil, app_errors.ErrNoLessonPayload
	}
	if err := s.lessonRepo.CreateLesson(ctx, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (s *LessonService) LessonsForCourse(ctx context.Context, courseID int64, pageNumber, pageSize int) ([]models.Lesson, error) {
	if pageNumber < 0 || pageSize <= 0 {
		return nil, app_errors.ErrInvalidPaging
	}
	lessons, err := s.lessonRepo.LessonsPage(ctx, courseID, pageNumber, pageSize)
	if err != nil {
		return nil, err
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	return lessons, nil
}
