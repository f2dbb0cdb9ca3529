package catalog

import (
	"context"
	"errors"
	"io"
	"strings"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"
)

const maxIconSize = 2 << 20

type courseRepo interface {
	NewCourse(ctx context.Context, course *models.Course) error
	CourseByID(ctx context.Context, id int64) (*models.Course, error)
	CourseByURL(ctx context.Context, url string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListCoursesWithLessons(ctx context.Context) ([]models.Course, error)
	CountCourses(ctx context.Context) (int, error)
	UpdateCourse(ctx context.Context, id int64, changes models.CourseChanges) error
	SetCourseIcon(ctx context.Context, id int64, objectKey string) error
	DeleteCourseCascade(ctx context.Context, id int64) (int64, error)
}

type lessonCounter interface {
	CountLessons(ctx context.Context) (int, error)
	CountLessonsByCourse(ctx context.Context, courseID int64) (int, error)
}

type IconRepo interface {
	UploadIcon(ctx context.Context, courseID int64, filename string, reader io.Reader, size int64, contentType string) (string, error)
	IconURL(ctx context.Context, objectKey string) (string, error)
	DeleteIcon(ctx context.Context, objectKey string) error
}

type SearchRepo interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, size int) ([]int64, error)
	Count(ctx context.Context, query string) (int, error)
}

type CourseService struct {
	log        logger.Log
	courseRepo courseRepo
	lessonRepo lessonCounter
	iconRepo   IconRepo
	searchRepo SearchRepo
}

// NewCourseService wires the course use cases. iconRepo and searchRepo may be
// nil when object storage or the search cluster are not configured; the
// corresponding features degrade to no-ops.
func NewCourseService(log logger.Log, c courseRepo, l lessonCounter, icons IconRepo, search SearchRepo) *CourseService {
	return &CourseService{
		log:        log,
		courseRepo: c,
		lessonRepo: l,
		iconRepo:   icons,
		searchRepo: search,
	}
}

func (s *CourseService) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	if course.Title == "" {
		return nil, app_errors.ErrNoPayload
	}
	if err := s.courseRepo.NewCourse(ctx, &course); err != nil {
		return nil, err
	}

	// indexing is best effort, a search outage must not fail the write
	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, course); err != nil {
			s.log.ErrorErr("failed to index course", err, "course_id", course.ID)
		}
	}
	return &course, nil
}

func (s *CourseService) Courses(ctx context.Context) ([]models.Course, int, error) {
	courses, err := s.courseRepo.ListCourses(ctx)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.courseRepo.CountCourses(ctx)
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (s *CourseService) CoursesWithLessons(ctx context.Context) (courses []models.Course, totalCourses, totalLessons int, err error) {
	courses, err = s.courseRepo.ListCoursesWithLessons(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	totalCourses, err = s.courseRepo.CountCourses(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	totalLessons, err = s.lessonRepo.CountLessons(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	return courses, totalCourses, totalLessons, nil
}

func (s *CourseService) CourseByID(ctx context.Context, id int64) (*models.Course, int, error) {
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return s.withLessonCount(ctx, course)
}

func (s *CourseService) CourseByURL(ctx context.Context, url string) (*models.Course, int, error) {
	course, err := s.courseRepo.CourseByURL(ctx, url)
	if err != nil {
		return nil, 0, err
	}
	return s.withLessonCount(ctx, course)
}

func (s *CourseService) withLessonCount(ctx context.Context, course *models.Course) (*models.Course, int, error) {
	totalLessons, err := s.lessonRepo.CountLessonsByCourse(ctx, course.ID)
	if err != nil {
		return nil, 0, err
	}
	s.resolveIconURL(ctx, course)
	return course, totalLessons, nil
}

// resolveIconURL swaps the stored object key for a presigned URL when an
// uploaded icon exists. Failures only get logged, the plain icon_url column
// still serves.
func (s *CourseService) resolveIconURL(ctx context.Context, course *models.Course) {
	if s.iconRepo == nil || course.IconObjectKey == "" {
		return
	}
	url, err := s.iconRepo.IconURL(ctx, course.IconObjectKey)
	if err != nil {
		s.log.ErrorErr("failed to presign icon URL", err, "course_id", course.ID)
		return
	}
	course.IconURL = url
}

func (s *CourseService) UpdateCourse(ctx context.Context, id int64, changes models.CourseChanges) error {
	if changes.Empty() {
		return app_errors.ErrNoPayload
	}
	if err := s.courseRepo.UpdateCourse(ctx, id, changes); err != nil {
		return err
	}

	if s.searchRepo != nil {
		course, err := s.courseRepo.CourseByID(ctx, id)
		if err == nil {
			if err := s.searchRepo.Index(ctx, *course); err != nil {
				s.log.ErrorErr("failed to reindex course", err, "course_id", id)
			}
		} else if !errors.Is(err, app_errors.ErrCourseNotFound) {
			s.log.ErrorErr("failed to load course for reindex", err, "course_id", id)
		}
	}
	return nil
}

// DeleteCourse removes the course together with its lessons. Deleting an id
// that does not exist reports success.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	var iconKey string
	if s.iconRepo != nil {
		if course, err := s.courseRepo.CourseByID(ctx, id); err == nil {
			iconKey = course.IconObjectKey
		}
	}

	deleted, err := s.courseRepo.DeleteCourseCascade(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return nil
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			s.log.ErrorErr("failed to remove course from index", err, "course_id", id)
		}
	}
	if s.iconRepo != nil && iconKey != "" {
		if err := s.iconRepo.DeleteIcon(ctx, iconKey); err != nil {
			s.log.ErrorErr("failed to remove course icon", err, "course_id", id)
		}
	}
	return nil
}

func (s *CourseService) UploadIcon(ctx context.Context, courseID int64, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.iconRepo == nil {
		return "", app_errors.ErrIconNotFound
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", app_errors.ErrNotImage
	}
	if size <= 0 || size > maxIconSize {
		return "", app_errors.ErrFileSize
	}

	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return "", err
	}

	objectKey, err := s.iconRepo.UploadIcon(ctx, courseID, filename, reader, size, contentType)
	if err != nil {
		return "", err
	}
	if err := s.courseRepo.SetCourseIcon(ctx, courseID, objectKey); err != nil {
		return "", err
	}
	return s.iconRepo.IconURL(ctx, objectKey)
}

func (s *CourseService) SearchCourses(ctx context.Context, query string, size int) ([]models.Course, int, error) {
	if s.searchRepo == nil {
		return []models.Course{}, 0, nil
	}

	ids, err := s.searchRepo.Search(ctx, query, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.searchRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	courses := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		course, err := s.courseRepo.CourseByID(ctx, id)
		if err != nil {
			// the index can lag behind deletes
			if errors.Is(err, app_errors.ErrCourseNotFound) {
				continue
			}
			return nil, 0, err
		}
		s.resolveIconURL(ctx, course)
		courses = append(courses, *course)
	}
	return courses, total, nil
}
