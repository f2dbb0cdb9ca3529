package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
)

// CatalogMemory is an in-memory stand-in for the postgres repositories. It
// keeps the same sequencing and cascade semantics under a single mutex, which
// makes it usable for service-level tests without a database.
type CatalogMemory struct {
	mu      sync.Mutex
	nextID  int64
	courses map[int64]models.Course
	lessons map[int64]models.Lesson
	users   map[int64]models.User
}

func NewCatalogMemory() *CatalogMemory {
	return &CatalogMemory{
		nextID:  1,
		courses: make(map[int64]models.Course),
		lessons: make(map[int64]models.Lesson),
		users:   make(map[int64]models.User),
	}
}

func (m *CatalogMemory) allocID() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *CatalogMemory) NewCourse(ctx context.Context, course *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.courses {
		if c.URL == course.URL && course.URL != "" {
			return app_errors.ErrCourseURLTaken
		}
	}

	var maxSeqNo int64
	for _, c := range m.courses {
		if c.SeqNo > maxSeqNo {
			maxSeqNo = c.SeqNo
		}
	}
	course.SeqNo = maxSeqNo + 1
	course.ID = m.allocID()

	now := time.Now().UTC()
	course.CreatedAt = now
	course.LastUpdatedAt = now

	m.courses[course.ID] = *course
	return nil
}

func (m *CatalogMemory) CourseByID(ctx context.Context, id int64) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return &c, nil
}

func (m *CatalogMemory) CourseByURL(ctx context.Context, url string) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.courses {
		if c.URL == url {
			course := c
			return &course, nil
		}
	}
	return nil, app_errors.ErrCourseNotFound
}

func (m *CatalogMemory) ListCourses(ctx context.Context) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedCourses(), nil
}

func (m *CatalogMemory) sortedCourses() []models.Course {
	courses := make([]models.Course, 0, len(m.courses))
	for _, c := range m.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].SeqNo > courses[j].SeqNo })
	return courses
}

func (m *CatalogMemory) ListCoursesWithLessons(ctx context.Context) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	courses := m.sortedCourses()
	for i := range courses {
		courses[i].Lessons = m.lessonsFor(courses[i].ID)
	}
	return courses, nil
}

func (m *CatalogMemory) lessonsFor(courseID int64) []models.Lesson {
	var lessons []models.Lesson
	for _, l := range m.lessons {
		if l.CourseID == courseID {
			lessons = append(lessons, l)
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].SeqNo < lessons[j].SeqNo })
	return lessons
}

func (m *CatalogMemory) CountCourses(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.courses), nil
}

func (m *CatalogMemory) UpdateCourse(ctx context.Context, id int64, changes models.CourseChanges) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.courses[id]
	if !ok {
		return nil
	}
	if changes.Title != nil {
		c.Title = *changes.Title
	}
	if changes.IconURL != nil {
		c.IconURL = *changes.IconURL
	}
	if changes.LongDescription != nil {
		c.LongDescription = *changes.LongDescription
	}
	if changes.Category != nil {
		c.Category = *changes.Category
	}
	if changes.URL != nil {
		c.URL = *changes.URL
	}
	c.LastUpdatedAt = time.Now().UTC()
	m.courses[id] = c
	return nil
}

func (m *CatalogMemory) SetCourseIcon(ctx context.Context, id int64, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.courses[id]
	if !ok {
		return app_errors.ErrCourseNotFound
	}
	c.IconObjectKey = objectKey
	c.LastUpdatedAt = time.Now().UTC()
	m.courses[id] = c
	return nil
}

func (m *CatalogMemory) DeleteCourseCascade(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for lessonID, l := range m.lessons {
		if l.CourseID == id {
			delete(m.lessons, lessonID)
		}
	}
	if _, ok := m.courses[id]; !ok {
		return 0, nil
	}
	delete(m.courses, id)
	return 1, nil
}

func (m *CatalogMemory) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.courses[lesson.CourseID]; !ok {
		return app_errors.ErrCourseNotFound
	}

	var maxSeqNo int64
	for _, l := range m.lessons {
		if l.CourseID == lesson.CourseID && l.SeqNo > maxSeqNo {
			maxSeqNo = l.SeqNo
		}
	}
	lesson.SeqNo = maxSeqNo + 1
	lesson.ID = m.allocID()

	now := time.Now().UTC()
	lesson.CreatedAt = now
	lesson.LastUpdatedAt = now

	m.lessons[lesson.ID] = *lesson
	return nil
}

func (m *CatalogMemory) LessonsPage(ctx context.Context, courseID int64, pageNumber, pageSize int) ([]models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lessons := m.lessonsFor(courseID)
	start := pageNumber * pageSize
	if start >= len(lessons) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(lessons) {
		end = len(lessons)
	}
	return lessons[start:end], nil
}

func (m *CatalogMemory) CountLessons(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lessons), nil
}

func (m *CatalogMemory) CountLessonsByCourse(ctx context.Context, courseID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lessonsFor(courseID)), nil
}

func (m *CatalogMemory) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return app_errors.ErrUserExists
		}
	}
	user.ID = m.allocID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.LastUpdatedAt = now
	m.users[user.ID] = *user
	return nil
}

func (m *CatalogMemory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, app_errors.ErrUserNotFound
}
