package lesson_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"CourseHub/internal/app_errors"
	lessoncontroller "CourseHub/internal/delivery/http/controllers/lesson"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLessonService struct {
	createFn func(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	listFn   func(ctx context.Context, courseID int64, pageNumber, pageSize int) ([]models.Lesson, error)
}

func (f *fakeLessonService) CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	if f.createFn != nil {
		return f.createFn(ctx, lesson)
	}
	return &lesson, nil
}

func (f *fakeLessonService) LessonsForCourse(ctx context.Context, courseID int64, pageNumber, pageSize int) ([]models.Lesson, error) {
	if f.listFn != nil {
		return f.listFn(ctx, courseID, pageNumber, pageSize)
	}
	return []models.Lesson{}, nil
}

func lessonRouter(service *fakeLessonService) *gin.Engine {
	h := lessoncontroller.NewLessonHandler(logger.NewDiscard(), service)
	r := gin.New()
	r.GET("/api/courses/id/:courseId/lessons", h.FindLessonsForCourse)
	r.POST("/api/courses/id/:courseId/lessons", h.CreateLesson)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateLesson(t *testing.T) {
	service := &fakeLessonService{
		createFn: func(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
			lesson.ID = 21
			lesson.SeqNo = 2
			return &lesson, nil
		},
	}
	w := doRequest(t, lessonRouter(service), http.MethodPost, "/api/courses/id/9/lessons",
		`{"title":"Channels","duration":"11:24"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Lesson models.Lesson `json:"lesson"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.Lesson.ID != 21 || body.Lesson.SeqNo != 2 || body.Lesson.CourseID != 9 {
		t.Fatalf("unexpected lesson payload: %+v", body.Lesson)
	}
}

func TestCreateLesson_BadRequests(t *testing.T) {
	service := &fakeLessonService{
		createFn: func(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
			return nil, app_errors.ErrCourseNotFound
		},
	}
	r := lessonRouter(service)

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"bad course id", "/api/courses/id/abc/lessons", `{"title":"x"}`, http.StatusBadRequest},
		{"missing title", "/api/courses/id/9/lessons", `{"duration":"1:00"}`, http.StatusBadRequest},
		{"not json", "/api/courses/id/9/lessons", "nope", http.StatusBadRequest},
		{"unknown course", "/api/courses/id/9/lessons", `{"title":"x"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, tt.target, tt.body)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestFindLessonsForCourse_DefaultPaging(t *testing.T) {
	var gotPageNumber, gotPageSize int
	service := &fakeLessonService{
		listFn: func(ctx context.Context, courseID int64, pageNumber, pageSize int) ([]models.Lesson, error) {
			gotPageNumber, gotPageSize = pageNumber, pageSize
			return []models.Lesson{}, nil
		},
	}
	w := doRequest(t, lessonRouter(service), http.MethodGet, "/api/courses/id/9/lessons", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotPageNumber != 0 || gotPageSize != 3 {
		t.Fatalf("expected default paging 0/3, got %d/%d", gotPageNumber, gotPageSize)
	}
}

func TestFindLessonsForCourse_ExplicitPaging(t *testing.T) {
	var gotPageNumber, gotPageSize int
	service := &fakeLessonService{
		listFn: func(ctx context.Context, courseID int64, pageNumber, pageSize int) ([]models.Lesson, error) {
			gotPageNumber, gotPageSize = pageNumber, pageSize
			return []models.Lesson{{ID: 1, Title: "intro", SeqNo: 1, CourseID: courseID}}, nil
		},
	}
	w := doRequest(t, lessonRouter(service), http.MethodGet,
		"/api/courses/id/9/lessons?pageNumber=2&pageSize=5", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotPageNumber != 2 || gotPageSize != 5 {
		t.Fatalf("expected paging 2/5, got %d/%d", gotPageNumber, gotPageSize)
	}
}

func TestFindLessonsForCourse_BadPaging(t *testing.T) {
	service := &fakeLessonService{
		listFn: func(ctx context.Context, courseID int64, pageNumber, pageSize int) ([]models.Lesson, error) {
			return nil, app_errors.ErrInvalidPaging
		},
	}
	r := lessonRouter(service)

	for _, target := range []string{
		"/api/courses/id/9/lessons?pageNumber=abc",
		"/api/courses/id/9/lessons?pageSize=abc",
		"/api/courses/id/9/lessons?pageNumber=-1",
	} {
		w := doRequest(t, r, http.MethodGet, target, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, w.Code)
		}
	}
}
