package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
	"CourseHub/internal/service/catalog"
	"CourseHub/internal/storage/memory"
	"CourseHub/pkg/logger"
)

func newLessonFixture(t *testing.T) (*catalog.CourseService, *catalog.LessonService, *memory.CatalogMemory) {
	t.Helper()
	store := memory.NewCatalogMemory()
	return newCourseService(store), catalog.NewLessonService(logger.NewDiscard(), store), store
}

func TestCreateLesson_PerCourseSequencing(t *testing.T) {
	courses, lessons, _ := newLessonFixture(t)
	ctx := context.Background()

	first := mustCreateCourse(t, courses, "First", "first")
	second := mustCreateCourse(t, courses, "Second", "second")

	// interleave inserts across the two courses
	order := []int64{first.ID, second.ID, first.ID, first.ID, second.ID}
	got := map[int64][]int64{}
	for i, courseID := range order {
		lesson, err := lessons.CreateLesson(ctx, models.Lesson{
			Title:    fmt.Sprintf("lesson %d", i),
			CourseID: courseID,
		})
		if err != nil {
			t.Fatalf("CreateLesson error: %v", err)
		}
		got[courseID] = append(got[courseID], lesson.SeqNo)
	}

	wantFirst := []int64{1, 2, 3}
	wantSecond := []int64{1, 2}
	for i, seq := range got[first.ID] {
		if seq != wantFirst[i] {
			t.Fatalf("first course seqNos: got %v, want %v", got[first.ID], wantFirst)
		}
	}
	for i, seq := range got[second.ID] {
		if seq != wantSecond[i] {
			t.Fatalf("second course seqNos: got %v, want %v", got[second.ID], wantSecond)
		}
	}
}

// Each course keeps its own dense sequence even when lessons for both are
// created concurrently.
func TestCreateLesson_ConcurrentPerCourseSeqNo(t *testing.T) {
	courses, lessons, _ := newLessonFixture(t)
	ctx := context.Background()

	first := mustCreateCourse(t, courses, "First", "first")
	second := mustCreateCourse(t, courses, "Second", "second")

	const perCourse = 25
	type result struct {
		courseID int64
		seqNo    int64
	}
	var wg sync.WaitGroup
	results := make(chan result, 2*perCourse)
	errs := make(chan error, 2*perCourse)

	for _, courseID := range []int64{first.ID, second.ID} {
		for i := 0; i < perCourse; i++ {
			wg.Add(1)
			go func(courseID int64, i int) {
				defer wg.Done()
				lesson, err := lessons.CreateLesson(ctx, models.Lesson{
					Title:    fmt.Sprintf("lesson %d", i),
					CourseID: courseID,
				})
				if err != nil {
					errs <- err
					return
				}
				results <- result{courseID: courseID, seqNo: lesson.SeqNo}
			}(courseID, i)
		}
	}
	wg.Wait()
	close(errs)
	close(results)

	for err := range errs {
		t.Fatalf("CreateLesson error: %v", err)
	}

	seen := map[int64]map[int64]bool{
		first.ID:  {},
		second.ID: {},
	}
	for r := range results {
		if seen[r.courseID][r.seqNo] {
			t.Fatalf("course %d: seqNo %d was assigned twice", r.courseID, r.seqNo)
		}
		seen[r.courseID][r.seqNo] = true
	}
	for courseID, got := range seen {
		if len(got) != perCourse {
			t.Fatalf("course %d: expected %d lessons, got %d", courseID, perCourse, len(got))
		}
		for want := int64(1); want <= perCourse; want++ {
			if !got[want] {
				t.Fatalf("course %d: seqNo %d is missing", courseID, want)
			}
		}
	}
}

func TestCreateLesson_MissingCourse(t *testing.T) {
	_, lessons, store := newLessonFixture(t)
	ctx := context.Background()

	_, err := lessons.CreateLesson(ctx, models.Lesson{Title: "orphan", CourseID: 555})
	if !errors.Is(err, app_errors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}

	total, err := store.CountLessons(ctx)
	if err != nil {
		t.Fatalf("CountLessons error: %v", err)
	}
	if total != 0 {
		t.Fatalf("no lesson row may exist after a failed insert, got %d", total)
	}
}

func TestCreateLesson_EmptyTitle(t *testing.T) {
	courses, lessons, _ := newLessonFixture(t)
	course := mustCreateCourse(t, courses, "Course", "course")

	_, err := lessons.CreateLesson(context.Background(), models.Lesson{CourseID: course.ID})
	if !errors.Is(err, app_errors.ErrNoLessonPayload) {
		t.Fatalf("expected ErrNoLessonPayload, got %v", err)
	}
}

func TestLessonsForCourse_Paging(t *testing.T) {
	courses, lessons, _ := newLessonFixture(t)
	ctx := context.Background()
	course := mustCreateCourse(t, courses, "Paged", "paged")

	for i := 0; i < 7; i++ {
		if _, err := lessons.CreateLesson(ctx, models.Lesson{
			Title:    fmt.Sprintf("lesson %d", i+1),
			CourseID: course.ID,
		}); err != nil {
			t.Fatalf("CreateLesson error: %v", err)
		}
	}

	page, err := lessons.LessonsForCourse(ctx, course.ID, 1, 3)
	if err != nil {
		t.Fatalf("LessonsForCourse error: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("expected 3 lessons on page 1, got %d", len(page))
	}
	if page[0].SeqNo != 4 || page[2].SeqNo != 6 {
		t.Fatalf("expected seqNos 4..6, got %d..%d", page[0].SeqNo, page[2].SeqNo)
	}

	last, err := lessons.LessonsForCourse(ctx, course.ID, 2, 3)
	if err != nil {
		t.Fatalf("LessonsForCourse error: %v", err)
	}
	if len(last) != 1 || last[0].SeqNo != 7 {
		t.Fatalf("expected the single trailing lesson, got %+v", last)
	}
}

func TestLessonsForCourse_EmptyPageIsNotNil(t *testing.T) {
	courses, lessons, _ := newLessonFixture(t)
	course := mustCreateCourse(t, courses, "Empty", "empty")

	page, err := lessons.LessonsForCourse(context.Background(), course.ID, 5, 10)
	if err != nil {
		t.Fatalf("LessonsForCourse error: %v", err)
	}
	if page == nil {
		t.Fatalf("expected an empty slice, got nil")
	}
	if len(page) != 0 {
		t.Fatalf("expected no lessons, got %d", len(page))
	}
}

func TestLessonsForCourse_InvalidPaging(t *testing.T) {
	_, lessons, _ := newLessonFixture(t)

	tests := []struct {
		name       string
		pageNumber int
		pageSize   int
	}{
		{"negative page number", -1, 3},
		{"zero page size", 0, 0},
		{"negative page size", 0, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lessons.LessonsForCourse(context.Background(), 1, tt.pageNumber, tt.pageSize)
			if !errors.Is(err, app_errors.ErrInvalidPaging) {
				t.Fatalf("expected ErrInvalidPaging, got %v", err)
			}
		})
	}
}
